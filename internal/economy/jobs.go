package economy

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/ironhorse/railyard/internal/achievement"
	"github.com/ironhorse/railyard/internal/degradation"
	"github.com/ironhorse/railyard/internal/domain"
	"github.com/ironhorse/railyard/internal/event"
	"github.com/ironhorse/railyard/internal/leveling"
	"github.com/ironhorse/railyard/internal/logger"
	"github.com/ironhorse/railyard/internal/metrics"
)

// AssignJob moves an available job to in_progress with the selected
// locomotives committed to it. Validation failures leave the document
// untouched.
func (s *service) AssignJob(ctx context.Context, playerID, jobID string, locoIDs []string) (*domain.Job, error) {
	log := logger.FromContext(ctx)
	now := s.now()

	p, err := s.store.Get(ctx, playerID)
	if err != nil {
		return nil, err
	}

	job, err := assignJob(p, jobID, locoIDs, now)
	if err != nil {
		return nil, err
	}

	if err := s.store.Update(ctx, p); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			metrics.CommitConflicts.Inc()
		}
		return nil, err
	}

	metrics.JobsAssigned.WithLabelValues(job.JobType).Inc()
	s.publish(ctx, event.NewJobAssignedEvent(playerID, job.ID, job.JobType, job.AssignedLocos))
	log.Info("job assigned",
		"player_id", playerID, "job_id", job.JobID,
		"locos", len(locoIDs), "completes_at", job.CompletesAt)
	return job, nil
}

// AutoAssignJob greedily picks available locomotives by descending
// horsepower until the requirement is met, sometimes padding the
// consist with one extra unit.
func (s *service) AutoAssignJob(ctx context.Context, playerID, jobID string) (*domain.Job, error) {
	log := logger.FromContext(ctx)
	now := s.now()

	p, err := s.store.Get(ctx, playerID)
	if err != nil {
		return nil, err
	}

	job := p.JobByID(jobID)
	if job == nil {
		return nil, domain.ErrJobNotFound
	}

	locoIDs, err := pickConsist(p, job.HPRequired, s.rnd())
	if err != nil {
		return nil, err
	}

	assigned, err := assignJob(p, jobID, locoIDs, now)
	if err != nil {
		return nil, err
	}

	if err := s.store.Update(ctx, p); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			metrics.CommitConflicts.Inc()
		}
		return nil, err
	}

	metrics.JobsAssigned.WithLabelValues(assigned.JobType).Inc()
	s.publish(ctx, event.NewJobAssignedEvent(playerID, assigned.ID, assigned.JobType, assigned.AssignedLocos))
	log.Info("job auto-assigned",
		"player_id", playerID, "job_id", assigned.JobID, "locos", len(locoIDs))
	return assigned, nil
}

// ClaimJob settles a completed job: rewards credited, locomotives
// released with their new mileage, job removed from the active set.
func (s *service) ClaimJob(ctx context.Context, playerID, jobID string) (*ClaimJobResult, error) {
	log := logger.FromContext(ctx)
	now := s.now()

	p, err := s.store.Get(ctx, playerID)
	if err != nil {
		return nil, err
	}

	job := p.JobByID(jobID)
	if job == nil {
		return nil, domain.ErrJobNotFound
	}
	if job.Status != domain.JobStatusInProgress {
		return nil, domain.ErrJobNotInProgress
	}
	if job.CompletesAt == nil || now.Before(*job.CompletesAt) {
		return nil, domain.ErrJobNotComplete
	}

	settled := *job

	oldLevel := p.Stats.Level
	p.Stats.Cash += settled.Payout
	p.Stats.XP += settled.XPReward
	p.Stats.Level = leveling.LevelFor(p.Stats.XP)
	p.Stats.TotalJobsCompleted++

	releaseConsist(p, &settled)
	removeJob(p, settled.ID)

	actions := []achievement.Action{
		{Requirement: domain.ReqJobsCompleted, Amount: 1},
		{Requirement: domain.ReqMilesHauled, Amount: int64(settled.DistanceMi)},
		{Requirement: domain.ReqCashEarned, Amount: settled.Payout},
	}
	if settled.JobType == domain.JobTypeYardSwitching {
		actions = append(actions, achievement.Action{Requirement: domain.ReqYardJobs, Amount: 1})
	}
	if settled.Tier == 3 {
		actions = append(actions, achievement.Action{Requirement: domain.ReqTier3Jobs, Amount: 1})
	}
	achievement.Apply(p, actions...)

	if err := s.store.Update(ctx, p); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			metrics.CommitConflicts.Inc()
		}
		return nil, err
	}

	result := &ClaimJobResult{
		JobID:    settled.JobID,
		Payout:   settled.Payout,
		XPReward: settled.XPReward,
		LevelUp:  levelUpEvent(oldLevel, p.Stats.Level),
	}

	metrics.JobsClaimed.WithLabelValues(settled.JobType).Inc()
	s.publish(ctx, event.NewJobClaimedEvent(playerID, settled.ID, settled.JobType, settled.Payout, settled.XPReward, settled.DistanceMi))
	if result.LevelUp != nil {
		s.publish(ctx, event.NewPlayerLevelUpEvent(playerID, oldLevel, p.Stats.Level, result.LevelUp.Unlocks))
	}
	log.Info("job claimed",
		"player_id", playerID, "job_id", settled.JobID,
		"payout", settled.Payout, "xp", settled.XPReward, "level", p.Stats.Level)
	return result, nil
}

// assignJob performs the in-memory assignment. Shared by manual and
// auto assignment so validation lives in one place.
func assignJob(p *domain.PlayerState, jobID string, locoIDs []string, now time.Time) (*domain.Job, error) {
	job := p.JobByID(jobID)
	if job == nil {
		return nil, domain.ErrJobNotFound
	}
	if job.Status != domain.JobStatusAvailable {
		return nil, domain.ErrJobNotAvailable
	}
	if p.Stats.Level < leveling.UnlockLevelForTier(job.Tier) {
		return nil, domain.ErrTierLocked
	}
	if len(locoIDs) == 0 {
		return nil, domain.ErrNoLocosSelected
	}

	selected := make([]*domain.Locomotive, 0, len(locoIDs))
	seen := make(map[string]bool, len(locoIDs))
	for _, id := range locoIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		l := p.LocomotiveByID(id)
		if l == nil {
			return nil, domain.ErrLocomotiveNotFound
		}
		if l.Status != domain.LocoStatusAvailable {
			return nil, domain.ErrLocoNotAvailable
		}
		selected = append(selected, l)
	}

	power := 0
	for _, l := range selected {
		power += l.Horsepower
	}
	if power < job.HPRequired {
		return nil, domain.ErrInsufficientPower
	}

	started := now
	completes := now.Add(time.Duration(job.TimeMinutes) * time.Minute)
	job.Status = domain.JobStatusInProgress
	job.StartedAt = &started
	job.CompletesAt = &completes
	job.AssignedLocos = make([]string, 0, len(selected))
	for _, l := range selected {
		job.AssignedLocos = append(job.AssignedLocos, l.ID)
		l.Status = domain.LocoStatusAssigned
		l.AssignedJobID = job.ID
	}
	return job, nil
}

// pickConsist selects available units by descending horsepower until
// the requirement is met. extraRoll below AutoAssignExtraChance pads
// the consist with one more unit when any remain.
func pickConsist(p *domain.PlayerState, hpRequired int, extraRoll float64) ([]string, error) {
	candidates := make([]*domain.Locomotive, 0, len(p.Locomotives))
	for i := range p.Locomotives {
		if p.Locomotives[i].Status == domain.LocoStatusAvailable {
			candidates = append(candidates, &p.Locomotives[i])
		}
	}
	if len(candidates) == 0 {
		return nil, domain.ErrNoLocosSelected
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Horsepower > candidates[j].Horsepower
	})

	ids := make([]string, 0, len(candidates))
	power := 0
	for _, l := range candidates {
		ids = append(ids, l.ID)
		power += l.Horsepower
		if power >= hpRequired {
			break
		}
	}
	if power < hpRequired {
		return nil, domain.ErrInsufficientPower
	}

	if extraRoll < AutoAssignExtraChance && len(ids) < len(candidates) {
		ids = append(ids, candidates[len(ids)].ID)
	}
	return ids, nil
}

// releaseConsist returns a settled job's locomotives to service, adding
// the job's road miles to each odometer. A unit worn below the repair
// threshold parks as needs_repair instead of available.
func releaseConsist(p *domain.PlayerState, job *domain.Job) {
	for _, id := range job.AssignedLocos {
		l := p.LocomotiveByID(id)
		if l == nil {
			continue
		}
		l.Mileage += int64(job.DistanceMi)
		l.Health = degradation.HealthFor(l.Mileage-l.WearOffset, l.Reliability)
		l.AssignedJobID = ""
		if l.Health < NeedsRepairHealth {
			l.Status = domain.LocoStatusNeedsRepair
		} else {
			l.Status = domain.LocoStatusAvailable
		}
	}
}

func removeJob(p *domain.PlayerState, id string) {
	for i := range p.Jobs {
		if p.Jobs[i].ID == id {
			p.Jobs = append(p.Jobs[:i], p.Jobs[i+1:]...)
			return
		}
	}
}

// levelUpEvent builds the event for a level crossing, nil when no
// level was gained.
func levelUpEvent(oldLevel, newLevel int) *domain.LevelUpEvent {
	if newLevel <= oldLevel {
		return nil
	}
	ev := &domain.LevelUpEvent{OldLevel: oldLevel, NewLevel: newLevel}
	for _, tier := range leveling.TiersUnlockedBetween(oldLevel, newLevel) {
		switch tier {
		case 2:
			ev.Unlocks = append(ev.Unlocks, domain.UnlockMainlineFreight)
		case 3:
			ev.Unlocks = append(ev.Unlocks, domain.UnlockSpecialFreight)
		}
	}
	return ev
}
