// Package achievement owns the three achievement sets and their
// progress/claim semantics. Progress mutation is pure over the player
// document so callers fold it into their own commit; only Claim talks
// to the store.
package achievement

import (
	"math/rand"
	"time"

	"github.com/ironhorse/railyard/internal/domain"
	"github.com/ironhorse/railyard/internal/state"
)

// Action is one progress-relevant player action. Amount is 1 for
// count-based requirements and the magnitude (miles, dollars) for
// accumulating ones.
type Action struct {
	Requirement string
	Amount      int64
}

// EnsureFresh initializes missing sets and regenerates the weekly set
// when the stored refresh deadline has passed. Returns true when the
// document changed.
func EnsureFresh(p *domain.PlayerState, now time.Time) bool {
	changed := false

	if !hasSet(p, domain.AchievementTypeCareer) {
		for _, t := range careerTemplates {
			p.Achievements = append(p.Achievements, instantiate(t, now))
		}
		changed = true
	}
	if !hasSet(p, domain.AchievementTypeEvent) {
		for _, t := range eventTemplates {
			p.Achievements = append(p.Achievements, instantiate(t, now))
		}
		changed = true
	}
	if !hasSet(p, domain.AchievementTypeWeekly) || !now.Before(p.WeeklyAchievementsRefreshAt) {
		RegenerateWeekly(p, now)
		changed = true
	}

	return changed
}

// RegenerateWeekly wholesale replaces the weekly set, progress
// included, and advances the refresh deadline to the next Friday
// 12:00 UTC. The draw is seeded by the ISO week so every client of
// the same document regenerates the same set.
func RegenerateWeekly(p *domain.PlayerState, now time.Time) {
	kept := p.Achievements[:0]
	for _, a := range p.Achievements {
		if a.Type != domain.AchievementTypeWeekly {
			kept = append(kept, a)
		}
	}
	p.Achievements = kept

	year, week := now.UTC().ISOWeek()
	rng := rand.New(rand.NewSource(int64(year*100 + week))) //nolint:gosec // deterministic weekly draw

	pool := make([]Template, len(weeklyPool))
	copy(pool, weeklyPool)
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	for _, t := range pool[:WeeklyCount] {
		p.Achievements = append(p.Achievements, instantiate(t, now))
	}
	p.WeeklyAchievementsRefreshAt = state.NextFridayNoon(now)
}

// Apply folds progress-relevant actions into the document. Counter
// requirements accumulate; the cash-balance requirement is re-derived
// from the live stat instead. Progress never decreases.
func Apply(p *domain.PlayerState, actions ...Action) {
	for i := range p.Achievements {
		a := &p.Achievements[i]
		if a.IsCompleted {
			continue
		}
		for _, act := range actions {
			if a.Requirement == act.Requirement && act.Amount > 0 {
				a.CurrentProgress += act.Amount
			}
		}
	}
	RefreshDerived(p)
}

// RefreshDerived updates balance-style requirements from live stats.
// Monotonic: a balance that later drops never claws progress back.
func RefreshDerived(p *domain.PlayerState) {
	for i := range p.Achievements {
		a := &p.Achievements[i]
		if a.IsCompleted || a.Requirement != domain.ReqCashBalance {
			continue
		}
		if p.Stats.Cash > a.CurrentProgress {
			a.CurrentProgress = p.Stats.Cash
		}
	}
}

func hasSet(p *domain.PlayerState, achievementType string) bool {
	for i := range p.Achievements {
		if p.Achievements[i].Type == achievementType {
			return true
		}
	}
	return false
}
