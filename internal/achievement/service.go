package achievement

import (
	"context"
	"fmt"
	"time"

	"github.com/ironhorse/railyard/internal/domain"
	"github.com/ironhorse/railyard/internal/event"
	"github.com/ironhorse/railyard/internal/leveling"
	"github.com/ironhorse/railyard/internal/logger"
	"github.com/ironhorse/railyard/internal/metrics"
	"github.com/ironhorse/railyard/internal/repository"
)

// ClaimResult reports a successful claim.
type ClaimResult struct {
	Achievement domain.Achievement   `json:"achievement"`
	LevelUp     *domain.LevelUpEvent `json:"level_up,omitempty"`
}

// Service exposes achievement reads and the claim operation.
type Service interface {
	List(ctx context.Context, playerID string) ([]domain.Achievement, error)
	Claim(ctx context.Context, playerID, achievementID string) (*ClaimResult, error)
}

type service struct {
	store  repository.Player
	now    func() time.Time
	events event.Bus // nil disables publishing
}

// NewService creates the achievement service.
func NewService(store repository.Player) Service {
	return &service{store: store, now: time.Now}
}

// NewServiceWithEvents additionally publishes claim events to the bus.
func NewServiceWithEvents(store repository.Player, events event.Bus) Service {
	return &service{store: store, now: time.Now, events: events}
}

// NewServiceWithClock pins the clock; tests use it.
func NewServiceWithClock(store repository.Player, now func() time.Time) Service {
	return &service{store: store, now: now}
}

// List returns the player's achievements, regenerating the weekly set
// first when its deadline has passed.
func (s *service) List(ctx context.Context, playerID string) ([]domain.Achievement, error) {
	p, err := s.store.Get(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if EnsureFresh(p, s.now()) {
		if err := s.store.Update(ctx, p); err != nil {
			// A concurrent client regenerated first; serve its result.
			p, err = s.store.Get(ctx, playerID)
			if err != nil {
				return nil, err
			}
		}
	}
	return p.Achievements, nil
}

// Claim converts a satisfied achievement into credited rewards. The
// whole claim is one compare-and-set commit, so of two racing claims
// exactly one wins; the loser observes a conflict, reloads and finds
// the achievement already completed.
func (s *service) Claim(ctx context.Context, playerID, achievementID string) (*ClaimResult, error) {
	log := logger.FromContext(ctx)
	now := s.now()

	p, err := s.store.Get(ctx, playerID)
	if err != nil {
		return nil, err
	}
	EnsureFresh(p, now)
	RefreshDerived(p)

	a := p.AchievementByID(achievementID)
	if a == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrAchievementNotFound, achievementID)
	}
	if a.IsCompleted {
		return nil, fmt.Errorf("%w: %s", domain.ErrAlreadyClaimed, a.Key)
	}
	if a.ExpiresAt != nil && now.After(*a.ExpiresAt) {
		return nil, fmt.Errorf("%w: %s", domain.ErrAchievementExpired, a.Key)
	}
	if a.CurrentProgress < a.TargetValue {
		return nil, fmt.Errorf("%w: %s at %d/%d", domain.ErrNotClaimable, a.Key, a.CurrentProgress, a.TargetValue)
	}

	a.IsCompleted = true
	completedAt := now
	a.CompletedAt = &completedAt

	oldLevel := p.Stats.Level
	p.Stats.Cash += a.Rewards.Cash
	p.Stats.Points += a.Rewards.Points
	p.Stats.XP += a.Rewards.XP
	p.Stats.Level = leveling.LevelFor(p.Stats.XP)
	RefreshDerived(p)

	if err := s.store.Update(ctx, p); err != nil {
		return nil, err
	}

	metrics.AchievementsClaimed.WithLabelValues(a.Type).Inc()
	log.Info("Achievement claimed",
		"player_id", playerID, "achievement", a.Key,
		"cash", a.Rewards.Cash, "points", a.Rewards.Points, "xp", a.Rewards.XP)

	result := &ClaimResult{Achievement: *a}
	if p.Stats.Level > oldLevel {
		result.LevelUp = levelUpEvent(oldLevel, p.Stats.Level)
	}

	s.publish(ctx, event.NewAchievementClaimedEvent(playerID, a.ID, a.Type, a.Rewards.Cash, a.Rewards.XP))
	if result.LevelUp != nil {
		s.publish(ctx, event.NewPlayerLevelUpEvent(playerID, oldLevel, p.Stats.Level, result.LevelUp.Unlocks))
	}
	return result, nil
}

// publish sends a domain event when a bus is wired.
func (s *service) publish(ctx context.Context, e event.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, e); err != nil {
		logger.FromContext(ctx).Warn("event publish failed", "event_type", e.Type, "error", err)
	}
}

// levelUpEvent names the tier unlocks crossed between two levels.
func levelUpEvent(oldLevel, newLevel int) *domain.LevelUpEvent {
	evt := &domain.LevelUpEvent{OldLevel: oldLevel, NewLevel: newLevel}
	for _, tier := range leveling.TiersUnlockedBetween(oldLevel, newLevel) {
		switch tier {
		case 2:
			evt.Unlocks = append(evt.Unlocks, domain.UnlockMainlineFreight)
		case 3:
			evt.Unlocks = append(evt.Unlocks, domain.UnlockSpecialFreight)
		}
	}
	return evt
}
