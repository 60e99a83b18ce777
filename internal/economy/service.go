// Package economy implements the player-facing operations: the job
// lifecycle, dealership and used-market purchases, fleet maintenance
// and the periodic tick that keeps the market and timers current.
//
// Every mutation follows the same shape: read the document, validate,
// mutate in memory, commit once with a compare-and-set. A version
// conflict is returned to the caller as domain.ErrConflict; financial
// mutations are never retried silently.
package economy

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/ironhorse/railyard/internal/achievement"
	"github.com/ironhorse/railyard/internal/domain"
	"github.com/ironhorse/railyard/internal/event"
	"github.com/ironhorse/railyard/internal/logger"
	"github.com/ironhorse/railyard/internal/market"
	"github.com/ironhorse/railyard/internal/metrics"
	"github.com/ironhorse/railyard/internal/repository"
	"github.com/ironhorse/railyard/internal/state"
)

// ClaimJobResult reports a settled job.
type ClaimJobResult struct {
	JobID    string               `json:"job_id"`
	Payout   int64                `json:"payout"`
	XPReward int64                `json:"xp_reward"`
	LevelUp  *domain.LevelUpEvent `json:"level_up,omitempty"`
}

// Service defines the interface for economy operations.
type Service interface {
	GetPlayer(ctx context.Context, playerID string) (*domain.PlayerState, error)

	AssignJob(ctx context.Context, playerID, jobID string, locoIDs []string) (*domain.Job, error)
	AutoAssignJob(ctx context.Context, playerID, jobID string) (*domain.Job, error)
	ClaimJob(ctx context.Context, playerID, jobID string) (*ClaimJobResult, error)

	PurchaseNew(ctx context.Context, playerID, model string, quantity int) ([]domain.Locomotive, error)
	PurchaseUsed(ctx context.Context, playerID, listingID string) (*domain.Locomotive, error)
	SellLocomotive(ctx context.Context, playerID, locoID string) (int64, error)
	ScrapLocomotive(ctx context.Context, playerID, locoID string) (int64, error)
	RenameLocomotive(ctx context.Context, playerID, locoID, unitNumber string) error
	RepairLocomotive(ctx context.Context, playerID, locoID string) (int64, error)
	PaintLocomotive(ctx context.Context, playerID, locoID string) error
	SetStored(ctx context.Context, playerID, locoID string, stored bool) error

	// Tick runs the idempotent per-player minute sweep: market refresh
	// when due and paint shop completion.
	Tick(ctx context.Context, playerID string) error

	// TriggerRefresh regenerates the market immediately regardless of
	// clock alignment.
	TriggerRefresh(ctx context.Context, playerID string) (*domain.PlayerState, error)
}

type service struct {
	store    repository.Player
	gen      *market.Generator
	homeCity string
	now      func() time.Time
	rnd      func() float64 // auto-assign padding roll
	events   event.Bus      // nil disables publishing
}

// NewService creates a new economy service. The generator carries its
// own entropy; tests inject a seeded one.
func NewService(store repository.Player, gen *market.Generator, homeCity string) Service {
	return &service{
		store:    store,
		gen:      gen,
		homeCity: homeCity,
		now:      time.Now,
		rnd:      rand.Float64,
	}
}

// NewServiceWithEvents additionally publishes domain events to the bus
// after successful commits.
func NewServiceWithEvents(store repository.Player, gen *market.Generator, homeCity string, events event.Bus) Service {
	return &service{
		store:    store,
		gen:      gen,
		homeCity: homeCity,
		now:      time.Now,
		rnd:      rand.Float64,
		events:   events,
	}
}

// NewServiceWithClock is a test constructor pinning the clock and the
// auto-assign roll.
func NewServiceWithClock(store repository.Player, gen *market.Generator, homeCity string, now func() time.Time, rnd func() float64) Service {
	return &service{
		store:    store,
		gen:      gen,
		homeCity: homeCity,
		now:      now,
		rnd:      rnd,
	}
}

// publish sends a domain event when a bus is wired. Failures are
// logged and dropped: the state change already committed.
func (s *service) publish(ctx context.Context, e event.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, e); err != nil {
		logger.FromContext(ctx).Warn("event publish failed", "event_type", e.Type, "error", err)
	}
}

// GetPlayer returns the player snapshot, synthesizing the starter
// document on first contact and bringing the market and achievement
// sets current before returning.
func (s *service) GetPlayer(ctx context.Context, playerID string) (*domain.PlayerState, error) {
	log := logger.FromContext(ctx)
	now := s.now()

	p, err := s.store.Get(ctx, playerID)
	if errors.Is(err, domain.ErrPlayerNotFound) {
		p = state.NewPlayer(playerID, now)
		if err := s.store.Create(ctx, p); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				// Another client created it first; their document wins.
				return s.store.Get(ctx, playerID)
			}
			return nil, err
		}
		log.Info("new player created", "player_id", playerID)
	} else if err != nil {
		return nil, err
	}

	changed := achievement.EnsureFresh(p, now)
	if len(p.Jobs) == 0 {
		s.gen.Refresh(p, s.homeCity, now)
		metrics.MarketRefreshes.WithLabelValues("init").Inc()
		changed = true
	}
	if s.sweepPaintShop(p, now) {
		changed = true
	}

	if changed {
		if err := s.store.Update(ctx, p); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				// A concurrent tab did the same housekeeping; re-read.
				metrics.CommitConflicts.Inc()
				return s.store.Get(ctx, playerID)
			}
			return nil, err
		}
	}
	return p, nil
}

// Tick is the per-player minute sweep. Safe to run twice in the same
// minute: a board refreshed seconds ago is not stale, and a paint job
// releases exactly once.
func (s *service) Tick(ctx context.Context, playerID string) error {
	log := logger.FromContext(ctx)
	now := s.now()

	p, err := s.store.Get(ctx, playerID)
	if err != nil {
		return err
	}

	changed := false
	refreshed := false
	if market.RefreshDue(now, p.Jobs) {
		s.gen.Refresh(p, s.homeCity, now)
		metrics.MarketRefreshes.WithLabelValues("scheduled").Inc()
		log.Info("market refreshed", "player_id", playerID)
		changed = true
		refreshed = true
	}
	if s.sweepPaintShop(p, now) {
		changed = true
	}
	if achievement.EnsureFresh(p, now) {
		changed = true
	}

	if !changed {
		return nil
	}
	if err := s.store.Update(ctx, p); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			// The next tick will pick it up.
			metrics.CommitConflicts.Inc()
			return nil
		}
		return err
	}
	if refreshed {
		s.publish(ctx, event.NewMarketRefreshedEvent(playerID, "scheduled", len(p.Jobs)))
	}
	return nil
}

func (s *service) TriggerRefresh(ctx context.Context, playerID string) (*domain.PlayerState, error) {
	log := logger.FromContext(ctx)
	now := s.now()

	p, err := s.store.Get(ctx, playerID)
	if err != nil {
		return nil, err
	}

	s.gen.Refresh(p, s.homeCity, now)
	if err := s.store.Update(ctx, p); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			metrics.CommitConflicts.Inc()
		}
		return nil, err
	}
	metrics.MarketRefreshes.WithLabelValues("manual").Inc()
	s.publish(ctx, event.NewMarketRefreshedEvent(playerID, "manual", len(p.Jobs)))
	log.Info("manual market refresh", "player_id", playerID, "jobs", len(p.Jobs))
	return p, nil
}

// sweepPaintShop releases units whose repaint has finished. Returns
// true when any unit changed.
func (s *service) sweepPaintShop(p *domain.PlayerState, now time.Time) bool {
	changed := false
	for i := range p.Locomotives {
		l := &p.Locomotives[i]
		if l.Status != domain.LocoStatusInPaintShop || l.PaintDoneAt == nil {
			continue
		}
		if now.Before(*l.PaintDoneAt) {
			continue
		}
		l.Status = domain.LocoStatusAvailable
		l.PaintDoneAt = nil
		l.PaintCondition = 100
		changed = true
	}
	return changed
}
