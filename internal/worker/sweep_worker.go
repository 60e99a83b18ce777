// Package worker hosts the background loops that keep player state
// moving while nobody is clicking: the periodic sweep that refreshes
// job boards and releases paint shop bays, and the weekly achievement
// rollover.
package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ironhorse/railyard/internal/domain"
	"github.com/ironhorse/railyard/internal/economy"
	"github.com/ironhorse/railyard/internal/logger"
	"github.com/ironhorse/railyard/internal/repository"
)

// SweepWorker drives economy.Tick across every stored player on a fixed
// cadence. Each tick is an independent compare-and-set; a conflict means
// the player was active at that moment and the next sweep picks them up.
type SweepWorker struct {
	economyService economy.Service
	store          repository.Player
	interval       time.Duration
	shutdown       chan struct{}
	wg             sync.WaitGroup
	stopOnce       sync.Once
}

// NewSweepWorker creates a SweepWorker with the default interval.
func NewSweepWorker(economyService economy.Service, store repository.Player) *SweepWorker {
	return &SweepWorker{
		economyService: economyService,
		store:          store,
		interval:       SweepInterval,
		shutdown:       make(chan struct{}),
	}
}

// Start launches the sweep loop.
func (w *SweepWorker) Start() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		log := logger.FromContext(context.Background())
		log.Info(LogMsgSweepWorkerStarted, "interval", w.interval.String())

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-w.shutdown:
				return
			case <-ticker.C:
				w.Sweep(context.Background())
			}
		}
	}()
}

// Sweep runs one pass over every stored player. Exposed so the weekly
// rollover worker and tests can trigger a pass without waiting for the
// ticker.
func (w *SweepWorker) Sweep(ctx context.Context) {
	log := logger.FromContext(ctx)

	ids, err := w.store.ListIDs(ctx)
	if err != nil {
		log.Error(LogMsgSweepListFailed, "error", err)
		return
	}
	if len(ids) == 0 {
		return
	}

	start := time.Now()
	ticked := 0
	for _, id := range ids {
		select {
		case <-w.shutdown:
			return
		default:
		}

		if err := w.economyService.Tick(ctx, id); err != nil {
			// Conflicts are routine: the player committed between our
			// read and write. Everything else is worth a log line.
			if !errors.Is(err, domain.ErrConflict) {
				log.Error(LogMsgSweepPlayerFailed, "player_id", id, "error", err)
			}
			continue
		}
		ticked++
	}

	log.Debug(LogMsgSweepCompleted,
		"players", len(ids),
		"ticked", ticked,
		"duration_ms", time.Since(start).Milliseconds())
}

// Shutdown stops the loop and waits for an in-flight sweep to finish.
func (w *SweepWorker) Shutdown(ctx context.Context) error {
	w.stopOnce.Do(func() { close(w.shutdown) })

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
