package worker

import (
	"context"
	"sync"
	"time"

	"github.com/ironhorse/railyard/internal/eventlog"
	"github.com/ironhorse/railyard/internal/logger"
	"github.com/ironhorse/railyard/internal/state"
)

// WeeklyRolloverWorker fires a full player sweep at Friday 12:00 UTC so
// weekly achievement boards roll over the moment the window flips
// instead of whenever each player next loads. The sweep itself is the
// same pass the SweepWorker runs every minute. A nil cleanup job skips
// event log retention.
type WeeklyRolloverWorker struct {
	sweeper  *SweepWorker
	cleanup  *eventlog.CleanupJob
	timer    *time.Timer
	shutdown chan struct{}
	wg       sync.WaitGroup
	mu       sync.Mutex
	stopOnce sync.Once
}

func NewWeeklyRolloverWorker(sweeper *SweepWorker, cleanup *eventlog.CleanupJob) *WeeklyRolloverWorker {
	return &WeeklyRolloverWorker{
		sweeper:  sweeper,
		cleanup:  cleanup,
		shutdown: make(chan struct{}),
	}
}

func (w *WeeklyRolloverWorker) Start() {
	w.scheduleNext()
}

func (w *WeeklyRolloverWorker) scheduleNext() {
	now := time.Now().UTC()
	next := state.NextFridayNoon(now)
	duration := next.Sub(now)

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(duration, func() {
		select {
		case <-w.shutdown:
			return
		default:
		}
		w.executeRollover()
		w.scheduleNext()
	})
	w.mu.Unlock()

	log := logger.FromContext(context.Background())
	log.Info(LogMsgWeeklyRolloverScheduled,
		"next_rollover", next.Format(time.RFC3339),
		"duration", duration.String())
}

func (w *WeeklyRolloverWorker) executeRollover() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		ctx := context.Background()
		log := logger.FromContext(ctx)

		log.Info(LogMsgWeeklyRolloverStarting)
		w.sweeper.Sweep(ctx)
		if w.cleanup != nil {
			if err := w.cleanup.Process(ctx); err != nil {
				log.Error("Event log cleanup failed during rollover", "error", err)
			}
		}
		log.Info(LogMsgWeeklyRolloverCompleted)
	}()
}

func (w *WeeklyRolloverWorker) Shutdown(ctx context.Context) error {
	w.stopOnce.Do(func() { close(w.shutdown) })

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

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
