package event

import (
	"context"
	"sync"
	"time"

	"github.com/ironhorse/railyard/internal/logger"
)

// ResilientConfig configures the ResilientPublisher
type ResilientConfig struct {
	MaxRetries     int
	RetryDelay     time.Duration
	DeadLetterPath string
}

// ResilientPublisher wraps a Bus with background retries and a
// dead-letter file. Publish never returns an error to the caller: a
// failed delivery is retried asynchronously and eventually dead
// lettered, so a flaky subscriber cannot fail a player operation.
type ResilientPublisher struct {
	inner      Bus
	config     ResilientConfig
	deadLetter *DeadLetterWriter
	shutdown   chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
}

// NewResilientPublisher creates a new ResilientPublisher
func NewResilientPublisher(inner Bus, config ResilientConfig) (*ResilientPublisher, error) {
	if config.MaxRetries <= 0 {
		config.MaxRetries = RetryMaxAttempts
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = RetryInitialDelay
	}

	dlw, err := NewDeadLetterWriter(config.DeadLetterPath)
	if err != nil {
		return nil, err
	}

	return &ResilientPublisher{
		inner:      inner,
		config:     config,
		deadLetter: dlw,
		shutdown:   make(chan struct{}),
	}, nil
}

// Publish attempts to deliver the event once; on failure it hands the
// event to a background retry loop and returns nil.
func (p *ResilientPublisher) Publish(ctx context.Context, event Event) error {
	err := p.inner.Publish(ctx, event)
	if err == nil {
		return nil
	}

	log := logger.FromContext(ctx)
	log.Warn(LogMsgEventPublishFailed,
		"event_type", event.Type,
		"error", err,
		"max_retries", p.config.MaxRetries)

	p.wg.Add(1)
	go p.retryLoop(event, err)

	return nil
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.inner.Subscribe(eventType, handler)
}

func (p *ResilientPublisher) retryLoop(event Event, lastErr error) {
	defer p.wg.Done()

	// The originating request context may already be gone.
	ctx := context.Background()
	log := logger.FromContext(ctx)

	for attempt := 1; attempt <= p.config.MaxRetries; attempt++ {
		select {
		case <-p.shutdown:
			p.writeDeadLetter(event, attempt-1, lastErr)
			return
		case <-time.After(CalculateRetryDelay(p.config.RetryDelay, attempt)):
		}

		if err := p.inner.Publish(ctx, event); err == nil {
			log.Info(LogMsgEventRetrySucceeded,
				"event_type", event.Type,
				"attempt", attempt)
			return
		} else {
			lastErr = err
			log.Warn(LogMsgEventRetryFailed,
				"event_type", event.Type,
				"attempt", attempt,
				"error", err)
		}
	}

	log.Error(LogMsgEventRetryExhausted, "event_type", event.Type)
	p.writeDeadLetter(event, p.config.MaxRetries, lastErr)
}

func (p *ResilientPublisher) writeDeadLetter(event Event, attempts int, lastErr error) {
	if err := p.deadLetter.Write(event, attempts, lastErr); err != nil {
		logger.FromContext(context.Background()).Error(LogMsgDeadLetterWriteFailed, "error", err)
	}
}

// Shutdown stops accepting retries, waits for in-flight retry loops to
// drain or dead-letter, and closes the dead-letter file.
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	p.stopOnce.Do(func() { close(p.shutdown) })

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	return p.deadLetter.Close()
}
