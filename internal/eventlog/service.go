package eventlog

import (
	"context"

	"github.com/ironhorse/railyard/internal/event"
	"github.com/ironhorse/railyard/internal/logger"
)

// Service handles event logging business logic
type Service interface {
	// Subscribe registers the event logger on the bus
	Subscribe(bus event.Bus)

	// CleanupOldEvents removes events older than retention period
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}

type service struct {
	repo Repository
}

// NewService creates a new event logging service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Subscribe registers a handler for every domain event type
func (s *service) Subscribe(bus event.Bus) {
	eventTypes := []event.Type{
		event.JobAssigned,
		event.JobClaimed,
		event.PlayerLevelUp,
		event.LocomotivePurchased,
		event.LocomotiveSold,
		event.LocomotiveScrapped,
		event.MarketRefreshed,
		event.AchievementClaimed,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, s.handleEvent)
	}
}

// handleEvent flattens the typed payload to a map and writes it.
func (s *service) handleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := event.DecodePayload[map[string]interface{}](evt.Payload)
	if err != nil {
		log.Debug(LogMsgEventPayloadNotDecodable, "type", evt.Type, "error", err)
		return nil
	}

	var playerID *string
	if pid, ok := payload[PayloadKeyPlayerID].(string); ok {
		playerID = &pid
	}

	if err := s.repo.LogEvent(ctx, string(evt.Type), playerID, payload); err != nil {
		log.Error(LogMsgFailedToLogEvent, "error", err, "type", evt.Type)
		return err
	}

	log.Debug(LogMsgEventLogged, "type", evt.Type, "player_id", playerID)
	return nil
}

// CleanupOldEvents removes events older than the retention period
func (s *service) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	return s.repo.CleanupOldEvents(ctx, retentionDays)
}
