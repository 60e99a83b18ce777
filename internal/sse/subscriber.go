package sse

import (
	"context"
	"log/slog"

	"github.com/ironhorse/railyard/internal/event"
)

// Subscriber bridges the internal event bus to the SSE hub.
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe registers handlers for every event type the browser cares
// about. Payloads pass through unchanged; the hub routes them by the
// player_id field.
func (s *Subscriber) Subscribe() {
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
		s.bus.Subscribe(eventType, s.handleEvent)
	}

	slog.Info("SSE subscriber registered", "event_types", len(eventTypes))
}

func (s *Subscriber) handleEvent(_ context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[map[string]interface{}](evt.Payload)
	if err != nil {
		slog.Warn("Undecodable event payload, not forwarding to SSE", "type", evt.Type)
		return nil
	}

	playerID, _ := payload["player_id"].(string)
	s.hub.Broadcast(string(evt.Type), playerID, payload)

	slog.Debug(LogMsgEventBroadcast, "event_type", evt.Type, "player_id", playerID)
	return nil
}
