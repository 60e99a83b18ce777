// Package event is the in-process event bus. Services publish domain
// events after a successful commit; subscribers fan them out to the
// event log and the SSE stream. Publishing is never allowed to fail a
// player-facing operation.
package event

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version string      `json:"version"` // Event schema version (e.g., "1.0")
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// Railyard event types
const (
	JobAssigned         Type = "job.assigned"
	JobClaimed          Type = "job.claimed"
	PlayerLevelUp       Type = "player.level_up"
	LocomotivePurchased Type = "locomotive.purchased"
	LocomotiveSold      Type = "locomotive.sold"
	LocomotiveScrapped  Type = "locomotive.scrapped"
	MarketRefreshed     Type = "market.refreshed"
	AchievementClaimed  Type = "achievement.claimed"
)

// Typed event payloads

// JobAssignedPayloadV1 is the typed payload for job assignment events
type JobAssignedPayloadV1 struct {
	PlayerID  string   `json:"player_id"`
	JobID     string   `json:"job_id"`
	JobType   string   `json:"job_type"`
	LocoIDs   []string `json:"loco_ids"`
	Timestamp int64    `json:"timestamp"`
}

// JobClaimedPayloadV1 is the typed payload for job settlement events
type JobClaimedPayloadV1 struct {
	PlayerID   string `json:"player_id"`
	JobID      string `json:"job_id"`
	JobType    string `json:"job_type"`
	Payout     int64  `json:"payout"`
	XPReward   int64  `json:"xp_reward"`
	DistanceMi int    `json:"distance_mi"`
	Timestamp  int64  `json:"timestamp"`
}

// PlayerLevelUpPayloadV1 is the typed payload for level up events
type PlayerLevelUpPayloadV1 struct {
	PlayerID  string   `json:"player_id"`
	OldLevel  int      `json:"old_level"`
	NewLevel  int      `json:"new_level"`
	Unlocks   []string `json:"unlocks,omitempty"`
	Timestamp int64    `json:"timestamp"`
}

// LocomotivePurchasedPayloadV1 is the typed payload for purchase events
type LocomotivePurchasedPayloadV1 struct {
	PlayerID  string `json:"player_id"`
	Model     string `json:"model"`
	Source    string `json:"source"` // "new" or "used"
	Quantity  int    `json:"quantity"`
	TotalCost int64  `json:"total_cost"`
	Timestamp int64  `json:"timestamp"`
}

// LocomotiveDisposedPayloadV1 is the typed payload for sale and scrap events
type LocomotiveDisposedPayloadV1 struct {
	PlayerID  string `json:"player_id"`
	LocoID    string `json:"loco_id"`
	Model     string `json:"model"`
	Credit    int64  `json:"credit"`
	Timestamp int64  `json:"timestamp"`
}

// MarketRefreshedPayloadV1 is the typed payload for market refresh events
type MarketRefreshedPayloadV1 struct {
	PlayerID  string `json:"player_id"`
	Trigger   string `json:"trigger"` // "scheduled" or "manual"
	JobCount  int    `json:"job_count"`
	Timestamp int64  `json:"timestamp"`
}

// AchievementClaimedPayloadV1 is the typed payload for achievement claim events
type AchievementClaimedPayloadV1 struct {
	PlayerID      string `json:"player_id"`
	AchievementID string `json:"achievement_id"`
	Type          string `json:"type"` // "career", "weekly" or "event"
	CashReward    int64  `json:"cash_reward"`
	XPReward      int64  `json:"xp_reward"`
	Timestamp     int64  `json:"timestamp"`
}

// Type-safe event constructors

// NewJobAssignedEvent creates a new job assignment event
func NewJobAssignedEvent(playerID, jobID, jobType string, locoIDs []string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    JobAssigned,
		Payload: JobAssignedPayloadV1{
			PlayerID:  playerID,
			JobID:     jobID,
			JobType:   jobType,
			LocoIDs:   locoIDs,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewJobClaimedEvent creates a new job settlement event
func NewJobClaimedEvent(playerID, jobID, jobType string, payout, xpReward int64, distanceMi int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    JobClaimed,
		Payload: JobClaimedPayloadV1{
			PlayerID:   playerID,
			JobID:      jobID,
			JobType:    jobType,
			Payout:     payout,
			XPReward:   xpReward,
			DistanceMi: distanceMi,
			Timestamp:  time.Now().Unix(),
		},
	}
}

// NewPlayerLevelUpEvent creates a new level up event
func NewPlayerLevelUpEvent(playerID string, oldLevel, newLevel int, unlocks []string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    PlayerLevelUp,
		Payload: PlayerLevelUpPayloadV1{
			PlayerID:  playerID,
			OldLevel:  oldLevel,
			NewLevel:  newLevel,
			Unlocks:   unlocks,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewLocomotivePurchasedEvent creates a new purchase event
func NewLocomotivePurchasedEvent(playerID, model, source string, quantity int, totalCost int64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    LocomotivePurchased,
		Payload: LocomotivePurchasedPayloadV1{
			PlayerID:  playerID,
			Model:     model,
			Source:    source,
			Quantity:  quantity,
			TotalCost: totalCost,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewLocomotiveDisposedEvent creates a sale or scrap event depending on eventType
func NewLocomotiveDisposedEvent(eventType Type, playerID, locoID, model string, credit int64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    eventType,
		Payload: LocomotiveDisposedPayloadV1{
			PlayerID:  playerID,
			LocoID:    locoID,
			Model:     model,
			Credit:    credit,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewMarketRefreshedEvent creates a new market refresh event
func NewMarketRefreshedEvent(playerID, trigger string, jobCount int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    MarketRefreshed,
		Payload: MarketRefreshedPayloadV1{
			PlayerID:  playerID,
			Trigger:   trigger,
			JobCount:  jobCount,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewAchievementClaimedEvent creates a new achievement claim event
func NewAchievementClaimedEvent(playerID, achievementID, achievementType string, cashReward, xpReward int64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    AchievementClaimed,
		Payload: AchievementClaimedPayloadV1{
			PlayerID:      playerID,
			AchievementID: achievementID,
			Type:          achievementType,
			CashReward:    cashReward,
			XPReward:      xpReward,
			Timestamp:     time.Now().Unix(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish delivers an event to all subscribers synchronously. Handler
// errors are collected, not short-circuited, so one failing subscriber
// cannot starve the others.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
