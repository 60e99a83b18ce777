package eventlog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironhorse/railyard/internal/event"
)

// fakeRepo records LogEvent calls in memory.
type fakeRepo struct {
	events []Event
	err    error
}

func (f *fakeRepo) LogEvent(_ context.Context, eventType string, playerID *string, payload map[string]interface{}) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, Event{
		EventType: eventType,
		PlayerID:  playerID,
		Payload:   payload,
		CreatedAt: time.Now(),
	})
	return nil
}

func (f *fakeRepo) GetEvents(context.Context, EventFilter) ([]Event, error) {
	return f.events, nil
}

func (f *fakeRepo) GetEventsByPlayer(_ context.Context, playerID string, _ int) ([]Event, error) {
	var out []Event
	for _, e := range f.events {
		if e.PlayerID != nil && *e.PlayerID == playerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeRepo) CleanupOldEvents(context.Context, int) (int64, error) {
	n := int64(len(f.events))
	f.events = nil
	return n, nil
}

func TestServiceLogsBusEvents(t *testing.T) {
	repo := &fakeRepo{}
	bus := event.NewMemoryBus()
	NewService(repo).Subscribe(bus)

	evt := event.NewJobClaimedEvent("p1", "id-0003", "mainline_freight", 9800, 410, 240)
	require.NoError(t, bus.Publish(context.Background(), evt))

	require.Len(t, repo.events, 1)
	logged := repo.events[0]
	assert.Equal(t, "job.claimed", logged.EventType)
	require.NotNil(t, logged.PlayerID)
	assert.Equal(t, "p1", *logged.PlayerID)
	assert.Equal(t, "id-0003", logged.Payload["job_id"])
}

func TestServiceCoversAllEventTypes(t *testing.T) {
	repo := &fakeRepo{}
	bus := event.NewMemoryBus()
	NewService(repo).Subscribe(bus)

	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, event.NewLocomotivePurchasedEvent("p1", "GP38-2", "new", 2, 280000)))
	require.NoError(t, bus.Publish(ctx, event.NewLocomotiveDisposedEvent(event.LocomotiveScrapped, "p1", "loco-9", "GP9", 9000)))
	require.NoError(t, bus.Publish(ctx, event.NewAchievementClaimedEvent("p1", "first-revenue", "career", 1000, 50)))

	assert.Len(t, repo.events, 3)
}

func TestServiceSurfacesRepositoryErrors(t *testing.T) {
	repo := &fakeRepo{err: errors.New("disk full")}
	bus := event.NewMemoryBus()
	NewService(repo).Subscribe(bus)

	err := bus.Publish(context.Background(), event.NewMarketRefreshedEvent("p1", "manual", 11))
	assert.Error(t, err)
}

func TestCleanupJob(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)
	bus := event.NewMemoryBus()
	svc.Subscribe(bus)

	require.NoError(t, bus.Publish(context.Background(), event.NewPlayerLevelUpEvent("p1", 1, 2, nil)))

	job := NewCleanupJob(svc, DefaultRetentionDays)
	require.NoError(t, job.Process(context.Background()))
	assert.Empty(t, repo.events)
}
