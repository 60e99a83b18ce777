package achievement

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironhorse/railyard/internal/domain"
	"github.com/ironhorse/railyard/internal/event"
	"github.com/ironhorse/railyard/internal/memstore"
	"github.com/ironhorse/railyard/internal/state"
)

// A Wednesday; the weekly deadline is the Friday after.
var achNow = time.Date(2026, time.March, 4, 10, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, now func() time.Time) (Service, *memstore.Store) {
	t.Helper()
	store := memstore.New().WithClock(now)
	require.NoError(t, store.Create(context.Background(), state.NewPlayer("p1", now())))
	return NewServiceWithClock(store, now), store
}

func findByKey(t *testing.T, achievements []domain.Achievement, key string) *domain.Achievement {
	t.Helper()
	for i := range achievements {
		if achievements[i].Key == key {
			return &achievements[i]
		}
	}
	t.Fatalf("achievement %s not found", key)
	return nil
}

func countByType(achievements []domain.Achievement, achievementType string) int {
	n := 0
	for _, a := range achievements {
		if a.Type == achievementType {
			n++
		}
	}
	return n
}

func TestList_SeedsAllSets(t *testing.T) {
	svc, _ := newTestService(t, func() time.Time { return achNow })

	achievements, err := svc.List(context.Background(), "p1")
	require.NoError(t, err)

	assert.Equal(t, len(careerTemplates), countByType(achievements, domain.AchievementTypeCareer))
	assert.Equal(t, len(eventTemplates), countByType(achievements, domain.AchievementTypeEvent))
	assert.Equal(t, WeeklyCount, countByType(achievements, domain.AchievementTypeWeekly))
}

func TestClaim_CreditsRewardsOnce(t *testing.T) {
	svc, store := newTestService(t, func() time.Time { return achNow })
	ctx := context.Background()

	achievements, err := svc.List(ctx, "p1")
	require.NoError(t, err)
	target := findByKey(t, achievements, "career_first_job")

	p, err := store.Get(ctx, "p1")
	require.NoError(t, err)
	Apply(p, Action{Requirement: domain.ReqJobsCompleted, Amount: 1})
	require.NoError(t, store.Update(ctx, p))
	cashBefore := p.Stats.Cash

	result, err := svc.Claim(ctx, "p1", target.ID)
	require.NoError(t, err)
	assert.True(t, result.Achievement.IsCompleted)
	require.NotNil(t, result.Achievement.CompletedAt)

	got, err := store.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, cashBefore+target.Rewards.Cash, got.Stats.Cash)
	assert.Equal(t, target.Rewards.XP, got.Stats.XP)
	assert.Equal(t, target.Rewards.Points, got.Stats.Points)

	_, err = svc.Claim(ctx, "p1", target.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyClaimed)
}

func TestClaim_RejectsUnmetProgress(t *testing.T) {
	svc, _ := newTestService(t, func() time.Time { return achNow })
	ctx := context.Background()

	achievements, err := svc.List(ctx, "p1")
	require.NoError(t, err)
	target := findByKey(t, achievements, "career_jobs_100")

	_, err = svc.Claim(ctx, "p1", target.ID)
	assert.ErrorIs(t, err, domain.ErrNotClaimable)
}

func TestClaim_UnknownAchievement(t *testing.T) {
	svc, _ := newTestService(t, func() time.Time { return achNow })

	_, err := svc.Claim(context.Background(), "p1", "no-such-id")
	assert.ErrorIs(t, err, domain.ErrAchievementNotFound)
}

func TestList_RegeneratesWeeklyAfterDeadline(t *testing.T) {
	current := achNow
	svc, _ := newTestService(t, func() time.Time { return current })
	ctx := context.Background()

	before, err := svc.List(ctx, "p1")
	require.NoError(t, err)
	beforeIDs := make(map[string]bool)
	for _, a := range before {
		if a.Type == domain.AchievementTypeWeekly {
			beforeIDs[a.ID] = true
		}
	}
	require.Len(t, beforeIDs, WeeklyCount)

	// Past Friday noon the whole weekly set is replaced.
	current = achNow.Add(72 * time.Hour)

	after, err := svc.List(ctx, "p1")
	require.NoError(t, err)
	weekly := 0
	for _, a := range after {
		if a.Type == domain.AchievementTypeWeekly {
			weekly++
			assert.False(t, beforeIDs[a.ID], "expected a fresh weekly instance")
			assert.Zero(t, a.CurrentProgress)
		}
	}
	assert.Equal(t, WeeklyCount, weekly)
}

type recordingBus struct {
	events []event.Event
}

func (b *recordingBus) Publish(ctx context.Context, e event.Event) error {
	b.events = append(b.events, e)
	return nil
}
func (b *recordingBus) Subscribe(eventType event.Type, handler event.Handler) {}

func TestClaim_PublishesEvent(t *testing.T) {
	now := func() time.Time { return achNow }
	store := memstore.New().WithClock(now)
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, state.NewPlayer("p1", achNow)))

	bus := &recordingBus{}
	svc := &service{store: store, now: now, events: bus}

	achievements, err := svc.List(ctx, "p1")
	require.NoError(t, err)
	target := findByKey(t, achievements, "career_first_job")

	p, err := store.Get(ctx, "p1")
	require.NoError(t, err)
	Apply(p, Action{Requirement: domain.ReqJobsCompleted, Amount: 1})
	require.NoError(t, store.Update(ctx, p))

	_, err = svc.Claim(ctx, "p1", target.ID)
	require.NoError(t, err)

	require.NotEmpty(t, bus.events)
	assert.Equal(t, event.AchievementClaimed, bus.events[0].Type)
}
