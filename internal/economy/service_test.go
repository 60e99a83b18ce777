package economy

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironhorse/railyard/internal/catalog"
	"github.com/ironhorse/railyard/internal/domain"
	"github.com/ironhorse/railyard/internal/market"
	"github.com/ironhorse/railyard/internal/memstore"
	"github.com/ironhorse/railyard/internal/state"
)

// A Friday, on a half-hour boundary.
var testNow = time.Date(2026, time.March, 6, 14, 30, 0, 0, time.UTC)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

// newTestService wires a memstore, a seeded generator and a pinned
// clock. The auto-assign roll defaults to 1.0 (never pad).
func newTestService(t *testing.T) (Service, *memstore.Store, *testClock) {
	t.Helper()
	clock := &testClock{now: testNow}
	store := memstore.New().WithClock(clock.Now)
	gen := market.NewSeededGenerator(42)
	svc := NewServiceWithClock(store, gen, catalog.DefaultHomeCity, clock.Now, func() float64 { return 1 })
	return svc, store, clock
}

// seedPlayer creates a starter player directly in the store, optionally
// mutated before the write, bypassing the service's lazy-create path.
func seedPlayer(t *testing.T, store *memstore.Store, mutate func(*domain.PlayerState)) *domain.PlayerState {
	t.Helper()
	p := state.NewPlayer("p1", testNow)
	if mutate != nil {
		mutate(p)
	}
	require.NoError(t, store.Create(context.Background(), p))
	return p
}

func availableJob(id string, tier, hp, minutes, distance int, payout, xp int64) domain.Job {
	jobType := domain.JobTypeLocalFreight
	if tier == 2 {
		jobType = domain.JobTypeMainlineFreight
	}
	return domain.Job{
		ID:          id,
		JobID:       "LCL-001",
		Tier:        tier,
		JobType:     jobType,
		FreightType: catalog.FreightGeneral,
		Origin:      catalog.DefaultHomeCity,
		Destination: catalog.DefaultHomeCity,
		DistanceMi:  distance,
		CarCount:    5,
		Manifest: []domain.ManifestEntry{
			{CarType: "Boxcar", Content: "General Freight", Count: 5, Weight: 70},
		},
		HPRequired:  hp,
		TimeMinutes: minutes,
		Payout:      payout,
		XPReward:    xp,
		Status:      domain.JobStatusAvailable,
		GeneratedAt: testNow,
	}
}

func TestGetPlayerCreatesStarterState(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	p, err := svc.GetPlayer(ctx, "newcomer")
	require.NoError(t, err)

	assert.Equal(t, int64(state.StarterCash), p.Stats.Cash)
	assert.Equal(t, 1, p.Stats.Level)
	assert.Equal(t, 2, p.Stats.NextLocoID)

	require.Len(t, p.Locomotives, 1)
	assert.Equal(t, catalog.StarterModel, p.Locomotives[0].Model)
	assert.Equal(t, "0001", p.Locomotives[0].UnitNumber)
	assert.Equal(t, float64(100), p.Locomotives[0].Health)
	assert.NotZero(t, p.Locomotives[0].BaseValue)

	// First contact populates the full market and all achievement sets.
	assert.Len(t, p.Jobs, 11)
	assert.NotEmpty(t, p.DealershipStock)
	assert.Equal(t, testNow, p.MarketRefreshedAt)
	assert.NotEmpty(t, p.Achievements)
}

func TestGetPlayerIsStableOnSecondRead(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.GetPlayer(ctx, "p1")
	require.NoError(t, err)
	second, err := svc.GetPlayer(ctx, "p1")
	require.NoError(t, err)

	// Housekeeping already ran; the second read commits nothing.
	assert.Equal(t, first.Version, second.Version)
	assert.Equal(t, first.MarketRefreshedAt, second.MarketRefreshedAt)
}

func TestTickRefreshesWhenDue(t *testing.T) {
	svc, _, clock := newTestService(t)
	ctx := context.Background()

	p, err := svc.GetPlayer(ctx, "p1")
	require.NoError(t, err)
	stamp := p.MarketRefreshedAt

	// One minute later: off the boundary, nothing happens.
	clock.now = testNow.Add(time.Minute)
	require.NoError(t, svc.Tick(ctx, "p1"))
	p, err = svc.GetPlayer(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, stamp, p.MarketRefreshedAt)

	// On the next boundary the board is 30 minutes old.
	clock.now = testNow.Add(30 * time.Minute)
	require.NoError(t, svc.Tick(ctx, "p1"))
	p, err = svc.GetPlayer(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, clock.now, p.MarketRefreshedAt)
}

func TestTickIsIdempotentWithinTheMinute(t *testing.T) {
	svc, _, clock := newTestService(t)
	ctx := context.Background()

	_, err := svc.GetPlayer(ctx, "p1")
	require.NoError(t, err)

	clock.now = testNow.Add(30 * time.Minute)
	require.NoError(t, svc.Tick(ctx, "p1"))
	p, err := svc.GetPlayer(ctx, "p1")
	require.NoError(t, err)
	stamp := p.MarketRefreshedAt

	// Second tick in the same minute: the board is seconds old, not
	// stale, so nothing regenerates.
	clock.now = clock.now.Add(5 * time.Second)
	require.NoError(t, svc.Tick(ctx, "p1"))
	p, err = svc.GetPlayer(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, stamp, p.MarketRefreshedAt)
}

func TestTriggerRefreshPreservesInProgressJobs(t *testing.T) {
	svc, store, clock := newTestService(t)
	ctx := context.Background()

	seedPlayer(t, store, func(p *domain.PlayerState) {
		p.Jobs = []domain.Job{availableJob("j1", 1, 1500, 10, 10, 2000, 50)}
	})

	_, err := svc.AssignJob(ctx, "p1", "j1", []string{firstLocoID(t, store)})
	require.NoError(t, err)

	clock.now = testNow.Add(3 * time.Minute)
	p, err := svc.TriggerRefresh(ctx, "p1")
	require.NoError(t, err)

	kept := p.JobByID("j1")
	require.NotNil(t, kept)
	assert.Equal(t, domain.JobStatusInProgress, kept.Status)
	assert.Equal(t, clock.now, p.MarketRefreshedAt)
	// Fresh board on top of the preserved job.
	assert.Len(t, p.Jobs, 12)
}

func firstLocoID(t *testing.T, store *memstore.Store) string {
	t.Helper()
	p, err := store.Get(context.Background(), "p1")
	require.NoError(t, err)
	require.NotEmpty(t, p.Locomotives)
	return p.Locomotives[0].ID
}
