package memstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironhorse/railyard/internal/domain"
	"github.com/ironhorse/railyard/internal/repository"
	"github.com/ironhorse/railyard/internal/state"
)

var storeNow = time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)

func newTestStore() *Store {
	return New().WithClock(func() time.Time { return storeNow })
}

func TestGet_NotFound(t *testing.T) {
	s := newTestStore()
	_, err := s.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrPlayerNotFound)
}

func TestCreateAndGet_RoundTrip(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	p := state.NewPlayer("p1", storeNow)
	require.NoError(t, s.Create(ctx, p))
	assert.Equal(t, int64(1), p.Version)

	got, err := s.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", got.PlayerID)
	assert.Equal(t, int64(state.StarterCash), got.Stats.Cash)
	assert.Equal(t, int64(1), got.Version)
}

func TestCreate_DuplicateConflicts(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, state.NewPlayer("p1", storeNow)))
	err := s.Create(ctx, state.NewPlayer("p1", storeNow))
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUpdate_CompareAndSet(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	require.NoError(t, s.Create(ctx, state.NewPlayer("p1", storeNow)))

	// Two readers grab version 1.
	a, err := s.Get(ctx, "p1")
	require.NoError(t, err)
	b, err := s.Get(ctx, "p1")
	require.NoError(t, err)

	a.Stats.Cash -= 1000
	require.NoError(t, s.Update(ctx, a))
	assert.Equal(t, int64(2), a.Version)

	// The second writer is now stale and must lose without writing.
	b.Stats.Cash -= 99999
	err = s.Update(ctx, b)
	assert.ErrorIs(t, err, domain.ErrConflict)

	got, err := s.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(state.StarterCash-1000), got.Stats.Cash)
}

func TestIncrementStats_AtomicUnderConcurrency(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	require.NoError(t, s.Create(ctx, state.NewPlayer("p1", storeNow)))

	const workers = 16
	const perWorker = 25
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				_ = s.IncrementStats(ctx, "p1", repository.StatDeltas{Cash: 10, XP: 5})
			}
		}()
	}
	wg.Wait()

	got, err := s.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(state.StarterCash+workers*perWorker*10), got.Stats.Cash)
	assert.Equal(t, int64(workers*perWorker*5), got.Stats.XP)
}

func TestIncrementStats_KeepsLevelDerived(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	require.NoError(t, s.Create(ctx, state.NewPlayer("p1", storeNow)))

	require.NoError(t, s.IncrementStats(ctx, "p1", repository.StatDeltas{XP: 27000}))

	got, err := s.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 10, got.Stats.Level)
}

func TestGet_MigratesLegacyDocument(t *testing.T) {
	s := newTestStore()

	// Seed a raw legacy document directly, as a document written by an
	// old client would look.
	s.docs["old"] = &record{
		doc:     []byte(`{"player_id":"old","stats":{"cash":500,"xp":1200}}`),
		version: 7,
	}

	got, err := s.Get(context.Background(), "old")
	require.NoError(t, err)
	assert.Equal(t, domain.SchemaVersion, got.SchemaVersion)
	assert.Equal(t, 2, got.Stats.Level)
	assert.NotNil(t, got.Jobs)
	assert.Equal(t, int64(7), got.Version)
}

func TestGet_CorruptDocumentFatal(t *testing.T) {
	s := newTestStore()
	s.docs["bad"] = &record{doc: []byte(`{"stats":{"cash":1}}`), version: 1}

	_, err := s.Get(context.Background(), "bad")
	assert.ErrorIs(t, err, domain.ErrCorruptDocument)
}
