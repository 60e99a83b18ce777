package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/ironhorse/railyard/internal/domain"
)

// SnapshotCache wraps a Player store with a short-TTL read cache for
// the snapshot endpoints, which are polled far more often than state
// changes. The cache never shares pointers: every Get hands out a
// private copy of the document, so a service that mutates its snapshot
// between validation and commit cannot leak half-applied state to
// concurrent readers. Mutations pass through untouched and drop the
// cached entry.
type SnapshotCache struct {
	store Player
	lru   *expirable.LRU[string, *domain.PlayerState]
}

// NewSnapshotCache creates a caching wrapper with the given capacity
// and entry TTL.
func NewSnapshotCache(store Player, size int, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{
		store: store,
		lru:   expirable.NewLRU[string, *domain.PlayerState](size, nil, ttl),
	}
}

// Get returns a copy of the cached snapshot when fresh, reading
// through otherwise. The cached entry itself is a copy too, so later
// caller mutations can never poison it.
func (c *SnapshotCache) Get(ctx context.Context, playerID string) (*domain.PlayerState, error) {
	if cached, ok := c.lru.Get(playerID); ok {
		clone, err := cloneState(cached)
		if err == nil {
			return clone, nil
		}
		c.lru.Remove(playerID)
	}

	state, err := c.store.Get(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if clone, err := cloneState(state); err == nil {
		c.lru.Add(playerID, clone)
	}
	return state, nil
}

// Create passes through and primes nothing; the next Get reloads.
func (c *SnapshotCache) Create(ctx context.Context, state *domain.PlayerState) error {
	c.lru.Remove(state.PlayerID)
	return c.store.Create(ctx, state)
}

// Update passes through and drops the cached snapshot.
func (c *SnapshotCache) Update(ctx context.Context, state *domain.PlayerState) error {
	c.lru.Remove(state.PlayerID)
	return c.store.Update(ctx, state)
}

// IncrementStats passes through and drops the cached snapshot.
func (c *SnapshotCache) IncrementStats(ctx context.Context, playerID string, deltas StatDeltas) error {
	c.lru.Remove(playerID)
	return c.store.IncrementStats(ctx, playerID, deltas)
}

// ListIDs passes through uncached.
func (c *SnapshotCache) ListIDs(ctx context.Context) ([]string, error) {
	return c.store.ListIDs(ctx)
}

// cloneState deep-copies a player document through its JSON form, the
// same isolation the stores use. Version is carried over by hand
// because it is excluded from the document body.
func cloneState(p *domain.PlayerState) (*domain.PlayerState, error) {
	doc, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode player document: %w", err)
	}
	var clone domain.PlayerState
	if err := json.Unmarshal(doc, &clone); err != nil {
		return nil, fmt.Errorf("decode player document: %w", err)
	}
	clone.Version = p.Version
	return &clone, nil
}

var _ Player = (*SnapshotCache)(nil)
