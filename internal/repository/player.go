package repository

import (
	"context"

	"github.com/ironhorse/railyard/internal/domain"
)

// StatDeltas is an atomic increment applied to the scalar stats of a
// player document without rewriting the document body. Used where a
// bump must survive concurrent full-document commits.
type StatDeltas struct {
	Cash   int64
	XP     int64
	Points int
}

// Player is the state store for player documents. Implementations must
// guarantee:
//
//   - Get returns a fully migrated, schema-valid document, or
//     domain.ErrPlayerNotFound.
//   - Update is a compare-and-set against PlayerState.Version; a stale
//     version fails with domain.ErrConflict and writes nothing. The
//     caller decides whether to reload and retry; the store never
//     retries on its own.
//   - IncrementStats applies numeric deltas atomically.
//
// Transient backend failures surface as domain.ErrUnavailable wraps.
type Player interface {
	Get(ctx context.Context, playerID string) (*domain.PlayerState, error)
	Create(ctx context.Context, state *domain.PlayerState) error
	Update(ctx context.Context, state *domain.PlayerState) error
	IncrementStats(ctx context.Context, playerID string, deltas StatDeltas) error

	// ListIDs enumerates all stored players; the periodic tick sweeps
	// them.
	ListIDs(ctx context.Context) ([]string, error)
}
