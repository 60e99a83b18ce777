// Package postgres implements the player store on a jsonb document
// column with an optimistic version counter.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ironhorse/railyard/internal/domain"
	"github.com/ironhorse/railyard/internal/leveling"
	"github.com/ironhorse/railyard/internal/repository"
	"github.com/ironhorse/railyard/internal/state"
)

// PlayerRepository implements repository.Player for PostgreSQL.
type PlayerRepository struct {
	db  *pgxpool.Pool
	now func() time.Time
}

// NewPlayerRepository creates a new PlayerRepository
func NewPlayerRepository(db *pgxpool.Pool) *PlayerRepository {
	return &PlayerRepository{db: db, now: time.Now}
}

// Get reads, schema-validates and migrates the stored document. A
// migrated document is written back best-effort; losing that race is
// fine because the next reader migrates again.
func (r *PlayerRepository) Get(ctx context.Context, playerID string) (*domain.PlayerState, error) {
	var (
		doc     []byte
		version int64
	)
	query := `SELECT doc, version FROM players WHERE player_id = $1`
	err := r.db.QueryRow(ctx, query, playerID).Scan(&doc, &version)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, playerID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query player: %v", domain.ErrUnavailable, err)
	}

	if err := state.ValidateDocument(doc); err != nil {
		return nil, err
	}

	var p domain.PlayerState
	if err := json.Unmarshal(doc, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptDocument, err)
	}
	p.Version = version

	if state.Migrate(&p, r.now()) {
		if err := r.Update(ctx, &p); err != nil && !errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
	}
	return &p, nil
}

// Create stores a fresh document at version 1.
func (r *PlayerRepository) Create(ctx context.Context, st *domain.PlayerState) error {
	doc, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to encode player document: %w", err)
	}

	query := `
		INSERT INTO players (player_id, doc, version, updated_at)
		VALUES ($1, $2, 1, NOW())
		ON CONFLICT (player_id) DO NOTHING
	`
	tag, err := r.db.Exec(ctx, query, st.PlayerID, doc)
	if err != nil {
		return fmt.Errorf("%w: failed to insert player: %v", domain.ErrUnavailable, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: player %s already exists", domain.ErrConflict, st.PlayerID)
	}
	st.Version = 1
	return nil
}

// Update is a compare-and-set on the document version.
func (r *PlayerRepository) Update(ctx context.Context, st *domain.PlayerState) error {
	st.UpdatedAt = r.now()
	doc, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to encode player document: %w", err)
	}

	query := `
		UPDATE players
		SET doc = $2, version = version + 1, updated_at = NOW()
		WHERE player_id = $1 AND version = $3
	`
	tag, err := r.db.Exec(ctx, query, st.PlayerID, doc, st.Version)
	if err != nil {
		return fmt.Errorf("%w: failed to update player: %v", domain.ErrUnavailable, err)
	}
	if tag.RowsAffected() == 0 {
		// Distinguish a stale version from a missing row.
		var exists bool
		checkQuery := `SELECT EXISTS (SELECT 1 FROM players WHERE player_id = $1)`
		if checkErr := r.db.QueryRow(ctx, checkQuery, st.PlayerID).Scan(&exists); checkErr != nil {
			return fmt.Errorf("%w: failed to check player: %v", domain.ErrUnavailable, checkErr)
		}
		if !exists {
			return fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, st.PlayerID)
		}
		return fmt.Errorf("%w: stale version %d for player %s", domain.ErrConflict, st.Version, st.PlayerID)
	}
	st.Version++
	return nil
}

// IncrementStats bumps the scalar stats inside one transaction with
// the row locked, so concurrent claims cannot lose an increment. Level
// is re-derived from the new XP before the write.
func (r *PlayerRepository) IncrementStats(ctx context.Context, playerID string, deltas repository.StatDeltas) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %v", domain.ErrUnavailable, err)
	}
	defer tx.Rollback(ctx)

	var doc []byte
	query := `SELECT doc FROM players WHERE player_id = $1 FOR UPDATE`
	err = tx.QueryRow(ctx, query, playerID).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, playerID)
	}
	if err != nil {
		return fmt.Errorf("%w: failed to lock player: %v", domain.ErrUnavailable, err)
	}

	var p domain.PlayerState
	if err := json.Unmarshal(doc, &p); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCorruptDocument, err)
	}

	p.Stats.Cash += deltas.Cash
	p.Stats.XP += deltas.XP
	p.Stats.Points += deltas.Points
	p.Stats.Level = leveling.LevelFor(p.Stats.XP)

	updated, err := json.Marshal(&p)
	if err != nil {
		return fmt.Errorf("failed to encode player document: %w", err)
	}

	writeQuery := `
		UPDATE players
		SET doc = $2, version = version + 1, updated_at = NOW()
		WHERE player_id = $1
	`
	if _, err := tx.Exec(ctx, writeQuery, playerID, updated); err != nil {
		return fmt.Errorf("%w: failed to write stats: %v", domain.ErrUnavailable, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: failed to commit stats: %v", domain.ErrUnavailable, err)
	}
	return nil
}

// ListIDs enumerates all stored players for the periodic sweep.
func (r *PlayerRepository) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT player_id FROM players ORDER BY player_id`)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list players: %v", domain.ErrUnavailable, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: failed to scan player id: %v", domain.ErrUnavailable, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to read players: %v", domain.ErrUnavailable, err)
	}
	return ids, nil
}

var _ repository.Player = (*PlayerRepository)(nil)
