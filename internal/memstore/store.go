// Package memstore is the in-memory player store used by tests and
// local runs without Postgres. It stores documents as raw JSON so the
// read path exercises exactly the same schema-validation and
// migration boundary as the Postgres store.
package memstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/ironhorse/railyard/internal/domain"
	"github.com/ironhorse/railyard/internal/leveling"
	"github.com/ironhorse/railyard/internal/repository"
	"github.com/ironhorse/railyard/internal/state"
)

type record struct {
	doc     []byte
	version int64
}

// Store implements repository.Player in memory.
type Store struct {
	mu   sync.RWMutex
	docs map[string]*record
	now  func() time.Time
}

// New creates an empty store.
func New() *Store {
	return &Store{
		docs: make(map[string]*record),
		now:  time.Now,
	}
}

// WithClock overrides the store's clock; tests pin it.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Get decodes, validates and migrates the stored document.
func (s *Store) Get(ctx context.Context, playerID string) (*domain.PlayerState, error) {
	s.mu.RLock()
	rec, ok := s.docs[playerID]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, playerID)
	}

	if err := state.ValidateDocument(rec.doc); err != nil {
		return nil, err
	}

	var p domain.PlayerState
	if err := json.Unmarshal(rec.doc, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptDocument, err)
	}
	state.Migrate(&p, s.now())
	p.Version = rec.version
	return &p, nil
}

// Create stores a fresh document at version 1.
func (s *Store) Create(ctx context.Context, st *domain.PlayerState) error {
	doc, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to encode player document: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.docs[st.PlayerID]; exists {
		return fmt.Errorf("%w: player %s already exists", domain.ErrConflict, st.PlayerID)
	}
	s.docs[st.PlayerID] = &record{doc: doc, version: 1}
	st.Version = 1
	return nil
}

// Update is a compare-and-set on the document version.
func (s *Store) Update(ctx context.Context, st *domain.PlayerState) error {
	st.UpdatedAt = s.now()
	doc, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to encode player document: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.docs[st.PlayerID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, st.PlayerID)
	}
	if rec.version != st.Version {
		return fmt.Errorf("%w: have %d, stored %d", domain.ErrConflict, st.Version, rec.version)
	}
	rec.doc = doc
	rec.version++
	st.Version = rec.version
	return nil
}

// IncrementStats bumps the scalar stats atomically. Level stays
// consistent because every read re-derives it from XP.
func (s *Store) IncrementStats(ctx context.Context, playerID string, deltas repository.StatDeltas) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.docs[playerID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, playerID)
	}

	var p domain.PlayerState
	if err := json.Unmarshal(rec.doc, &p); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCorruptDocument, err)
	}

	p.Stats.Cash += deltas.Cash
	p.Stats.XP += deltas.XP
	p.Stats.Points += deltas.Points
	p.Stats.Level = leveling.LevelFor(p.Stats.XP)
	p.UpdatedAt = s.now()

	doc, err := json.Marshal(&p)
	if err != nil {
		return fmt.Errorf("failed to encode player document: %w", err)
	}
	rec.doc = doc
	rec.version++
	return nil
}

// ListIDs enumerates stored players in no particular order.
func (s *Store) ListIDs(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.docs))
	for id := range s.docs {
		ids = append(ids, id)
	}
	return ids, nil
}

var _ repository.Player = (*Store)(nil)
