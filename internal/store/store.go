// Package store persists the single saved plan of a nutriplan installation.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jonathan/nutriplan/internal/types"
)

// DefaultKey is the key the saved plan is stored under.
const DefaultKey = "savedMealPlan"

// Store holds at most one saved plan.
type Store interface {
	// Load returns the saved plan, or nil when there is none. A corrupt entry is
	// cleared and reported as no plan.
	Load(ctx context.Context) (*types.SavedPlan, error)
	Save(ctx context.Context, plan types.SavedPlan) error
	Clear(ctx context.Context) error
	Close() error
}

// Backend is a byte-oriented key-value store.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// PlanStore implements Store on top of a Backend.
type PlanStore struct {
	backend Backend
	key     string
	logger  zerolog.Logger
}

// New creates a PlanStore. An empty key selects DefaultKey.
func New(backend Backend, key string, logger zerolog.Logger) *PlanStore {
	if key == "" {
		key = DefaultKey
	}
	return &PlanStore{backend: backend, key: key, logger: logger}
}

// Load implements Store.
func (s *PlanStore) Load(ctx context.Context) (*types.SavedPlan, error) {
	data, err := s.backend.Get(ctx, s.key)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, &PersistenceError{Op: "load", Cause: err}
	}

	plan, err := decode(data)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", s.key).Msg("discarding corrupt saved plan")
		if err := s.backend.Delete(ctx, s.key); err != nil && !errors.Is(err, ErrNotFound) {
			s.logger.Warn().Err(err).Str("key", s.key).Msg("failed to clear corrupt saved plan")
		}
		return nil, nil
	}
	return plan, nil
}

// Save implements Store.
func (s *PlanStore) Save(ctx context.Context, plan types.SavedPlan) error {
	if !plan.Plan.Complete() {
		return &PersistenceError{Op: "save", Cause: fmt.Errorf("plan has %d days, expected %d", len(plan.Plan), types.DaysPerWeek)}
	}
	data, err := json.Marshal(plan)
	if err != nil {
		return &PersistenceError{Op: "save", Cause: err}
	}
	if err := s.backend.Put(ctx, s.key, data); err != nil {
		return &PersistenceError{Op: "save", Cause: err}
	}
	s.logger.Debug().Str("key", s.key).Int("bytes", len(data)).Msg("saved plan")
	return nil
}

// Clear implements Store.
func (s *PlanStore) Clear(ctx context.Context) error {
	if err := s.backend.Delete(ctx, s.key); err != nil && !errors.Is(err, ErrNotFound) {
		return &PersistenceError{Op: "clear", Cause: err}
	}
	return nil
}

// Close implements Store.
func (s *PlanStore) Close() error {
	return s.backend.Close()
}

func decode(data []byte) (*types.SavedPlan, error) {
	var plan types.SavedPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("unparseable saved plan: %w", err)
	}
	if !plan.Plan.Complete() {
		return nil, fmt.Errorf("saved plan has %d days", len(plan.Plan))
	}
	return &plan, nil
}
