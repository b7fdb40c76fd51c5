package store

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/nutriplan/internal/testutil"
	"github.com/jonathan/nutriplan/internal/types"
)

// exerciseStore runs the behaviour every backend must share.
func exerciseStore(t *testing.T, backend Backend) {
	t.Helper()
	ctx := context.Background()
	s := New(backend, "", zerolog.Nop())

	plan, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, plan)

	saved := types.NewSavedPlan(testutil.Plan(7))
	require.NoError(t, s.Save(ctx, saved))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, saved, *loaded)

	replacement := types.NewSavedPlan(testutil.Plan(7))
	replacement.Recommendation = "Sleep 8 hours."
	require.NoError(t, s.Save(ctx, replacement))
	loaded, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Sleep 8 hours.", loaded.Recommendation)

	require.NoError(t, backend.Put(ctx, DefaultKey, []byte("{not json")))
	loaded, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, loaded)
	_, err = backend.Get(ctx, DefaultKey)
	assert.ErrorIs(t, err, ErrNotFound, "corrupt entry should be cleared")

	require.NoError(t, s.Save(ctx, saved))
	require.NoError(t, s.Clear(ctx))
	require.NoError(t, s.Clear(ctx))
	loaded, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestPlanStore_Memory(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestPlanStore_IncompleteEntryIsDiscarded(t *testing.T) {
	ctx := context.Background()
	backend := NewMemory()
	s := New(backend, "custom", zerolog.Nop())

	require.NoError(t, backend.Put(ctx, "custom", []byte(`{"plan":[],"recommendation":"x"}`)))
	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, loaded)

	_, err = backend.Get(ctx, "custom")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPlanStore_SaveRejectsIncompletePlan(t *testing.T) {
	s := New(NewMemory(), "", zerolog.Nop())

	err := s.Save(context.Background(), types.NewSavedPlan(testutil.Plan(5)))
	var persistErr *PersistenceError
	require.ErrorAs(t, err, &persistErr)
	assert.Equal(t, "save", persistErr.Op)
}

type failingBackend struct {
	err error
}

func (f failingBackend) Get(context.Context, string) ([]byte, error) { return nil, f.err }
func (f failingBackend) Put(context.Context, string, []byte) error { return f.err }
func (f failingBackend) Delete(context.Context, string) error { return f.err }
func (f failingBackend) Close() error { return nil }

func TestPlanStore_BackendFailures(t *testing.T) {
	ctx := context.Background()
	cause := errors.New("disk full")
	s := New(failingBackend{err: cause}, "", zerolog.Nop())

	var persistErr *PersistenceError

	err := s.Save(ctx, types.NewSavedPlan(testutil.Plan(7)))
	require.ErrorAs(t, err, &persistErr)
	assert.Equal(t, "save", persistErr.Op)
	assert.ErrorIs(t, err, cause)

	_, err = s.Load(ctx)
	require.ErrorAs(t, err, &persistErr)
	assert.Equal(t, "load", persistErr.Op)

	err = s.Clear(ctx)
	require.ErrorAs(t, err, &persistErr)
	assert.Equal(t, "clear", persistErr.Op)
}

func TestOpen_Drivers(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, Config{Driver: DriverMemory}, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = Open(ctx, Config{Driver: "mongo"}, zerolog.Nop())
	assert.Error(t, err)

	_, err = Open(ctx, Config{Driver: DriverPostgres}, zerolog.Nop())
	assert.ErrorContains(t, err, "DATABASE_URL")

	_, err = Open(ctx, Config{Driver: DriverRedis}, zerolog.Nop())
	assert.ErrorContains(t, err, "REDIS_ADDR")

	_, err = Open(ctx, Config{}, zerolog.Nop())
	assert.ErrorContains(t, err, "path")
}

func TestPgxMigrateURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@localhost:5432/db", pgxMigrateURL("postgres://u:p@localhost:5432/db"))
	assert.Equal(t, "pgx5://localhost/db", pgxMigrateURL("postgresql://localhost/db"))
	assert.Equal(t, "pgx5://localhost/db", pgxMigrateURL("pgx5://localhost/db"))
}
