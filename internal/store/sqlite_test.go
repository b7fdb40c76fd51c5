package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/nutriplan/internal/testutil"
	"github.com/jonathan/nutriplan/internal/types"
)

func TestSQLite(t *testing.T) {
	backend, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "nested", "plans.db"))
	require.NoError(t, err)
	defer func() { _ = backend.Close() }()

	exerciseStore(t, backend)
}

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "plans.db")

	s, err := Open(ctx, Config{Driver: DriverSQLite, SQLitePath: path}, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, types.NewSavedPlan(testutil.Plan(7))))
	require.NoError(t, s.Close())

	// migrations are already applied on the second open
	s, err = Open(ctx, Config{SQLitePath: path}, zerolog.Nop())
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Len(t, loaded.Plan, 7)
}
