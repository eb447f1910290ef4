package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})
	return store
}

func TestNewStore(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "ledger.db"), store.Path())
	assert.FileExists(t, store.Path())

	version, err := store.schemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}

func TestNewStore_Reopen(t *testing.T) {
	dir := t.TempDir()

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	var applied int
	require.NoError(t, second.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&applied))
	assert.Equal(t, 1, applied)
}

func TestNewStore_BadDirectory(t *testing.T) {
	_, err := NewStore("/dev/null/ledger")
	assert.Error(t, err)
}

func TestMigrate_SkipsAppliedAndUnnumbered(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	fsys := fstest.MapFS{
		"001_ledger.up.sql":  {Data: []byte("CREATE TABLE should_not_run (id INTEGER)")},
		"002_notes.up.sql":   {Data: []byte("CREATE TABLE notes (id INTEGER PRIMARY KEY)")},
		"002_notes.down.sql": {Data: []byte("DROP TABLE notes")},
		"readme.up.sql":      {Data: []byte("not sql")},
	}
	require.NoError(t, store.migrate(ctx, fsys))

	version, err := store.schemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, version)

	var n int
	require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE name = 'should_not_run'").Scan(&n))
	assert.Zero(t, n)
}

func TestMigrate_FailureRollsBack(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	err := store.migrate(ctx, fstest.MapFS{
		"002_broken.up.sql": {Data: []byte("CREATE TABLE broken (")},
	})
	assert.ErrorContains(t, err, "002_broken.up.sql")

	version, err := store.schemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}
