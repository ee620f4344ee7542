package iocache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/fuikk/fuikk/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateHistory_Unsupported(t *testing.T) {
	_, err := MigrateHistory(schema.NoneBackend, "", -1)
	assert.ErrorContains(t, err, "not supported")

	_, err = MigrateHistory(schema.RedisBackend, "redis://localhost:6379/0", -1)
	assert.Error(t, err)
}

func TestMigrateHistory_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")

	result, err := MigrateHistory(schema.SQLiteBackend, dbPath, -1)
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Equal(t, uint(0), result.From)
	assert.Equal(t, uint(2), result.To)

	// Already at latest
	result, err = MigrateHistory(schema.SQLiteBackend, dbPath, -1)
	require.NoError(t, err)
	assert.False(t, result.Changed)
	assert.Equal(t, uint(2), result.To)

	result, err = MigrateHistory(schema.SQLiteBackend, dbPath, 1)
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Equal(t, uint(1), result.To)

	result, err = MigrateHistory(schema.SQLiteBackend, dbPath, 0)
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Equal(t, uint(0), result.To)

	_, err = MigrateHistory(schema.SQLiteBackend, dbPath, -1)
	require.NoError(t, err)
}

func TestMigrateHistory_StoreCompatible(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	_, err := MigrateHistory(schema.SQLiteBackend, dbPath, -1)
	require.NoError(t, err)

	store, err := NewHistoryStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	runID, err := store.BeginRun(time.Now(), nil)
	require.NoError(t, err)
	assert.Greater(t, runID, int64(0))
}

func TestMigrationsDir(t *testing.T) {
	for _, backend := range []schema.DatabaseBackend{schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend} {
		dir, err := migrationsDir(backend)
		require.NoError(t, err)
		entries, err := migrationsFS.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 4, "backend %s", backend)
	}
}
