package database

import (
	"context"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightadmin/logging"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Path = filepath.Join(t.TempDir(), "test.db")
	db, err := New(cfg, logging.NewLogger(&logging.Config{Output: "discard"}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestNew_AppliesMigrations(t *testing.T) {
	db := newTestDatabase(t)

	var count int
	err := db.ReadDB().QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = db.WriteDB().Exec("INSERT INTO sessions (id, access_token, created_at) VALUES ('s1', 't', 0)")
	assert.NoError(t, err)
}

func TestNew_ReopenIsIdempotent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Path = filepath.Join(t.TempDir(), "reopen.db")
	logger := logging.NewLogger(&logging.Config{Output: "discard"})

	first, err := New(cfg, logger)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := New(cfg, logger)
	require.NoError(t, err)
	defer second.Close()

	var count int
	require.NoError(t, second.ReadDB().QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestHealth(t *testing.T) {
	db := newTestDatabase(t)

	health, err := db.Health(context.Background())
	require.NoError(t, err)
	assert.Contains(t, health, "read_pool")
	assert.Contains(t, health, "write_pool")
}

func TestLoadMigrations(t *testing.T) {
	migrations, err := loadMigrations(fstest.MapFS{
		"migrations/2_second.sql": {Data: []byte("SELECT 2;")},
		"migrations/1_first.sql":  {Data: []byte("SELECT 1;")},
	})
	require.NoError(t, err)
	require.Len(t, migrations, 2)
	assert.Equal(t, "1_first", migrations[0].Name)
	assert.Equal(t, int64(2), migrations[1].Version)

	tests := map[string]fstest.MapFS{
		"duplicate": {
			"migrations/1_a.sql": {Data: []byte("")},
			"migrations/1_b.sql": {Data: []byte("")},
		},
		"no delimiter": {"migrations/1.sql": {Data: []byte("")}},
		"not sql":      {"migrations/1_a.txt": {Data: []byte("")}},
		"bad version":  {"migrations/x_a.sql": {Data: []byte("")}},
	}
	for name, fsys := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := loadMigrations(fsys)
			assert.Error(t, err)
		})
	}
}

func TestBuildDSN(t *testing.T) {
	dsn := buildDSN(Config{Path: "/tmp/x.db", BusyTimeoutMs: 100, EnableWAL: true})
	assert.Contains(t, dsn, "file:/tmp/x.db?")
	assert.Contains(t, dsn, "busy_timeout%28100%29")
	assert.Contains(t, dsn, "journal_mode%28WAL%29")
}
