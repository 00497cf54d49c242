package store_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"codeberg.org/mutker/vitalchart/internal/logger"
	"codeberg.org/mutker/vitalchart/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const schemaV1SQL = `
    CREATE TABLE schema_versions (version INTEGER PRIMARY KEY, applied_at TEXT NOT NULL);
    INSERT INTO schema_versions (version, applied_at) VALUES (1, datetime('now'));
    CREATE TABLE raw_data (
        timestamp INTEGER NOT NULL,
        user_id TEXT NOT NULL,
        metric_type TEXT NOT NULL,
        value REAL NOT NULL,
        is_imputed INTEGER NOT NULL DEFAULT 0,
        imputation_method TEXT,
        gap_duration_hours REAL,
        PRIMARY KEY (timestamp, user_id, metric_type)
    );
    INSERT INTO raw_data (timestamp, user_id, metric_type, value) VALUES (1709251200, 'u1', 'intraday_heart_rate', 60);`

func TestSchemaMismatchBacksUpAndRebuilds(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "samples.db")
	backupDir := filepath.Join(dir, "backups")

	old, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	_, err = old.Exec(schemaV1SQL)
	require.NoError(t, err)
	require.NoError(t, old.Close())

	repo, err := store.NewRepository(store.Config{DBPath: dbPath, BackupDir: backupDir}, logger.New())
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	backups, err := filepath.Glob(filepath.Join(backupDir, "samples_v1_*.db"))
	require.NoError(t, err)
	require.Len(t, backups, 1)

	// The backup keeps the old rows.
	backup, err := sql.Open("sqlite3", backups[0])
	require.NoError(t, err)
	defer backup.Close()
	var n int
	require.NoError(t, backup.QueryRow("SELECT COUNT(*) FROM raw_data").Scan(&n))
	assert.Equal(t, 1, n)

	// The rebuilt database is empty and current.
	users, err := repo.Users(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)

	db, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	defer db.Close()
	version, err := store.GetSchemaVersion(db)
	require.NoError(t, err)
	assert.Equal(t, store.SchemaVersion, version)
}

func TestCurrentSchemaIsKept(t *testing.T) {
	dir := t.TempDir()
	cfg := store.Config{DBPath: filepath.Join(dir, "samples.db"), BackupDir: filepath.Join(dir, "backups")}

	repo, err := store.NewRepository(cfg, logger.New())
	require.NoError(t, err)
	_, err = repo.Store(context.Background(), []store.Record{
		record("u1", "intraday_spo2", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 97, false, 0),
	})
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	repo, err = store.NewRepository(cfg, logger.New())
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	users, err := repo.Users(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)

	backups, err := filepath.Glob(filepath.Join(cfg.BackupDir, "*.db"))
	require.NoError(t, err)
	assert.Empty(t, backups)
}
