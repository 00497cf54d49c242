package store

import (
	"database/sql"

	"codeberg.org/mutker/vitalchart/internal/errors"
	"codeberg.org/mutker/vitalchart/internal/logger"
)

const (
	// SchemaVersion 2 stores raw_data.timestamp as Unix milliseconds (UTC).
	// Version 1 stored whole seconds.
	SchemaVersion = 2

	// SQL statements derived from schema
	createTablesSQL = `
	   CREATE TABLE IF NOT EXISTS schema_versions (
	       version     INTEGER PRIMARY KEY,
	       applied_at  TEXT NOT NULL
	   );
	   CREATE TABLE IF NOT EXISTS raw_data (
	       timestamp          INTEGER NOT NULL CHECK (typeof(timestamp) = 'integer'),
	       user_id            TEXT NOT NULL,
	       metric_type        TEXT NOT NULL,
	       value              REAL NOT NULL,
	       is_imputed         INTEGER NOT NULL DEFAULT 0 CHECK (is_imputed IN (0, 1)),
	       imputation_method  TEXT,
	       gap_duration_hours REAL,
	       PRIMARY KEY (timestamp, user_id, metric_type)
	   );
	   CREATE INDEX IF NOT EXISTS raw_data_user_metric
	       ON raw_data (user_id, metric_type, timestamp);`

	upsertSampleSQL = `
    INSERT INTO raw_data (
        timestamp, user_id, metric_type, value,
        is_imputed, imputation_method, gap_duration_hours
    ) VALUES (?, ?, ?, ?, ?, ?, ?)
    ON CONFLICT (timestamp, user_id, metric_type) DO UPDATE SET
        value = excluded.value,
        is_imputed = excluded.is_imputed,
        imputation_method = excluded.imputation_method,
        gap_duration_hours = excluded.gap_duration_hours`

	selectSamplesSQL = `
    SELECT timestamp, value, is_imputed, COALESCE(imputation_method, '')
    FROM raw_data
    WHERE user_id = ? AND metric_type = ?
      AND timestamp BETWEEN ? AND ?
      AND (? = 1 OR is_imputed = 0)
    ORDER BY timestamp
    LIMIT ? OFFSET ?`

	selectMetricsSQL = `
    SELECT DISTINCT metric_type FROM raw_data ORDER BY metric_type`

	selectUsersSQL = `
    SELECT
        user_id,
        COUNT(*),
        MIN(timestamp),
        MAX(timestamp),
        COUNT(DISTINCT metric_type),
        COUNT(DISTINCT date(timestamp / 1000, 'unixepoch'))
    FROM raw_data
    GROUP BY user_id
    ORDER BY user_id`
)

// InitSchema creates a new database schema with the current version
func InitSchema(db *sql.DB, log logger.Logger) error {
	errFactory := errors.New()

	log.Debug().Msg("Creating database...")

	tx, err := db.Begin()
	if err != nil {
		return errFactory.Wrap(ErrSchemaInitFailed, err)
	}

	// Track transaction state
	committed := false
	defer func() {
		if !committed {
			if err := tx.Rollback(); err != nil {
				// Only log if it's not the "already committed" error
				if !errors.Is(err, sql.ErrTxDone) {
					log.Debug().Err(err).Msg("Failed to rollback transaction")
				}
			}
		}
	}()

	// Execute schema creation
	log.Debug().Str("sql", createTablesSQL).Msg("Executing SQL statement")
	if _, err := tx.Exec(createTablesSQL); err != nil {
		return errFactory.WithData(ErrSchemaInitFailed, struct {
			Error string
			SQL   string
		}{
			Error: err.Error(),
			SQL:   createTablesSQL,
		})
	}

	log.Debug().Msg("Recording schema version...")
	// Record schema version
	if _, err := tx.Exec(`
        INSERT INTO schema_versions (version, applied_at)
        VALUES (?, datetime('now'))
    `, SchemaVersion); err != nil {
		return errFactory.WithData(ErrSchemaInitFailed, struct {
			Error string
			Phase string
		}{
			Error: err.Error(),
			Phase: "record_version",
		})
	}

	log.Debug().Msg("Committing transaction...")
	if err := tx.Commit(); err != nil {
		return errFactory.Wrap(ErrSchemaInitFailed, err)
	}
	committed = true

	log.Info().
		Int("version", SchemaVersion).
		Msg("Schema initialized successfully")

	return nil
}

// GetSchemaVersion returns the current schema version
func GetSchemaVersion(db *sql.DB) (int, error) {
	errFactory := errors.New()

	exists, err := TableExists(db, "schema_versions")
	if err != nil {
		return 0, errFactory.Wrap(ErrSchemaValidationFailed, err)
	}
	if !exists {
		return 0, nil
	}

	var version int
	err = db.QueryRow(`
        SELECT version
        FROM schema_versions
        ORDER BY version DESC
        LIMIT 1
    `).Scan(&version)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, errFactory.WithData(ErrSchemaValidationFailed, struct {
			Phase string
			Error string
		}{
			Phase: "get_version",
			Error: err.Error(),
		})
	}

	return version, nil
}

// TableExists checks if a table exists
func TableExists(db *sql.DB, tableName string) (bool, error) {
	errFactory := errors.New()
	var exists bool
	err := db.QueryRow(`
        SELECT EXISTS (
            SELECT 1 FROM sqlite_master
            WHERE type='table' AND name=?
        )
    `, tableName).Scan(&exists)
	if err != nil {
		return false, errFactory.WithData(ErrSchemaValidationFailed, struct {
			Phase string
			Table string
			Error string
		}{
			Phase: "check_table_exists",
			Table: tableName,
			Error: err.Error(),
		})
	}
	return exists, nil
}

// SQL getters for consistent schema usage
func GetCreateTablesSQL() string {
	return createTablesSQL
}

// GetUpsertSampleSQL returns the SQL to insert or replace a sample
func GetUpsertSampleSQL() string {
	return upsertSampleSQL
}
