package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"codeberg.org/mutker/vitalchart/internal/errors"
	"codeberg.org/mutker/vitalchart/internal/logger"
)

// schemaState is what ValidateAndUpdateSchema finds in an opened database.
type schemaState int

const (
	schemaMissing schemaState = iota
	schemaCurrent
	schemaStale
)

func inspectSchema(db *sql.DB) (schemaState, int, error) {
	version, err := GetSchemaVersion(db)
	switch {
	case err != nil:
		return schemaMissing, 0, err
	case version == 0:
		return schemaMissing, 0, nil
	case version == SchemaVersion:
		return schemaCurrent, version, nil
	default:
		return schemaStale, version, nil
	}
}

// ValidateAndUpdateSchema brings db to SchemaVersion. An empty database gets
// a fresh schema. A database at any other version is copied into backupDir
// and rebuilt; its samples are not carried over and stay in the backup.
func ValidateAndUpdateSchema(db *sql.DB, backupDir string, log logger.Logger) error {
	errFactory := errors.New()

	state, version, err := inspectSchema(db)
	if err != nil {
		return errFactory.Wrap(ErrSchemaValidationFailed, err)
	}

	switch state {
	case schemaCurrent:
		log.Debug().Int("version", version).Msg("Schema version is current")
		return nil
	case schemaStale:
		path, err := backupDatabase(db, backupDir, version, log)
		if err != nil {
			return errFactory.Wrap(ErrSchemaMigrationFailed, err)
		}
		log.Warn().
			Int("from_version", version).
			Int("to_version", SchemaVersion).
			Int("discarded_samples", countSamples(db)).
			Str("backup", path).
			Msg("Rebuilding sample schema")
	}

	if err := dropTables(db); err != nil {
		return err
	}
	return InitSchema(db, log)
}

// BackupName returns the file name a database at version gets when it is
// backed up at t.
func BackupName(version int, t time.Time) string {
	return fmt.Sprintf("samples_v%d_%s.db", version, t.UTC().Format("20060102T150405Z"))
}

func backupDatabase(db *sql.DB, backupDir string, version int, log logger.Logger) (string, error) {
	errFactory := errors.New()

	if err := os.MkdirAll(backupDir, defaultDirPerm); err != nil {
		return "", errFactory.WithData(ErrSchemaMigrationFailed, struct {
			Phase string
			Path  string
			Error string
		}{
			Phase: "create_backup_dir",
			Path:  backupDir,
			Error: err.Error(),
		})
	}

	path := filepath.Join(backupDir, BackupName(version, time.Now()))
	if _, err := os.Stat(path); err == nil {
		return "", errFactory.WithData(ErrSchemaMigrationFailed, struct {
			Phase string
			Path  string
		}{
			Phase: "backup_exists",
			Path:  path,
		})
	}

	// VACUUM INTO takes a literal, not a bound parameter, and must run
	// outside a transaction.
	quoted := "'" + strings.ReplaceAll(path, "'", "''") + "'"
	if _, err := db.Exec("VACUUM INTO " + quoted); err != nil {
		return "", errFactory.WithData(ErrSchemaMigrationFailed, struct {
			Phase string
			Path  string
			Error string
		}{
			Phase: "vacuum_into",
			Path:  path,
			Error: err.Error(),
		})
	}

	log.Info().Str("path", path).Int("version", version).Msg("Database backup created")
	return path, nil
}

// countSamples is only used for logging; a missing table counts as zero.
func countSamples(db *sql.DB) int {
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM raw_data").Scan(&n); err != nil {
		return 0
	}
	return n
}

func dropTables(db *sql.DB) error {
	const dropSQL = `
    DROP INDEX IF EXISTS raw_data_user_metric;
    DROP TABLE IF EXISTS raw_data;
    DROP TABLE IF EXISTS schema_versions;`

	if _, err := db.Exec(dropSQL); err != nil {
		return errors.New().WithData(ErrSchemaMigrationFailed, struct {
			Phase string
			Error string
		}{
			Phase: "drop_tables",
			Error: err.Error(),
		})
	}
	return nil
}
