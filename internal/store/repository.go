package store

import (
	"context"
	"database/sql"
	"math"
	"os"
	"path/filepath"
	"time"

	"codeberg.org/mutker/vitalchart/internal/errors"
	"codeberg.org/mutker/vitalchart/internal/logger"
	"codeberg.org/mutker/vitalchart/internal/series"
	_ "github.com/mattn/go-sqlite3"
)

type repository struct {
	db     *sql.DB
	logger logger.Logger
	cfg    Config
}

func NewRepository(cfg Config, log logger.Logger) (Repository, error) {
	errFactory := errors.New()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Ensure the directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), defaultDirPerm); err != nil {
		return nil, errFactory.WithData(ErrStorageInit, struct {
			Phase string
			Path  string
			Error string
		}{
			Phase: "create_directory",
			Path:  cfg.DBPath,
			Error: err.Error(),
		})
	}

	dsn := cfg.DBPath + "?_journal=WAL&_auto_vacuum=2&_busy_timeout=5000"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errFactory.WithData(ErrStorageInit, struct {
			Phase string
			Error string
		}{
			Phase: "open_database",
			Error: err.Error(),
		})
	}

	// Validate if schema is current, with backup if needed
	if err := ValidateAndUpdateSchema(db, cfg.backupDir(), log); err != nil {
		db.Close()
		return nil, errFactory.WithData(ErrStorageInit, struct {
			Phase string
			Error string
		}{
			Phase: "schema_version",
			Error: err.Error(),
		})
	}

	log.Info().
		Str("path", cfg.DBPath).
		Int("schema_version", SchemaVersion).
		Msg("Sample repository initialized")

	return &repository{
		db:     db,
		logger: log,
		cfg:    cfg,
	}, nil
}

// Store upserts records in a single transaction. A record that already
// exists for the same timestamp, user and metric is replaced.
func (r *repository) Store(ctx context.Context, records []Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	errFactory := errors.New()

	for i, rec := range records {
		if rec.UserID == "" || rec.Metric == "" || rec.Sample.Timestamp.IsZero() {
			return 0, errFactory.WithData(ErrInvalidRecord, struct {
				Index  int
				UserID string
				Metric string
			}{
				Index:  i,
				UserID: rec.UserID,
				Metric: rec.Metric,
			})
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errFactory.Wrap(ErrTransactionFailed, err)
	}

	committed := false
	defer func() {
		if !committed {
			if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
				r.logger.Debug().Err(err).Msg("Failed to roll back transaction")
			}
		}
	}()

	stmt, err := tx.PrepareContext(ctx, GetUpsertSampleSQL())
	if err != nil {
		r.logger.Error().Err(err).Msg("Failed to prepare statement")
		return 0, errFactory.Wrap(ErrTransactionFailed, err)
	}
	defer stmt.Close()

	for _, rec := range records {
		var method any
		if rec.Sample.IsImputed {
			method = rec.Sample.Method.String()
		}
		var gapHours any
		if rec.GapDurationHours != nil {
			gapHours = *rec.GapDurationHours
		}

		if _, err := stmt.ExecContext(ctx,
			rec.Sample.Timestamp.UnixMilli(),
			rec.UserID,
			rec.Metric,
			rec.Sample.Value,
			boolToInt(rec.Sample.IsImputed),
			method,
			gapHours,
		); err != nil {
			r.logger.Error().Err(err).Msg("Failed to execute upsert")
			return 0, errFactory.Wrap(ErrTransactionFailed, err)
		}
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error().Err(err).Msg("Failed to commit transaction")
		return 0, errFactory.Wrap(ErrTransactionFailed, err)
	}
	committed = true

	r.logger.Debug().Int("records", len(records)).Msg("Stored samples")

	return len(records), nil
}

// Samples returns the matching samples in timestamp order.
func (r *repository) Samples(ctx context.Context, q Query) ([]series.Sample, error) {
	errFactory := errors.New()

	if q.UserID == "" || q.Metric == "" {
		return nil, errFactory.WithMessage(ErrInvalidQuery, "user and metric are required")
	}
	if q.Limit < 0 || q.Offset < 0 {
		return nil, errFactory.WithMessage(ErrInvalidQuery, "limit and offset must not be negative")
	}
	if !q.Start.IsZero() && !q.End.IsZero() && q.End.Before(q.Start) {
		return nil, errFactory.WithMessage(ErrInvalidQuery, "end is before start")
	}

	start, end := int64(math.MinInt64), int64(math.MaxInt64)
	if !q.Start.IsZero() {
		start = q.Start.UnixMilli()
	}
	if !q.End.IsZero() {
		end = q.End.UnixMilli()
	}
	limit := q.Limit
	if limit == 0 {
		limit = DefaultPageSize
	}

	rows, err := r.db.QueryContext(ctx, selectSamplesSQL,
		q.UserID, q.Metric, start, end, boolToInt(q.IncludeImputed), limit, q.Offset)
	if err != nil {
		return nil, errFactory.Wrap(ErrStorageAccess, err)
	}
	defer rows.Close()

	samples := make([]series.Sample, 0)
	for rows.Next() {
		var (
			ts      int64
			value   float64
			imputed int
			method  string
		)
		if err := rows.Scan(&ts, &value, &imputed, &method); err != nil {
			return nil, errFactory.Wrap(ErrStorageAccess, err)
		}
		samples = append(samples, series.Sample{
			Timestamp: time.UnixMilli(ts).UTC(),
			Value:     value,
			IsImputed: imputed == 1,
			Method:    series.ParseMethod(method, imputed == 1),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, errFactory.Wrap(ErrStorageAccess, err)
	}

	r.logger.Debug().
		Str("user_id", q.UserID).
		Str("metric", q.Metric).
		Int("rows", len(samples)).
		Msg("Loaded samples")

	return samples, nil
}

func (r *repository) Metrics(ctx context.Context) ([]string, error) {
	errFactory := errors.New()

	rows, err := r.db.QueryContext(ctx, selectMetricsSQL)
	if err != nil {
		return nil, errFactory.Wrap(ErrStorageAccess, err)
	}
	defer rows.Close()

	metrics := make([]string, 0)
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, errFactory.Wrap(ErrStorageAccess, err)
		}
		metrics = append(metrics, m)
	}
	if err := rows.Err(); err != nil {
		return nil, errFactory.Wrap(ErrStorageAccess, err)
	}
	return metrics, nil
}

func (r *repository) Users(ctx context.Context) ([]UserSummary, error) {
	errFactory := errors.New()

	rows, err := r.db.QueryContext(ctx, selectUsersSQL)
	if err != nil {
		return nil, errFactory.Wrap(ErrStorageAccess, err)
	}
	defer rows.Close()

	users := make([]UserSummary, 0)
	for rows.Next() {
		var (
			u           UserSummary
			first, last int64
		)
		if err := rows.Scan(&u.UserID, &u.TotalRecords, &first, &last, &u.MetricsCount, &u.DaysWithData); err != nil {
			return nil, errFactory.Wrap(ErrStorageAccess, err)
		}
		u.FirstRecord = time.UnixMilli(first).UTC()
		u.LastRecord = time.UnixMilli(last).UTC()
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, errFactory.Wrap(ErrStorageAccess, err)
	}
	return users, nil
}

func (r *repository) Close() error {
	// Checkpoint WAL and cleanup on close
	if _, err := r.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return errors.New().WithData(ErrStorageClose, struct {
			Phase string
			Error string
		}{
			Phase: "checkpoint_wal",
			Error: err.Error(),
		})
	}

	if err := r.db.Close(); err != nil {
		return errors.New().WithData(ErrStorageClose, struct {
			Phase string
			Error string
		}{
			Phase: "close_database",
			Error: err.Error(),
		})
	}

	r.logger.Info().Msg("Sample repository closed")

	return nil
}
