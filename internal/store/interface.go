package store

import (
	"context"
	"time"

	"codeberg.org/mutker/vitalchart/internal/series"
)

// Repository stores samples per user and metric and reads them back in
// chart order.
type Repository interface {
	Store(ctx context.Context, records []Record) (int, error)
	Samples(ctx context.Context, q Query) ([]series.Sample, error)
	Metrics(ctx context.Context) ([]string, error)
	Users(ctx context.Context) ([]UserSummary, error)
	Close() error
}

// Record is one stored sample.
type Record struct {
	UserID string
	Metric string
	Sample series.Sample
	// GapDurationHours is set on imputed points to the length of the gap
	// they fill.
	GapDurationHours *float64
}

// Query selects samples for one user and metric in [Start, End].
type Query struct {
	UserID         string
	Metric         string
	Start          time.Time
	End            time.Time
	IncludeImputed bool
	// Limit caps the number of rows, 0 means DefaultPageSize. Use ReadAll
	// to load a whole range.
	Limit  int
	Offset int
}

// DefaultPageSize is the row cap of a Query without Limit and the page
// size of ReadAll.
const DefaultPageSize = 1000

// UserSummary describes the data held for one user.
type UserSummary struct {
	UserID       string    `json:"user_id" yaml:"user_id"`
	TotalRecords int       `json:"total_records" yaml:"total_records"`
	FirstRecord  time.Time `json:"first_record" yaml:"first_record"`
	LastRecord   time.Time `json:"last_record" yaml:"last_record"`
	MetricsCount int       `json:"metrics_count" yaml:"metrics_count"`
	DaysWithData int       `json:"days_with_data" yaml:"days_with_data"`
}
