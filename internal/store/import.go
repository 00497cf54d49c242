package store

import (
	"context"

	"codeberg.org/mutker/vitalchart/internal/errors"
	"codeberg.org/mutker/vitalchart/internal/series"
)

// DefaultBatchSize is the number of records Import writes per transaction.
const DefaultBatchSize = 500

// FromPayload converts a decoded payload into records. A point without a
// user_id belongs to userID; a point without a metric_type belongs to the
// payload metric.
func FromPayload(p *series.Payload, userID string) ([]Record, error) {
	errFactory := errors.New()

	samples, err := p.Samples()
	if err != nil {
		return nil, err
	}

	metric := p.MetricKey()
	records := make([]Record, 0, len(samples))
	for i, s := range samples {
		pt := p.Data[i]
		rec := Record{
			UserID:           pt.UserID,
			Metric:           pt.MetricType,
			Sample:           s,
			GapDurationHours: pt.GapDurationHours,
		}
		if rec.UserID == "" {
			rec.UserID = userID
		}
		if rec.Metric == "" {
			rec.Metric = metric
		}
		if rec.UserID == "" || rec.Metric == "" {
			return nil, errFactory.WithData(ErrInvalidRecord, struct {
				Index     int
				Timestamp string
			}{
				Index:     i,
				Timestamp: pt.Timestamp,
			})
		}
		records = append(records, rec)
	}
	return records, nil
}

// Import stores records in batches of batchSize, one transaction per batch.
// It returns the number of records written before any failure.
func Import(ctx context.Context, repo Repository, records []Record, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	total := 0
	for start := 0; start < len(records); start += batchSize {
		if err := ctx.Err(); err != nil {
			return total, errors.New().Wrap(ErrOperationTimeout, err)
		}
		end := min(start+batchSize, len(records))
		n, err := repo.Store(ctx, records[start:end])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
