package store

import (
	"context"

	"codeberg.org/mutker/vitalchart/internal/series"
)

// ReadAll pages through repo until the range in q is exhausted, starting at
// q.Offset. q.Limit is the page size; 0 means DefaultPageSize.
func ReadAll(ctx context.Context, repo Repository, q Query) ([]series.Sample, error) {
	if q.Limit <= 0 {
		q.Limit = DefaultPageSize
	}

	out := make([]series.Sample, 0)
	for {
		page, err := repo.Samples(ctx, q)
		if err != nil {
			return nil, err
		}
		out = append(out, page...)
		if len(page) < q.Limit {
			return out, nil
		}
		q.Offset += len(page)
	}
}
