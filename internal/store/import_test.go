package store_test

import (
	"context"
	"strings"
	"testing"

	"codeberg.org/mutker/vitalchart/internal/errors"
	"codeberg.org/mutker/vitalchart/internal/series"
	"codeberg.org/mutker/vitalchart/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const importPayload = `{
  "metric": "intraday_heart_rate",
  "data": [
    {"timestamp": "2024-03-01T00:00:00Z", "value": 60},
    {"timestamp": "2024-03-01T01:00:00Z", "value": 62, "is_imputed": true,
     "imputation_method": "pattern_based", "gap_duration_hours": 3.5},
    {"timestamp": "2024-03-01T02:00:00Z", "value": 64, "user_id": "u2"}
  ],
  "imputation_applied": true
}`

func TestFromPayload(t *testing.T) {
	p, err := series.Decode(strings.NewReader(importPayload))
	require.NoError(t, err)

	recs, err := store.FromPayload(p, "u1")
	require.NoError(t, err)
	require.Len(t, recs, 3)

	assert.Equal(t, "u1", recs[0].UserID)
	assert.Equal(t, "intraday_heart_rate", recs[0].Metric)
	assert.Nil(t, recs[0].GapDurationHours)
	require.NotNil(t, recs[1].GapDurationHours)
	assert.InDelta(t, 3.5, *recs[1].GapDurationHours, 1e-9)
	assert.Equal(t, series.MethodPattern, recs[1].Sample.Method)
	assert.Equal(t, "u2", recs[2].UserID)
}

func TestFromPayloadWithoutUser(t *testing.T) {
	p, err := series.Decode(strings.NewReader(importPayload))
	require.NoError(t, err)

	_, err = store.FromPayload(p, "")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, store.ErrInvalidRecord))
}

func TestImportInBatches(t *testing.T) {
	repo := openRepository(t)
	p, err := series.Decode(strings.NewReader(importPayload))
	require.NoError(t, err)
	recs, err := store.FromPayload(p, "u1")
	require.NoError(t, err)

	n, err := store.Import(context.Background(), repo, recs, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	samples, err := repo.Samples(context.Background(), store.Query{
		UserID:         "u1",
		Metric:         "intraday_heart_rate",
		IncludeImputed: true,
	})
	require.NoError(t, err)
	assert.Len(t, samples, 2)
}

func TestImportCanceled(t *testing.T) {
	repo := openRepository(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p, err := series.Decode(strings.NewReader(importPayload))
	require.NoError(t, err)
	recs, err := store.FromPayload(p, "u1")
	require.NoError(t, err)

	n, err := store.Import(ctx, repo, recs, 1)
	require.Error(t, err)
	assert.Equal(t, 0, n)
}
