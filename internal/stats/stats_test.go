package stats_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/mutker/vitalchart/internal/series"
	"codeberg.org/mutker/vitalchart/internal/stats"
)

func values(imputed []bool, vs ...float64) []series.Sample {
	t0 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	out := make([]series.Sample, len(vs))
	for i, v := range vs {
		out[i] = series.Sample{Timestamp: t0.Add(time.Duration(i) * time.Minute), Value: v}
		if i < len(imputed) {
			out[i].IsImputed = imputed[i]
		}
	}
	return out
}

func TestSummarizeOdd(t *testing.T) {
	s := values(nil, 30, 10, 20)

	sum, ok := stats.Summarize(s)
	require.True(t, ok)
	assert.Equal(t, stats.Summary{Count: 3, Min: 10, Max: 30, Average: 20, Median: 20}, sum)

	// Input order is preserved.
	assert.Equal(t, []float64{30, 10, 20}, series.Values(s))
}

func TestSummarizeEven(t *testing.T) {
	sum, ok := stats.Summarize(values(nil, 10, 20, 30, 40))
	require.True(t, ok)
	assert.Equal(t, 25.0, sum.Median)
	assert.Equal(t, 25.0, sum.Average)
	assert.Equal(t, 4, sum.Count)
}

func TestSummarizeEmpty(t *testing.T) {
	_, ok := stats.Summarize(nil)
	assert.False(t, ok)
}

func TestSplit(t *testing.T) {
	b := stats.Split(values([]bool{false, true, false}, 1, 2, 3))
	assert.Equal(t, stats.Breakdown{Total: 3, Real: 2, Imputed: 1, ImputationPercentage: 33.3}, b)

	assert.Equal(t, stats.Breakdown{}, stats.Split(nil))
}
