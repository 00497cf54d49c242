package cursor_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/mutker/vitalchart/internal/cursor"
	"codeberg.org/mutker/vitalchart/internal/profile"
	"codeberg.org/mutker/vitalchart/internal/scale"
	"codeberg.org/mutker/vitalchart/internal/series"
)

var t0 = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

func samples() []series.Sample {
	return []series.Sample{
		{Timestamp: t0, Value: 10},
		{Timestamp: t0.Add(time.Hour), Value: 20, IsImputed: true, Method: series.MethodPattern},
		{Timestamp: t0.Add(2 * time.Hour), Value: 40},
	}
}

func TestValueAt(t *testing.T) {
	tests := []struct {
		name         string
		at           time.Time
		value        float64
		imputed      bool
		interpolated bool
	}{
		{"exact first", t0, 10, false, false},
		{"exact imputed", t0.Add(time.Hour), 20, true, false},
		{"exact last", t0.Add(2 * time.Hour), 40, false, false},
		{"between real and imputed", t0.Add(30 * time.Minute), 15, false, true},
		{"between imputed and real", t0.Add(90 * time.Minute), 30, false, true},
		{"before range", t0.Add(-time.Hour), 10, false, false},
		{"after range", t0.Add(5 * time.Hour), 40, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := cursor.ValueAt(samples(), tt.at)
			require.True(t, ok)
			assert.InDelta(t, tt.value, r.Value, 1e-9)
			assert.Equal(t, tt.imputed, r.IsImputed)
			assert.Equal(t, tt.interpolated, r.Interpolated)
		})
	}
}

func TestValueAtReportsTarget(t *testing.T) {
	at := t0.Add(30 * time.Minute)
	r, ok := cursor.ValueAt(samples(), at)
	require.True(t, ok)
	assert.True(t, r.Timestamp.Equal(at))

	r, ok = cursor.ValueAt(samples(), t0.Add(-time.Hour))
	require.True(t, ok)
	assert.True(t, r.Timestamp.Equal(t0))
}

func TestValueAtEmpty(t *testing.T) {
	_, ok := cursor.ValueAt(nil, t0)
	assert.False(t, ok)
}

func TestValueAtAcrossGap(t *testing.T) {
	s := []series.Sample{
		{Timestamp: t0, Value: 10},
		{Timestamp: t0.Add(5 * time.Hour), Value: 60},
	}
	r, ok := cursor.ValueAt(s, t0.Add(time.Hour))
	require.True(t, ok)
	assert.InDelta(t, 20, r.Value, 1e-9)
	assert.True(t, r.Interpolated)
}

func TestNearestTiePrefersEarliest(t *testing.T) {
	s := []series.Sample{
		{Timestamp: t0, Value: 1},
		{Timestamp: t0, Value: 2},
	}
	r, ok := cursor.ValueAt(s, t0.Add(-time.Minute))
	require.True(t, ok)
	assert.Equal(t, 1.0, r.Value)
}

func TestValueAtX(t *testing.T) {
	s := samples()
	sc := scale.Build(s, profile.Resolve(profile.HeartRate), 400, 300, scale.DefaultMargins)

	// 75px into a 300px plot covering two hours is 30 minutes.
	r, ok := cursor.ValueAtX(s, sc, 145)
	require.True(t, ok)
	assert.InDelta(t, 15, r.Value, 1e-9)
	assert.True(t, r.Interpolated)

	r, ok = cursor.ValueAtX(s, sc, 0)
	require.True(t, ok)
	assert.Equal(t, 10.0, r.Value)
}
