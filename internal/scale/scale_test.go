package scale_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/mutker/vitalchart/internal/canvas"
	"codeberg.org/mutker/vitalchart/internal/profile"
	"codeberg.org/mutker/vitalchart/internal/scale"
	"codeberg.org/mutker/vitalchart/internal/series"
)

var t0 = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

func fourHours() []series.Sample {
	return []series.Sample{
		{Timestamp: t0, Value: 60},
		{Timestamp: t0.Add(2 * time.Hour), Value: 80},
		{Timestamp: t0.Add(4 * time.Hour), Value: 70},
	}
}

func TestBuildMapping(t *testing.T) {
	sc := scale.Build(fourHours(), profile.Resolve(profile.HeartRate), 400, 300, scale.DefaultMargins)

	assert.Equal(t, canvas.Rect{X: 70, Y: 40, W: 300, H: 200}, sc.Plot())

	start, end := sc.Domain()
	assert.True(t, start.Equal(t0))
	assert.True(t, end.Equal(t0.Add(4*time.Hour)))

	assert.InDelta(t, 70, sc.TimeToX(t0), 1e-9)
	assert.InDelta(t, 220, sc.TimeToX(t0.Add(2*time.Hour)), 1e-9)
	assert.InDelta(t, 370, sc.TimeToX(t0.Add(4*time.Hour)), 1e-9)

	assert.InDelta(t, 240, sc.ValueToY(40), 1e-9)
	assert.InDelta(t, 140, sc.ValueToY(120), 1e-9)
	assert.InDelta(t, 40, sc.ValueToY(200), 1e-9)
	// Out-of-range values follow the same mapping.
	assert.InDelta(t, 265, sc.ValueToY(20), 1e-9)

	assert.True(t, sc.XToTime(220).Equal(t0.Add(2*time.Hour)))
}

func TestBuildTicks(t *testing.T) {
	sc := scale.Build(fourHours(), profile.Resolve(profile.HeartRate), 400, 300, scale.DefaultMargins)

	require.Len(t, sc.XTicks, scale.DefaultXTickCount)
	assert.True(t, sc.XTicks[0].Equal(t0))
	assert.True(t, sc.XTicks[1].Equal(t0.Add(48*time.Minute)))
	assert.True(t, sc.XTicks[5].Equal(t0.Add(4*time.Hour)))

	assert.Equal(t, []float64{40, 60, 80, 100, 120, 140, 160, 180, 200}, sc.YTicks)
}

func TestTicksOverLongSpan(t *testing.T) {
	start := time.Date(1920, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(100, 0, 0)
	samples := []series.Sample{{Timestamp: start, Value: 60}, {Timestamp: end, Value: 70}}

	sc := scale.Build(samples, profile.Resolve(profile.HeartRate), 400, 300, scale.DefaultMargins)

	require.Len(t, sc.XTicks, scale.DefaultXTickCount)
	assert.True(t, sc.XTicks[0].Equal(start))
	assert.True(t, sc.XTicks[len(sc.XTicks)-1].Equal(end))
	for i := 1; i < len(sc.XTicks); i++ {
		assert.True(t, sc.XTicks[i].After(sc.XTicks[i-1]), "tick %d", i)
	}
}

func TestWithXTickCount(t *testing.T) {
	p := profile.Resolve(profile.HeartRate)

	sc := scale.Build(fourHours(), p, 400, 300, scale.DefaultMargins, scale.WithXTickCount(3))
	require.Len(t, sc.XTicks, 3)
	assert.True(t, sc.XTicks[1].Equal(t0.Add(2*time.Hour)))

	sc = scale.Build(fourHours(), p, 400, 300, scale.DefaultMargins, scale.WithXTickCount(1))
	assert.Len(t, sc.XTicks, 2)

	sc = scale.Build(fourHours(), p, 400, 300, scale.DefaultMargins, scale.WithXTickCount(200000))
	assert.Len(t, sc.XTicks, scale.MaxXTickCount)
}

func TestZeroTimeSpan(t *testing.T) {
	samples := []series.Sample{{Timestamp: t0, Value: 70}}
	sc := scale.Build(samples, profile.Resolve(profile.HeartRate), 400, 300, scale.DefaultMargins)

	require.Len(t, sc.XTicks, 1)
	assert.True(t, sc.XTicks[0].Equal(t0))
	assert.InDelta(t, 220, sc.TimeToX(t0), 1e-9)
	assert.InDelta(t, 220, sc.TimeToX(t0.Add(time.Hour)), 1e-9)
	assert.True(t, sc.XToTime(300).Equal(t0))
}

func TestNoSamples(t *testing.T) {
	sc := scale.Build(nil, profile.Resolve(profile.SpO2), 400, 300, scale.DefaultMargins)
	assert.Empty(t, sc.XTicks)
	assert.Equal(t, []float64{80, 85, 90, 95, 100}, sc.YTicks)
}

func TestDegenerateProfile(t *testing.T) {
	p := profile.Profile{AxisMin: 50, AxisMax: 50, AxisTicks: []float64{0, 50, 100}}
	sc := scale.Build(fourHours(), p, 400, 300, scale.DefaultMargins)

	assert.InDelta(t, 140, sc.ValueToY(50), 1e-9)
	assert.InDelta(t, 140, sc.ValueToY(90), 1e-9)
	assert.Equal(t, []float64{50}, sc.YTicks)
}

func TestTinySurface(t *testing.T) {
	sc := scale.Build(fourHours(), profile.Resolve(profile.HeartRate), 50, 50, scale.DefaultMargins)
	assert.Zero(t, sc.Plot().W)
	assert.Zero(t, sc.Plot().H)
	assert.True(t, sc.XToTime(10).Equal(t0))
}
