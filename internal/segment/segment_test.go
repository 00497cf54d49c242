package segment_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/mutker/vitalchart/internal/segment"
	"codeberg.org/mutker/vitalchart/internal/series"
)

var t0 = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func sample(d time.Duration, imputed bool, m series.ImputationMethod) series.Sample {
	return series.Sample{Timestamp: t0.Add(d), Value: 1, IsImputed: imputed, Method: m}
}

var (
	normal    = segment.Style{Kind: segment.StyleNormal}
	linear    = segment.Style{Kind: segment.StyleImputed, Method: series.MethodLinear}
	pattern   = segment.Style{Kind: segment.StyleImputed, Method: series.MethodPattern}
	gapBridge = segment.Style{Kind: segment.StyleGapBridge}
)

func TestPlanDecisionTable(t *testing.T) {
	tests := []struct {
		name        string
		left, right series.Sample
		connect     bool
		style       segment.Style
		draw        bool
	}{
		{"real pair", sample(0, false, 0), sample(time.Hour, false, 0), false, normal, true},
		{"left imputed", sample(0, true, series.MethodPattern), sample(time.Hour, false, 0), false, pattern, true},
		{"right imputed", sample(0, false, 0), sample(time.Hour, true, series.MethodLinear), false, linear, true},
		{"both imputed uses left", sample(0, true, series.MethodLinear), sample(time.Hour, true, series.MethodPattern), false, linear, true},
		{"gap hidden", sample(0, false, 0), sample(2*time.Hour, false, 0), false, gapBridge, false},
		{"gap bridged", sample(0, false, 0), sample(2*time.Hour, false, 0), true, gapBridge, true},
		{"gap beats imputation", sample(0, true, series.MethodLinear), sample(5*time.Hour, false, 0), true, gapBridge, true},
		{"threshold is not a gap", sample(0, false, 0), sample(90*time.Minute, false, 0), false, normal, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs := segment.Plan([]series.Sample{tt.left, tt.right}, tt.connect)
			require.Len(t, segs, 1)
			assert.Equal(t, 0, segs[0].From)
			assert.Equal(t, 1, segs[0].To)
			assert.Equal(t, tt.style, segs[0].Style)
			assert.Equal(t, tt.draw, segs[0].Draw)
		})
	}
}

func TestPlanShortInputs(t *testing.T) {
	assert.Empty(t, segment.Plan(nil, false))
	assert.Empty(t, segment.Plan([]series.Sample{sample(0, false, 0)}, true))
}

func TestRuns(t *testing.T) {
	samples := []series.Sample{
		sample(0, false, 0),
		sample(10*time.Minute, false, 0),
		sample(20*time.Minute, false, 0),
		sample(30*time.Minute, true, series.MethodLinear),
		sample(40*time.Minute, false, 0),
		sample(50*time.Minute, false, 0),
		sample(5*time.Hour, false, 0),
		sample(10*time.Hour, false, 0),
	}
	segs := segment.Plan(samples, true)
	runs := segment.Runs(segs)

	require.Len(t, runs, 5)
	assert.Equal(t, segment.Run{Style: normal, Indices: []int{0, 1, 2}}, runs[0])
	assert.Equal(t, segment.Run{Style: linear, Indices: []int{2, 3, 4}}, runs[1])
	assert.Equal(t, segment.Run{Style: normal, Indices: []int{4, 5}}, runs[2])
	// Consecutive gap bridges stay separate strokes.
	assert.Equal(t, segment.Run{Style: gapBridge, Indices: []int{5, 6}}, runs[3])
	assert.Equal(t, segment.Run{Style: gapBridge, Indices: []int{6, 7}}, runs[4])
}

func TestRunsSkipUndrawn(t *testing.T) {
	samples := []series.Sample{
		sample(0, false, 0),
		sample(10*time.Minute, false, 0),
		sample(5*time.Hour, false, 0),
		sample(10*time.Hour, false, 0),
		sample(10*time.Hour+10*time.Minute, false, 0),
	}
	segs := segment.Plan(samples, false)

	runs := segment.Runs(segs)
	require.Len(t, runs, 2)
	assert.Equal(t, []int{0, 1}, runs[0].Indices)
	assert.Equal(t, []int{3, 4}, runs[1].Indices)

	// The sample between the two gaps touches no drawn segment.
	assert.Equal(t, []int{2}, segment.Isolated(len(samples), segs))
}

func TestStyleString(t *testing.T) {
	assert.Equal(t, "normal", normal.String())
	assert.Equal(t, "imputed/pattern", pattern.String())
	assert.Equal(t, "gap_bridge", gapBridge.String())
}
