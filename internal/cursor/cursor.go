// Package cursor answers "what is the value under the pointer" for a
// sorted sample sequence.
package cursor

import (
	"time"

	"codeberg.org/mutker/vitalchart/internal/scale"
	"codeberg.org/mutker/vitalchart/internal/series"
)

// Reading is the value reported at a cursor position.
type Reading struct {
	Value     float64   `json:"value" yaml:"value"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	// IsImputed is only true when the reading is a stored imputed sample.
	// Interpolated readings are synthetic and always report false.
	IsImputed bool `json:"is_imputed" yaml:"is_imputed"`
	// Interpolated is set when Value lies between two stored samples.
	Interpolated bool `json:"interpolated" yaml:"interpolated"`
}

// ValueAt returns the reading at target. ok is false only when samples is
// empty.
//
// The first consecutive pair bracketing target is interpolated linearly;
// an exact timestamp hit returns the stored sample. Outside the sampled
// range the nearest sample is returned as is.
func ValueAt(samples []series.Sample, target time.Time) (Reading, bool) {
	if len(samples) == 0 {
		return Reading{}, false
	}

	for i := 0; i < len(samples)-1; i++ {
		left, right := samples[i], samples[i+1]
		if target.Before(left.Timestamp) || target.After(right.Timestamp) {
			continue
		}
		switch {
		case target.Equal(left.Timestamp):
			return stored(left), true
		case target.Equal(right.Timestamp):
			return stored(right), true
		}
		span := right.Timestamp.Sub(left.Timestamp)
		ratio := float64(target.Sub(left.Timestamp)) / float64(span)
		return Reading{
			Value:        left.Value + (right.Value-left.Value)*ratio,
			Timestamp:    target,
			Interpolated: true,
		}, true
	}

	return stored(nearest(samples, target)), true
}

// ValueAtX converts a pixel column through the inverse time mapping of sc
// and returns the reading there.
func ValueAtX(samples []series.Sample, sc scale.Scales, x float64) (Reading, bool) {
	return ValueAt(samples, sc.XToTime(x))
}

func stored(s series.Sample) Reading {
	return Reading{Value: s.Value, Timestamp: s.Timestamp, IsImputed: s.IsImputed}
}

// nearest returns the sample closest to target, the earliest one on ties.
func nearest(samples []series.Sample, target time.Time) series.Sample {
	best := samples[0]
	bestD := absDuration(target.Sub(best.Timestamp))
	for _, s := range samples[1:] {
		if d := absDuration(target.Sub(s.Timestamp)); d < bestD {
			best, bestD = s, d
		}
	}
	return best
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
