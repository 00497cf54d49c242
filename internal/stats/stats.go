// Package stats computes aggregate figures over a sample sequence.
package stats

import (
	"math"
	"sort"

	"codeberg.org/mutker/vitalchart/internal/series"
)

// Summary holds the aggregate figures of a sample sequence.
type Summary struct {
	Count   int     `json:"count" yaml:"count"`
	Min     float64 `json:"min" yaml:"min"`
	Max     float64 `json:"max" yaml:"max"`
	Average float64 `json:"average" yaml:"average"`
	Median  float64 `json:"median" yaml:"median"`
}

// Summarize returns the aggregates of samples; ok is false when samples is
// empty. The input is not modified.
func Summarize(samples []series.Sample) (Summary, bool) {
	if len(samples) == 0 {
		return Summary{}, false
	}

	values := series.Values(samples)
	sort.Float64s(values)

	sum := 0.0
	for _, v := range values {
		sum += v
	}

	n := len(values)
	median := values[n/2]
	if n%2 == 0 {
		median = (values[n/2-1] + values[n/2]) / 2
	}

	return Summary{
		Count:   n,
		Min:     values[0],
		Max:     values[n-1],
		Average: sum / float64(n),
		Median:  median,
	}, true
}

// Breakdown counts real and imputed samples.
type Breakdown struct {
	Total                int     `json:"total_points" yaml:"total_points"`
	Real                 int     `json:"real_points" yaml:"real_points"`
	Imputed              int     `json:"imputed_points" yaml:"imputed_points"`
	ImputationPercentage float64 `json:"imputation_percentage" yaml:"imputation_percentage"`
}

// Split counts real and imputed samples. The percentage is rounded to one
// decimal place.
func Split(samples []series.Sample) Breakdown {
	b := Breakdown{Total: len(samples)}
	for _, s := range samples {
		if s.IsImputed {
			b.Imputed++
		}
	}
	b.Real = b.Total - b.Imputed
	if b.Total > 0 {
		b.ImputationPercentage = math.Round(float64(b.Imputed)/float64(b.Total)*1000) / 10
	}
	return b
}
