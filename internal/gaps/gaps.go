// Package gaps finds and classifies the intervals between consecutive
// samples that exceed series.GapThreshold.
package gaps

import (
	"time"

	"codeberg.org/mutker/vitalchart/internal/series"
)

// Gap describes one interval without data between two consecutive samples.
type Gap struct {
	Start         time.Time       `json:"start" yaml:"start"`
	End           time.Time       `json:"end" yaml:"end"`
	DurationHours float64         `json:"duration_hours" yaml:"duration_hours"`
	Class         series.GapClass `json:"class" yaml:"class"`
}

// Detect returns the gaps of a sorted sample sequence in chronological
// order, one per adjacent pair whose delta exceeds the gap threshold.
func Detect(samples []series.Sample) []Gap {
	if len(samples) < 2 {
		return []Gap{}
	}

	out := make([]Gap, 0)
	for i := 0; i < len(samples)-1; i++ {
		cur, next := samples[i].Timestamp, samples[i+1].Timestamp
		delta := next.Sub(cur)

		class, ok := series.ClassifyGap(delta)
		if !ok {
			continue
		}
		out = append(out, Gap{
			Start:         cur,
			End:           next,
			DurationHours: delta.Hours(),
			Class:         class,
		})
	}
	return out
}

// Counts is a per-class tally of gaps.
type Counts struct {
	Short  int `json:"short" yaml:"short"`
	Medium int `json:"medium" yaml:"medium"`
	Long   int `json:"long" yaml:"long"`
}

// Total returns the number of gaps across all classes.
func (c Counts) Total() int {
	return c.Short + c.Medium + c.Long
}

func (c *Counts) add(class series.GapClass) {
	switch class {
	case series.GapShort:
		c.Short++
	case series.GapMedium:
		c.Medium++
	case series.GapLong:
		c.Long++
	}
}

// Count tallies detected gaps by class.
func Count(gaps []Gap) Counts {
	var c Counts
	for _, g := range gaps {
		c.add(g.Class)
	}
	return c
}

// CountReported tallies an upstream gap summary by class.
func CountReported(classes []series.GapClass) Counts {
	var c Counts
	for _, class := range classes {
		c.add(class)
	}
	return c
}

// Reconcile compares the locally detected tally with the upstream one.
// They can only disagree when the upstream detector uses other thresholds
// or ran over a different sample set (for example real points only).
func Reconcile(detected, reported Counts) bool {
	return detected == reported
}
