package render_test

import (
	"time"

	"codeberg.org/mutker/vitalchart/internal/gaps"
)

func gapOf(hours float64) gaps.Gap {
	d := time.Duration(hours * float64(time.Hour))
	return gaps.Gap{Start: t0, End: t0.Add(d), DurationHours: hours}
}
