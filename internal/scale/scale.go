// Package scale derives the affine time->x and value->y mappings of a chart
// and its tick sets.
package scale

import (
	"time"

	"codeberg.org/mutker/vitalchart/internal/canvas"
	"codeberg.org/mutker/vitalchart/internal/profile"
	"codeberg.org/mutker/vitalchart/internal/series"
)

const (
	// DefaultXTickCount is the number of time ticks, both extents included.
	DefaultXTickCount = 6
	// MaxXTickCount is the largest tick count WithXTickCount accepts.
	MaxXTickCount = 50
)

// Margins are the pixel gutters around the plot area.
type Margins struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// DefaultMargins leave room for tick labels and axis titles.
var DefaultMargins = Margins{Top: 40, Right: 30, Bottom: 60, Left: 70}

type options struct {
	xTicks int
}

// Option adjusts Build.
type Option func(*options)

// WithXTickCount overrides DefaultXTickCount. The count is clamped to
// [2, MaxXTickCount].
func WithXTickCount(n int) Option {
	return func(o *options) {
		o.xTicks = min(max(n, 2), MaxXTickCount)
	}
}

// Scales maps data coordinates onto the plot rectangle.
type Scales struct {
	plot   canvas.Rect
	tMin   time.Time
	span   time.Duration
	vMin   float64
	vMax   float64
	XTicks []time.Time
	YTicks []float64
}

// Build computes the scales for a sorted sample sequence drawn with p on a
// width x height surface.
func Build(samples []series.Sample, p profile.Profile, width, height int, m Margins, opts ...Option) Scales {
	o := options{xTicks: DefaultXTickCount}
	for _, opt := range opts {
		opt(&o)
	}

	s := Scales{
		plot: canvas.Rect{
			X: m.Left,
			Y: m.Top,
			W: max(float64(width)-m.Left-m.Right, 0),
			H: max(float64(height)-m.Top-m.Bottom, 0),
		},
		vMin: p.AxisMin,
		vMax: p.AxisMax,
	}

	if first, last, ok := series.Extent(samples); ok {
		s.tMin = first
		s.span = last.Sub(first)
		s.XTicks = timeTicks(first, s.span, o.xTicks)
	}

	s.YTicks = make([]float64, 0, len(p.AxisTicks))
	for _, v := range p.AxisTicks {
		if v >= p.AxisMin && v <= p.AxisMax {
			s.YTicks = append(s.YTicks, v)
		}
	}

	return s
}

func timeTicks(start time.Time, span time.Duration, n int) []time.Time {
	if span <= 0 {
		return []time.Time{start}
	}
	// step*i never exceeds span, so long spans cannot overflow.
	step := span / time.Duration(n-1)
	out := make([]time.Time, n)
	for i := range out {
		out[i] = start.Add(step * time.Duration(i))
	}
	out[n-1] = start.Add(span)
	return out
}

// Plot returns the plot rectangle inside the margins.
func (s Scales) Plot() canvas.Rect {
	return s.plot
}

// Domain returns the time extent the x axis covers.
func (s Scales) Domain() (time.Time, time.Time) {
	return s.tMin, s.tMin.Add(s.span)
}

// TimeToX maps an instant onto a pixel column. With a zero time span every
// instant lands on the horizontal center of the plot.
func (s Scales) TimeToX(t time.Time) float64 {
	if s.span <= 0 {
		return s.plot.X + s.plot.W/2
	}
	return s.plot.X + s.plot.W*float64(t.Sub(s.tMin))/float64(s.span)
}

// XToTime is the inverse of TimeToX.
func (s Scales) XToTime(x float64) time.Time {
	if s.span <= 0 || s.plot.W == 0 {
		return s.tMin
	}
	frac := (x - s.plot.X) / s.plot.W
	return s.tMin.Add(time.Duration(frac * float64(s.span)))
}

// ValueToY maps a value onto a pixel row. Values outside the axis range are
// mapped by the same affine function and may fall outside the plot.
func (s Scales) ValueToY(v float64) float64 {
	if s.vMax == s.vMin {
		return s.plot.Y + s.plot.H/2
	}
	return s.plot.Bottom() - s.plot.H*(v-s.vMin)/(s.vMax-s.vMin)
}
