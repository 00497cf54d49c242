package render

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"codeberg.org/mutker/vitalchart/internal/canvas"
	"codeberg.org/mutker/vitalchart/internal/gaps"
	"codeberg.org/mutker/vitalchart/internal/profile"
	"codeberg.org/mutker/vitalchart/internal/scale"
	"codeberg.org/mutker/vitalchart/internal/segment"
)

// Layers in drawing order. Each layer may overdraw the previous ones.
const (
	LayerZones     = "zones"
	LayerGrid      = "grid"
	LayerAxes      = "axes"
	LayerTicks     = "ticks"
	LayerData      = "data"
	LayerGaps      = "gaps"
	LayerCrosshair = "crosshair"
	LayerTitles    = "titles"
)

// Render draws one frame onto s.
func Render(s canvas.Surface, view ViewState, p profile.Profile, sc scale.Scales, segs []segment.Segment, gs []gaps.Gap) {
	canvas.Replay(s, Plan(view, p, sc, segs, gs))
}

// Plan returns the drawing commands of one frame in drawing order.
func Plan(view ViewState, p profile.Profile, sc scale.Scales, segs []segment.Segment, gs []gaps.Gap) []canvas.Command {
	loc, _ := view.location()
	b := &builder{
		view:    view,
		profile: p,
		scales:  sc,
		plot:    sc.Plot(),
		loc:     loc,
		printer: view.printer(),
		dates:   DateLayout(view.Locale),
	}

	b.zones()
	b.grid()
	b.axes()
	b.tickLabels()
	b.data(segs)
	if !view.ConnectGaps {
		b.gapMarkers(gs)
	}
	b.crosshair()
	b.titles()

	return b.cmds
}

type builder struct {
	view    ViewState
	profile profile.Profile
	scales  scale.Scales
	plot    canvas.Rect
	loc     *time.Location
	printer *message.Printer
	dates   string
	cmds    []canvas.Command
}

func (b *builder) fill(layer string, r canvas.Rect, c canvas.Color) {
	b.cmds = append(b.cmds, canvas.Command{Op: canvas.OpFillRect, Layer: layer, Rect: r, Fill: c})
}

func (b *builder) stroke(layer string, s canvas.Stroke, pts ...canvas.Point) {
	b.cmds = append(b.cmds, canvas.Command{Op: canvas.OpStrokePath, Layer: layer, Points: pts, Stroke: s})
}

func (b *builder) dot(layer string, at canvas.Point, c canvas.Color) {
	b.cmds = append(b.cmds, canvas.Command{Op: canvas.OpDot, Layer: layer, Points: []canvas.Point{at}, Radius: dotRadius, Fill: c})
}

func (b *builder) text(layer, s string, at canvas.Point, style canvas.TextStyle) {
	b.cmds = append(b.cmds, canvas.Command{Op: canvas.OpText, Layer: layer, Points: []canvas.Point{at}, Text: s, Style: style})
}

func (b *builder) zones() {
	for _, z := range b.profile.Zones {
		lo := math.Max(z.Min, b.profile.AxisMin)
		hi := math.Min(z.Max, b.profile.AxisMax)
		if lo >= hi {
			continue
		}
		top, bottom := b.scales.ValueToY(hi), b.scales.ValueToY(lo)
		b.fill(LayerZones, canvas.Rect{X: b.plot.X, Y: top, W: b.plot.W, H: bottom - top}, zoneColor(z.Color))
	}
}

func (b *builder) grid() {
	line := canvas.Stroke{Color: gridColor, Width: 1}
	for _, v := range b.scales.YTicks {
		y := b.scales.ValueToY(v)
		b.stroke(LayerGrid, line, canvas.Point{X: b.plot.Left(), Y: y}, canvas.Point{X: b.plot.Right(), Y: y})
	}
	for _, t := range b.scales.XTicks {
		x := b.scales.TimeToX(t)
		b.stroke(LayerGrid, line, canvas.Point{X: x, Y: b.plot.Top()}, canvas.Point{X: x, Y: b.plot.Bottom()})
	}
}

func (b *builder) axes() {
	line := canvas.Stroke{Color: axisColor, Width: 1}
	b.stroke(LayerAxes, line,
		canvas.Point{X: b.plot.Left(), Y: b.plot.Top()},
		canvas.Point{X: b.plot.Left(), Y: b.plot.Bottom()},
		canvas.Point{X: b.plot.Right(), Y: b.plot.Bottom()},
	)
}

func (b *builder) tickLabels() {
	for _, v := range b.scales.YTicks {
		b.text(LayerTicks, formatNumber(b.printer, v),
			canvas.Point{X: b.plot.Left() - 8, Y: b.scales.ValueToY(v)},
			canvas.TextStyle{Color: labelColor, Size: tickFontSize, Anchor: canvas.AnchorEnd})
	}
	for _, t := range b.scales.XTicks {
		b.text(LayerTicks, t.In(b.loc).Format(b.dates),
			canvas.Point{X: b.scales.TimeToX(t), Y: b.plot.Bottom() + 16},
			canvas.TextStyle{Color: labelColor, Size: tickFontSize, Anchor: canvas.AnchorMiddle})
	}
}

func (b *builder) point(i int) canvas.Point {
	s := b.view.Samples[i]
	return canvas.Point{X: b.scales.TimeToX(s.Timestamp), Y: b.scales.ValueToY(s.Value)}
}

func (b *builder) data(segs []segment.Segment) {
	for _, run := range segment.Runs(segs) {
		pts := make([]canvas.Point, len(run.Indices))
		for i, idx := range run.Indices {
			pts[i] = b.point(idx)
		}
		b.stroke(LayerData, strokeFor(run.Style), pts...)
	}

	for _, idx := range segment.Isolated(len(b.view.Samples), segs) {
		c := measuredColor
		if b.view.Samples[idx].IsImputed {
			c = imputedColor
		}
		b.dot(LayerData, b.point(idx), c)
	}
}

func (b *builder) gapMarkers(gs []gaps.Gap) {
	mid := b.plot.Y + b.plot.H/2
	for _, g := range gs {
		x1, x2 := b.scales.TimeToX(g.Start), b.scales.TimeToX(g.End)
		b.fill(LayerGaps, canvas.Rect{X: x1, Y: mid - gapBandHeight/2, W: x2 - x1, H: gapBandHeight}, gapFillColor)
		if x2-x1 < MinGapLabelWidth {
			continue
		}
		b.text(LayerGaps, GapLabel(g),
			canvas.Point{X: (x1 + x2) / 2, Y: mid},
			canvas.TextStyle{Color: axisColor, Size: tickFontSize, Anchor: canvas.AnchorMiddle})
	}
}

// GapLabel is the text drawn inside a gap marker.
func GapLabel(g gaps.Gap) string {
	if g.DurationHours <= ShortGapLabelHours {
		return fmt.Sprintf("%dh gap", int(math.Round(g.DurationHours)))
	}
	return DeviceOffLabel
}

func (b *builder) crosshair() {
	ptr := b.view.Pointer
	if ptr == nil || ptr.X < b.plot.Left() || ptr.X > b.plot.Right() {
		return
	}
	b.stroke(LayerCrosshair, canvas.Stroke{Color: crosshairColor, Width: 1, Dash: []float64{3, 3}},
		canvas.Point{X: ptr.X, Y: b.plot.Top()}, canvas.Point{X: ptr.X, Y: b.plot.Bottom()})
}

func (b *builder) titles() {
	w, h := b.view.size()
	center := b.plot.X + b.plot.W/2

	b.text(LayerTitles, b.profile.Title+" Over Time",
		canvas.Point{X: float64(w) / 2, Y: b.plot.Top() / 2},
		canvas.TextStyle{Color: titleColor, Size: chartFontSize, Anchor: canvas.AnchorMiddle})
	b.text(LayerTitles, "Time ("+TimezoneLabel(b.view.timezoneName())+")",
		canvas.Point{X: center, Y: float64(h) - 16},
		canvas.TextStyle{Color: titleColor, Size: titleFontSize, Anchor: canvas.AnchorMiddle})
	b.text(LayerTitles, fmt.Sprintf("%s (%s)", b.profile.Title, b.profile.Unit),
		canvas.Point{X: 18, Y: b.plot.Y + b.plot.H/2},
		canvas.TextStyle{Color: titleColor, Size: titleFontSize, Anchor: canvas.AnchorMiddle, Vertical: true})
}

func formatNumber(p *message.Printer, v float64) string {
	return p.Sprint(number.Decimal(v, number.MaxFractionDigits(1)))
}
