// Package vector draws canvas commands as SVG through go-chart's renderer.
package vector

import (
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"codeberg.org/mutker/vitalchart/internal/canvas"
)

// Surface is a canvas.Surface backed by a go-chart SVG renderer. The
// renderer works in whole pixels, so coordinates are rounded.
type Surface struct {
	r chart.Renderer
}

// New returns a width x height SVG surface with background filled in.
func New(width, height int, background canvas.Color) (*Surface, error) {
	r, err := chart.SVG(width, height)
	if err != nil {
		return nil, err
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, err
	}
	r.SetFont(font)

	s := &Surface{r: r}
	s.FillRect(canvas.Rect{W: float64(width), H: float64(height)}, background)
	return s, nil
}

func toDrawing(c canvas.Color) drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

func px(v float64) int {
	return int(math.Round(v))
}

func (s *Surface) FillRect(rect canvas.Rect, fill canvas.Color) {
	s.r.ResetStyle()
	s.r.SetFillColor(toDrawing(fill))
	s.r.MoveTo(px(rect.Left()), px(rect.Top()))
	s.r.LineTo(px(rect.Right()), px(rect.Top()))
	s.r.LineTo(px(rect.Right()), px(rect.Bottom()))
	s.r.LineTo(px(rect.Left()), px(rect.Bottom()))
	s.r.Close()
	s.r.Fill()
}

func (s *Surface) StrokePath(points []canvas.Point, stroke canvas.Stroke) {
	if len(points) < 2 {
		return
	}
	s.r.ResetStyle()
	s.r.SetStrokeColor(toDrawing(stroke.Color))
	s.r.SetStrokeWidth(stroke.Width)
	s.r.SetStrokeDashArray(stroke.Dash)
	s.r.MoveTo(px(points[0].X), px(points[0].Y))
	for _, p := range points[1:] {
		s.r.LineTo(px(p.X), px(p.Y))
	}
	s.r.Stroke()
}

func (s *Surface) Dot(center canvas.Point, radius float64, fill canvas.Color) {
	s.r.ResetStyle()
	s.r.SetFillColor(toDrawing(fill))
	s.r.SetStrokeColor(drawing.ColorTransparent)
	s.r.Circle(radius, px(center.X), px(center.Y))
}

func (s *Surface) Text(text string, at canvas.Point, style canvas.TextStyle) {
	s.r.ResetStyle()
	s.r.SetFontColor(toDrawing(style.Color))
	s.r.SetFontSize(style.Size)

	box := s.r.MeasureText(text)
	dx := 0
	switch style.Anchor {
	case canvas.AnchorMiddle:
		dx = box.Width() / 2
	case canvas.AnchorEnd:
		dx = box.Width()
	}
	half := box.Height() / 2

	if style.Vertical {
		s.r.SetTextRotation(chart.DegreesToRadians(270))
		s.r.Text(text, px(at.X)+half, px(at.Y)+dx)
		s.r.ClearTextRotation()
		return
	}
	s.r.Text(text, px(at.X)-dx, px(at.Y)+half)
}

// Save writes the SVG document.
func (s *Surface) Save(w io.Writer) error {
	return s.r.Save(w)
}
