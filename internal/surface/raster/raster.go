// Package raster draws canvas commands into an RGBA image with gg.
package raster

import (
	"image"
	"io"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"codeberg.org/mutker/vitalchart/internal/canvas"
)

// Surface is a canvas.Surface backed by a gg context. Text is drawn with
// the fixed 7x13 bitmap face; TextStyle.Size is ignored.
type Surface struct {
	dc *gg.Context
}

// New returns a width x height surface cleared to background.
func New(width, height int, background canvas.Color) *Surface {
	dc := gg.NewContext(width, height)
	dc.SetColor(background)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)
	return &Surface{dc: dc}
}

func (s *Surface) FillRect(r canvas.Rect, fill canvas.Color) {
	s.dc.SetColor(fill)
	s.dc.DrawRectangle(r.X, r.Y, r.W, r.H)
	s.dc.Fill()
}

func (s *Surface) StrokePath(points []canvas.Point, stroke canvas.Stroke) {
	if len(points) < 2 {
		return
	}
	s.dc.SetColor(stroke.Color)
	s.dc.SetLineWidth(stroke.Width)
	s.dc.SetDash(stroke.Dash...)
	s.dc.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		s.dc.LineTo(p.X, p.Y)
	}
	s.dc.Stroke()
	s.dc.SetDash()
}

func (s *Surface) Dot(center canvas.Point, radius float64, fill canvas.Color) {
	s.dc.SetColor(fill)
	s.dc.DrawCircle(center.X, center.Y, radius)
	s.dc.Fill()
}

func (s *Surface) Text(text string, at canvas.Point, style canvas.TextStyle) {
	s.dc.SetColor(style.Color)
	ax := anchorX(style.Anchor)
	if style.Vertical {
		s.dc.Push()
		s.dc.RotateAbout(-math.Pi/2, at.X, at.Y)
		s.dc.DrawStringAnchored(text, at.X, at.Y, ax, 0.5)
		s.dc.Pop()
		return
	}
	s.dc.DrawStringAnchored(text, at.X, at.Y, ax, 0.5)
}

func anchorX(a canvas.Anchor) float64 {
	switch a {
	case canvas.AnchorMiddle:
		return 0.5
	case canvas.AnchorEnd:
		return 1
	default:
		return 0
	}
}

// Image returns the drawn image.
func (s *Surface) Image() image.Image {
	return s.dc.Image()
}

// EncodePNG writes the image as PNG.
func (s *Surface) EncodePNG(w io.Writer) error {
	return s.dc.EncodePNG(w)
}
