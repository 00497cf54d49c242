// Package canvas defines the drawing commands produced by the render
// pipeline and the surface interface that turns them into pixels. All
// mutable drawing state (current color, dash pattern, font) lives behind a
// Surface implementation; commands are plain values.
package canvas

import (
	"fmt"
	"strconv"
	"strings"
)

// Point is a position in surface pixels, origin top-left.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle in surface pixels.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left() && p.X <= r.Right() && p.Y >= r.Top() && p.Y <= r.Bottom()
}

// Color is a non-premultiplied RGBA color.
type Color struct {
	R, G, B, A uint8
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	r *= uint32(c.A)
	r /= 0xff
	g = uint32(c.G)
	g |= g << 8
	g *= uint32(c.A)
	g /= 0xff
	b = uint32(c.B)
	b |= b << 8
	b *= uint32(c.A)
	b /= 0xff
	a = uint32(c.A)
	a |= a << 8
	return r, g, b, a
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a uint8) Color {
	c.A = a
	return c
}

// Hex formats c as #rrggbb, or #rrggbbaa when not opaque.
func (c Color) Hex() string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// MarshalJSON encodes c as its hex string.
func (c Color) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(c.Hex())), nil
}

// UnmarshalJSON reads a hex string written by MarshalJSON.
func (c *Color) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return err
	}
	parsed, ok := ParseHex(s)
	if !ok {
		return fmt.Errorf("canvas: bad color %q", s)
	}
	*c = parsed
	return nil
}

// ParseHex reads #rgb, #rrggbb or #rrggbbaa. Malformed input yields opaque
// black and false.
func ParseHex(s string) (Color, bool) {
	s = strings.TrimPrefix(s, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) == 6 {
		s += "ff"
	}
	if len(s) != 8 {
		return Color{A: 0xff}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{A: 0xff}, false
	}
	return Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, true
}

// MustHex is ParseHex for package-level color constants.
func MustHex(s string) Color {
	c, ok := ParseHex(s)
	if !ok {
		panic("canvas: bad color " + s)
	}
	return c
}

// Stroke describes how a line or path is drawn.
type Stroke struct {
	Color Color     `json:"color"`
	Width float64   `json:"width"`
	Dash  []float64 `json:"dash,omitempty"`
}

// Anchor is the horizontal alignment of text relative to its position.
type Anchor int

const (
	AnchorStart Anchor = iota
	AnchorMiddle
	AnchorEnd
)

// TextStyle describes how a label is drawn. The position of a text
// command is the vertical middle of the label.
type TextStyle struct {
	Color  Color   `json:"color"`
	Size   float64 `json:"size"`
	Anchor Anchor  `json:"anchor"`
	// Vertical rotates the label a quarter turn counter-clockwise.
	Vertical bool `json:"vertical,omitempty"`
}

// Surface is the adapter that owns a drawing context.
type Surface interface {
	FillRect(r Rect, fill Color)
	StrokePath(points []Point, stroke Stroke)
	Dot(center Point, radius float64, fill Color)
	Text(text string, at Point, style TextStyle)
}
