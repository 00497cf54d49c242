package canvas

import (
	"fmt"
	"strings"
)

// Op identifies the primitive a Command draws.
type Op int

const (
	OpFillRect Op = iota
	OpStrokePath
	OpDot
	OpText
)

func (o Op) String() string {
	switch o {
	case OpFillRect:
		return "fill"
	case OpStrokePath:
		return "stroke"
	case OpDot:
		return "dot"
	case OpText:
		return "text"
	default:
		return "unknown"
	}
}

// Command is one primitive drawing operation. Only the fields relevant to
// Op are set.
type Command struct {
	Op     Op        `json:"op"`
	Layer  string    `json:"layer"`
	Rect   Rect      `json:"rect"`
	Points []Point   `json:"points,omitempty"`
	Fill   Color     `json:"fill"`
	Stroke Stroke    `json:"stroke"`
	Radius float64   `json:"radius,omitempty"`
	Text   string    `json:"text,omitempty"`
	Style  TextStyle `json:"style"`
}

// String renders the command on one line with fixed precision, which
// keeps golden files stable.
func (c Command) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-9s %-6s", c.Layer, c.Op)
	switch c.Op {
	case OpFillRect:
		fmt.Fprintf(&b, " rect=(%.2f,%.2f %.2fx%.2f) fill=%s", c.Rect.X, c.Rect.Y, c.Rect.W, c.Rect.H, c.Fill.Hex())
	case OpStrokePath:
		fmt.Fprintf(&b, " color=%s width=%.1f", c.Stroke.Color.Hex(), c.Stroke.Width)
		if len(c.Stroke.Dash) > 0 {
			fmt.Fprintf(&b, " dash=%v", c.Stroke.Dash)
		}
		b.WriteString(" points=")
		for i, p := range c.Points {
			if i > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "(%.2f,%.2f)", p.X, p.Y)
		}
	case OpDot:
		fmt.Fprintf(&b, " at=(%.2f,%.2f) r=%.1f fill=%s", c.Points[0].X, c.Points[0].Y, c.Radius, c.Fill.Hex())
	case OpText:
		fmt.Fprintf(&b, " at=(%.2f,%.2f) anchor=%d size=%.0f color=%s", c.Points[0].X, c.Points[0].Y, c.Style.Anchor, c.Style.Size, c.Style.Color.Hex())
		if c.Style.Vertical {
			b.WriteString(" vertical")
		}
		fmt.Fprintf(&b, " %q", c.Text)
	}
	return b.String()
}

// Replay issues cmds against s in order.
func Replay(s Surface, cmds []Command) {
	for _, c := range cmds {
		switch c.Op {
		case OpFillRect:
			s.FillRect(c.Rect, c.Fill)
		case OpStrokePath:
			s.StrokePath(c.Points, c.Stroke)
		case OpDot:
			s.Dot(c.Points[0], c.Radius, c.Fill)
		case OpText:
			s.Text(c.Text, c.Points[0], c.Style)
		}
	}
}

// Recorder is a Surface that keeps every call as a Command. Layer names are
// not known to a surface and are left empty.
type Recorder struct {
	Commands []Command
}

func (r *Recorder) FillRect(rect Rect, fill Color) {
	r.Commands = append(r.Commands, Command{Op: OpFillRect, Rect: rect, Fill: fill})
}

func (r *Recorder) StrokePath(points []Point, stroke Stroke) {
	r.Commands = append(r.Commands, Command{Op: OpStrokePath, Points: points, Stroke: stroke})
}

func (r *Recorder) Dot(center Point, radius float64, fill Color) {
	r.Commands = append(r.Commands, Command{Op: OpDot, Points: []Point{center}, Radius: radius, Fill: fill})
}

func (r *Recorder) Text(text string, at Point, style TextStyle) {
	r.Commands = append(r.Commands, Command{Op: OpText, Points: []Point{at}, Text: text, Style: style})
}
