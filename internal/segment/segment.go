// Package segment decides, for every pair of consecutive samples, whether
// a line is drawn between them and in which style.
package segment

import (
	"codeberg.org/mutker/vitalchart/internal/series"
)

// StyleKind is the visual treatment of a segment.
type StyleKind int

const (
	StyleNormal StyleKind = iota
	StyleImputed
	StyleGapBridge
)

func (k StyleKind) String() string {
	switch k {
	case StyleImputed:
		return "imputed"
	case StyleGapBridge:
		return "gap_bridge"
	default:
		return "normal"
	}
}

// Style is the tagged style of a segment. Method is only set for
// StyleImputed.
type Style struct {
	Kind   StyleKind
	Method series.ImputationMethod
}

func (s Style) String() string {
	if s.Kind == StyleImputed {
		return s.Kind.String() + "/" + s.Method.String()
	}
	return s.Kind.String()
}

// Segment joins samples From and To (To == From+1).
type Segment struct {
	From  int
	To    int
	Style Style
	Draw  bool
}

// Plan walks the consecutive pairs of a sorted sequence. Pairs further
// apart than the gap threshold are bridged when connectGaps is set and
// left undrawn otherwise. Close pairs involving an imputed sample take the
// imputed style, using the earlier imputed sample's method.
func Plan(samples []series.Sample, connectGaps bool) []Segment {
	if len(samples) < 2 {
		return []Segment{}
	}

	out := make([]Segment, 0, len(samples)-1)
	for i := 0; i < len(samples)-1; i++ {
		left, right := samples[i], samples[i+1]
		seg := Segment{From: i, To: i + 1, Draw: true}

		switch {
		case series.IsGap(right.Timestamp.Sub(left.Timestamp)):
			seg.Style = Style{Kind: StyleGapBridge}
			seg.Draw = connectGaps
		case left.IsImputed:
			seg.Style = Style{Kind: StyleImputed, Method: left.Method}
		case right.IsImputed:
			seg.Style = Style{Kind: StyleImputed, Method: right.Method}
		default:
			seg.Style = Style{Kind: StyleNormal}
		}

		out = append(out, seg)
	}
	return out
}

// Run is a homogeneous stroke: consecutive drawn segments sharing a style.
// Indices lists the samples the stroke passes through, in order.
type Run struct {
	Style   Style
	Indices []int
}

// Runs folds a plan into strokes. A new run starts whenever the style
// changes or a segment is not drawn; every gap bridge is a run of its own.
func Runs(segments []Segment) []Run {
	out := make([]Run, 0)
	cur := -1
	for _, seg := range segments {
		if !seg.Draw {
			cur = -1
			continue
		}
		if cur >= 0 && extends(out[cur], seg) {
			out[cur].Indices = append(out[cur].Indices, seg.To)
			continue
		}
		out = append(out, Run{Style: seg.Style, Indices: []int{seg.From, seg.To}})
		cur = len(out) - 1
	}
	return out
}

func extends(run Run, seg Segment) bool {
	return run.Style == seg.Style &&
		seg.Style.Kind != StyleGapBridge &&
		run.Indices[len(run.Indices)-1] == seg.From
}

// Isolated returns the indices of samples that no drawn segment touches.
// They are drawn as dots so that data between two gaps stays visible.
func Isolated(n int, segments []Segment) []int {
	touched := make([]bool, n)
	for _, seg := range segments {
		if seg.Draw {
			touched[seg.From] = true
			touched[seg.To] = true
		}
	}
	out := make([]int, 0)
	for i, t := range touched {
		if !t {
			out = append(out, i)
		}
	}
	return out
}
