package render

import (
	"fmt"

	"codeberg.org/mutker/vitalchart/internal/canvas"
	"codeberg.org/mutker/vitalchart/internal/profile"
	"codeberg.org/mutker/vitalchart/internal/segment"
	"codeberg.org/mutker/vitalchart/internal/series"
)

// LegendEntry is one row of the chart legend.
type LegendEntry struct {
	Kind  string       `json:"kind" yaml:"kind"`
	Label string       `json:"label" yaml:"label"`
	Color canvas.Color `json:"color" yaml:"-"`
	Dash  []float64    `json:"dash,omitempty" yaml:"dash,omitempty"`
}

// Legend lists the zones of p followed by the line styles.
func Legend(p profile.Profile) []LegendEntry {
	out := make([]LegendEntry, 0, len(p.Zones)+4)
	for _, z := range p.Zones {
		out = append(out, LegendEntry{
			Kind:  "zone",
			Label: fmt.Sprintf("%s (%g-%g %s)", z.Label, z.Min, z.Max, p.Unit),
			Color: zoneColor(z.Color),
		})
	}

	lines := []struct {
		label string
		style segment.Style
	}{
		{"Measured", segment.Style{Kind: segment.StyleNormal}},
		{"Imputed (linear)", segment.Style{Kind: segment.StyleImputed, Method: series.MethodLinear}},
		{"Imputed (pattern)", segment.Style{Kind: segment.StyleImputed, Method: series.MethodPattern}},
		{"Gap bridge", segment.Style{Kind: segment.StyleGapBridge}},
	}
	for _, l := range lines {
		s := strokeFor(l.style)
		out = append(out, LegendEntry{Kind: "line", Label: l.label, Color: s.Color, Dash: s.Dash})
	}
	return out
}
