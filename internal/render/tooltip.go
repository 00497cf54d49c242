package render

import (
	"codeberg.org/mutker/vitalchart/internal/cursor"
	"codeberg.org/mutker/vitalchart/internal/profile"
	"codeberg.org/mutker/vitalchart/internal/scale"
)

// TooltipPayload is what the UI shows next to the crosshair.
type TooltipPayload struct {
	Visible       bool    `json:"visible"`
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	ValueText     string  `json:"value_text"`
	TimestampText string  `json:"timestamp_text"`
}

// Tooltip reads the value under the view's pointer. It is hidden when there
// is no pointer, no data, or the pointer is outside the plot columns.
func Tooltip(view ViewState, p profile.Profile, sc scale.Scales) TooltipPayload {
	ptr := view.Pointer
	plot := sc.Plot()
	if ptr == nil || ptr.X < plot.Left() || ptr.X > plot.Right() {
		return TooltipPayload{}
	}

	r, ok := cursor.ValueAtX(view.Samples, sc, ptr.X)
	if !ok {
		return TooltipPayload{}
	}

	loc, _ := view.location()
	text := formatNumber(view.printer(), r.Value) + " " + p.Unit
	if r.IsImputed {
		text += " (imputed)"
	}

	return TooltipPayload{
		Visible:       true,
		X:             sc.TimeToX(r.Timestamp),
		Y:             sc.ValueToY(r.Value),
		ValueText:     text,
		TimestampText: r.Timestamp.In(loc).Format("Jan 2, 2006 15:04 MST"),
	}
}
