package render

import (
	"codeberg.org/mutker/vitalchart/internal/canvas"
	"codeberg.org/mutker/vitalchart/internal/segment"
	"codeberg.org/mutker/vitalchart/internal/series"
)

const (
	// MinGapLabelWidth is the narrowest gap marker that still gets a label.
	MinGapLabelWidth = 40.0
	// ShortGapLabelHours is the longest gap labeled with its hour count.
	ShortGapLabelHours = 6.0
	// DeviceOffLabel marks gaps longer than ShortGapLabelHours.
	DeviceOffLabel = "Device off"

	zoneAlpha     = 0x33
	gapBandHeight = 20.0
	dotRadius     = 2.5
	tickFontSize  = 11.0
	titleFontSize = 13.0
	chartFontSize = 16.0
)

var (
	gridColor      = canvas.MustHex("#e5e7eb")
	axisColor      = canvas.MustHex("#374151")
	labelColor     = canvas.MustHex("#6b7280")
	titleColor     = canvas.MustHex("#111827")
	measuredColor  = canvas.MustHex("#3b82f6")
	imputedColor   = canvas.MustHex("#8b5cf6")
	bridgeColor    = canvas.MustHex("#9ca3af")
	gapFillColor   = canvas.MustHex("#9ca3af").WithAlpha(0x40)
	crosshairColor = canvas.MustHex("#111827").WithAlpha(0x80)
	fallbackZone   = canvas.MustHex("#9ca3af")
)

// strokeFor returns the stroke of a data run.
func strokeFor(style segment.Style) canvas.Stroke {
	switch style.Kind {
	case segment.StyleImputed:
		if style.Method == series.MethodPattern {
			return canvas.Stroke{Color: imputedColor, Width: 2, Dash: []float64{2, 3}}
		}
		return canvas.Stroke{Color: imputedColor, Width: 2, Dash: []float64{6, 4}}
	case segment.StyleGapBridge:
		return canvas.Stroke{Color: bridgeColor, Width: 1.5, Dash: []float64{4, 6}}
	default:
		return canvas.Stroke{Color: measuredColor, Width: 2}
	}
}

func zoneColor(hex string) canvas.Color {
	c, ok := canvas.ParseHex(hex)
	if !ok {
		c = fallbackZone
	}
	return c.WithAlpha(zoneAlpha)
}
