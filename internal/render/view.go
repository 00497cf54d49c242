// Package render turns one chart view into an ordered list of drawing
// commands. Every function here is a pure function of its inputs: the same
// ViewState always yields the same commands, so a frame can be recomputed
// from scratch on any data, size or pointer change.
package render

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"codeberg.org/mutker/vitalchart/internal/canvas"
	"codeberg.org/mutker/vitalchart/internal/scale"
	"codeberg.org/mutker/vitalchart/internal/series"
)

// Default view settings.
const (
	DefaultTimezone = "America/Los_Angeles"
	DefaultLocale   = "en-US"
	DefaultWidth    = 960
	DefaultHeight   = 420

	// MaxWidth and MaxHeight bound the surface a caller may request.
	MaxWidth  = 10000
	MaxHeight = 10000
)

// ViewState is the caller-owned snapshot a frame is rendered from. The
// pipeline reads it and keeps no reference after returning.
type ViewState struct {
	Samples []series.Sample
	Metric  string
	// Timezone is an IANA zone name used for time labels.
	Timezone string
	// Locale is a BCP 47 tag used for number formatting.
	Locale            string
	ConnectGaps       bool
	ImputationApplied bool
	Width             int
	Height            int
	Margins           scale.Margins
	XTickCount        int
	// Pointer is the last known pointer position, nil when the pointer is
	// outside the chart.
	Pointer *canvas.Point
	// DataSummary and ReportedGaps come from the data service and are only
	// echoed in the summary text.
	DataSummary  *series.DataSummary
	ReportedGaps []series.GapClass
}

// Timezone is a zone offered for display, with its axis title label.
type Timezone struct {
	Name  string `json:"name" yaml:"name"`
	Label string `json:"label" yaml:"label"`
}

var timezones = []Timezone{
	{Name: "America/Los_Angeles", Label: "Pacific Time (PT)"},
	{Name: "America/New_York", Label: "Eastern Time (ET)"},
	{Name: "America/Chicago", Label: "Central Time (CT)"},
	{Name: "America/Denver", Label: "Mountain Time (MT)"},
	{Name: "UTC", Label: "Coordinated Universal Time (UTC)"},
}

// Timezones returns the labeled zones, default first.
func Timezones() []Timezone {
	out := make([]Timezone, len(timezones))
	copy(out, timezones)
	return out
}

// TimezoneLabel returns the display name of a zone, or the zone name itself.
func TimezoneLabel(name string) string {
	for _, tz := range timezones {
		if tz.Name == name {
			return tz.Label
		}
	}
	return name
}

// location resolves the view's zone. An unknown name falls back to UTC.
func (v ViewState) location() (*time.Location, bool) {
	name := v.Timezone
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC, false
	}
	return loc, true
}

// Location returns the zone time labels are shown in.
func (v ViewState) Location() *time.Location {
	loc, _ := v.location()
	return loc
}

func (v ViewState) timezoneName() string {
	if v.Timezone == "" {
		return DefaultTimezone
	}
	return v.Timezone
}

// tag returns the view's locale, American English when it does not parse.
func (v ViewState) tag() language.Tag {
	tag, err := language.Parse(v.Locale)
	if err != nil || v.Locale == "" {
		return language.AmericanEnglish
	}
	return tag
}

// printer returns a number printer for the view's locale.
func (v ViewState) printer() *message.Printer {
	return message.NewPrinter(v.tag())
}

// DateLayout returns the time tick layout for locale, following the
// locale's day and month order.
func DateLayout(locale string) string {
	tag := ViewState{Locale: locale}.tag()
	base, _ := tag.Base()
	region, _ := tag.Region()

	switch base.String() {
	case "en":
		switch region.String() {
		case "US", "PH", "CA":
			return "Jan 2"
		}
		return "2 Jan"
	case "zh", "ja", "ko", "hu", "lt", "sv":
		return "01-02"
	case "de", "ru", "pl", "fi", "nb", "no", "da", "cs", "sk", "tr", "uk":
		return "2.1."
	default:
		return "2/1"
	}
}

func (v ViewState) margins() scale.Margins {
	if v.Margins == (scale.Margins{}) {
		return scale.DefaultMargins
	}
	return v.Margins
}

func (v ViewState) size() (int, int) {
	w, h := v.Width, v.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return w, h
}
