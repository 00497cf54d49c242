// Package profile maps metric identifiers onto their static display
// configuration. Resolution never fails: a key that matches nothing is
// drawn with the heart-rate profile, so a chart always renders with sane
// axes. Callers that need to know about the degraded match should use
// Lookup and inspect the returned Strategy.
package profile

import "sort"

// Zone is a labeled value band drawn behind the plot and listed in the legend.
type Zone struct {
	Min   float64 `json:"min" yaml:"min"`
	Max   float64 `json:"max" yaml:"max"`
	Color string  `json:"color" yaml:"color"`
	Label string  `json:"label" yaml:"label"`
}

// Profile is the display configuration of one metric.
type Profile struct {
	Key       string    `json:"key" yaml:"key"`
	Title     string    `json:"title" yaml:"title"`
	Unit      string    `json:"unit" yaml:"unit"`
	Zones     []Zone    `json:"zones" yaml:"zones"`
	AxisTicks []float64 `json:"axis_ticks" yaml:"axis_ticks"`
	AxisMin   float64   `json:"axis_min" yaml:"axis_min"`
	AxisMax   float64   `json:"axis_max" yaml:"axis_max"`
}

const (
	HeartRate         = "intraday_heart_rate"
	SpO2              = "intraday_spo2"
	BreathRate        = "intraday_breath_rate"
	HRV               = "intraday_hrv"
	Activity          = "intraday_activity"
	ActiveZoneMinutes = "intraday_active_zone_minutes"

	// FallbackKey is used for any metric that matches no strategy.
	FallbackKey = HeartRate
)

var table = map[string]Profile{
	HeartRate: {
		Key:   HeartRate,
		Title: "Heart Rate",
		Unit:  "bpm",
		Zones: []Zone{
			{Min: 40, Max: 60, Color: "#60a5fa", Label: "Resting"},
			{Min: 60, Max: 100, Color: "#10b981", Label: "Normal"},
			{Min: 100, Max: 140, Color: "#f59e0b", Label: "Elevated"},
			{Min: 140, Max: 200, Color: "#ef4444", Label: "High"},
		},
		AxisTicks: []float64{40, 60, 80, 100, 120, 140, 160, 180, 200},
		AxisMin:   40,
		AxisMax:   200,
	},
	SpO2: {
		Key:   SpO2,
		Title: "Blood Oxygen (SpO2)",
		Unit:  "%",
		Zones: []Zone{
			{Min: 80, Max: 90, Color: "#ef4444", Label: "Low"},
			{Min: 90, Max: 95, Color: "#f59e0b", Label: "Borderline"},
			{Min: 95, Max: 100, Color: "#10b981", Label: "Normal"},
		},
		AxisTicks: []float64{80, 85, 90, 95, 100},
		AxisMin:   80,
		AxisMax:   100,
	},
	BreathRate: {
		Key:   BreathRate,
		Title: "Breathing Rate",
		Unit:  "br/min",
		Zones: []Zone{
			{Min: 5, Max: 12, Color: "#60a5fa", Label: "Slow"},
			{Min: 12, Max: 20, Color: "#10b981", Label: "Normal"},
			{Min: 20, Max: 30, Color: "#f59e0b", Label: "Fast"},
		},
		AxisTicks: []float64{5, 10, 15, 20, 25, 30},
		AxisMin:   5,
		AxisMax:   30,
	},
	HRV: {
		Key:   HRV,
		Title: "Heart Rate Variability",
		Unit:  "ms",
		Zones: []Zone{
			{Min: 0, Max: 20, Color: "#ef4444", Label: "Low"},
			{Min: 20, Max: 50, Color: "#f59e0b", Label: "Moderate"},
			{Min: 50, Max: 100, Color: "#10b981", Label: "Good"},
			{Min: 100, Max: 150, Color: "#06b6d4", Label: "Excellent"},
		},
		AxisTicks: []float64{0, 25, 50, 75, 100, 125, 150},
		AxisMin:   0,
		AxisMax:   150,
	},
	Activity: {
		Key:   Activity,
		Title: "Activity",
		Unit:  "steps",
		Zones: []Zone{
			{Min: 0, Max: 50, Color: "#9ca3af", Label: "Sedentary"},
			{Min: 50, Max: 150, Color: "#10b981", Label: "Light"},
			{Min: 150, Max: 300, Color: "#8b5cf6", Label: "Active"},
		},
		AxisTicks: []float64{0, 50, 100, 150, 200, 250, 300},
		AxisMin:   0,
		AxisMax:   300,
	},
	ActiveZoneMinutes: {
		Key:   ActiveZoneMinutes,
		Title: "Active Zone Minutes",
		Unit:  "min",
		Zones: []Zone{
			{Min: 0, Max: 1, Color: "#9ca3af", Label: "Inactive"},
			{Min: 1, Max: 3, Color: "#f59e0b", Label: "Fat Burn"},
			{Min: 3, Max: 6, Color: "#ef4444", Label: "Cardio"},
			{Min: 6, Max: 10, Color: "#b91c1c", Label: "Peak"},
		},
		AxisTicks: []float64{0, 2, 4, 6, 8, 10},
		AxisMin:   0,
		AxisMax:   10,
	},
}

// Keys returns the metric keys of the profile table, sorted.
func Keys() []string {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Resolve returns the display profile for metricKey.
func Resolve(metricKey string) Profile {
	return Lookup(metricKey).Profile
}

// get returns a copy of a table entry so callers cannot alter the table
// through the shared slices.
func get(key string) (Profile, bool) {
	p, ok := table[key]
	if !ok {
		return Profile{}, false
	}
	p.Zones = append([]Zone(nil), p.Zones...)
	p.AxisTicks = append([]float64(nil), p.AxisTicks...)
	return p, true
}
