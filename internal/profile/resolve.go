package profile

import (
	"strings"
	"unicode"
)

// Strategy names the rule that produced a Resolution.
type Strategy string

const (
	StrategyExact      Strategy = "exact"
	StrategyLowercase  Strategy = "lowercase"
	StrategyNormalized Strategy = "normalized"
	StrategyAlias      Strategy = "alias"
	StrategyKeyword    Strategy = "keyword"
	StrategyFallback   Strategy = "fallback"
)

// Resolution is a resolved profile together with the strategy that matched.
type Resolution struct {
	Profile  Profile
	Strategy Strategy
}

type strategy struct {
	name    Strategy
	resolve func(string) (Profile, bool)
}

// strategies run in order; the first match wins.
var strategies = []strategy{
	{StrategyExact, get},
	{StrategyLowercase, func(key string) (Profile, bool) {
		return get(strings.ToLower(key))
	}},
	{StrategyNormalized, func(key string) (Profile, bool) {
		return get(normalize(key))
	}},
	{StrategyAlias, func(key string) (Profile, bool) {
		target, ok := aliases[normalize(key)]
		if !ok {
			return Profile{}, false
		}
		return get(target)
	}},
	{StrategyKeyword, matchKeyword},
}

// aliases are the short names used by the data service's clients.
var aliases = map[string]string{
	"heartrate":        HeartRate,
	"heart_rate":       HeartRate,
	"hr":               HeartRate,
	"spo2":             SpO2,
	"breath_rate":      BreathRate,
	"breathing_rate":   BreathRate,
	"hrv":              HRV,
	"steps":            Activity,
	"daily_steps":      Activity,
	"activity_minutes": Activity,
	"active_minutes":   Activity,
	"azm":              ActiveZoneMinutes,
}

type keyword struct {
	needle string
	key    string
}

// keywords is ordered: more specific needles come first so that
// "heart rate variability" lands on HRV rather than heart rate.
var keywords = []keyword{
	{"variability", HRV},
	{"hrv", HRV},
	{"zone", ActiveZoneMinutes},
	{"heart", HeartRate},
	{"pulse", HeartRate},
	{"spo2", SpO2},
	{"oxygen", SpO2},
	{"saturation", SpO2},
	{"breath", BreathRate},
	{"respirat", BreathRate},
	{"step", Activity},
	{"activ", Activity},
}

// Lookup resolves metricKey and reports which strategy matched.
func Lookup(metricKey string) Resolution {
	for _, s := range strategies {
		if p, ok := s.resolve(metricKey); ok {
			return Resolution{Profile: p, Strategy: s.name}
		}
	}

	p, _ := get(FallbackKey)
	return Resolution{Profile: p, Strategy: StrategyFallback}
}

func matchKeyword(key string) (Profile, bool) {
	lower := strings.ToLower(key)
	for _, k := range keywords {
		if strings.Contains(lower, k.needle) {
			return get(k.key)
		}
	}
	return Profile{}, false
}

// normalize lowercases key and collapses runs of whitespace and hyphens
// into a single underscore.
func normalize(key string) string {
	var b strings.Builder
	sep := false
	for _, r := range strings.TrimSpace(strings.ToLower(key)) {
		if unicode.IsSpace(r) || r == '-' {
			sep = true
			continue
		}
		if sep {
			b.WriteByte('_')
			sep = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
