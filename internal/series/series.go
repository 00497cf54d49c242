// Package series holds the sample model shared by every chart component and
// the gap thresholds that gap detection and line styling must agree on.
package series

import (
	"time"
)

// ImputationMethod names how an imputed value was synthesized upstream.
type ImputationMethod int

const (
	MethodNone ImputationMethod = iota
	MethodLinear
	MethodPattern
)

func (m ImputationMethod) String() string {
	switch m {
	case MethodLinear:
		return "linear"
	case MethodPattern:
		return "pattern"
	default:
		return "none"
	}
}

// ParseMethod maps an upstream method name onto an ImputationMethod.
// Points that are not imputed always carry MethodNone; unrecognized names
// on imputed points are treated as linear.
func ParseMethod(name string, imputed bool) ImputationMethod {
	if !imputed {
		return MethodNone
	}
	switch name {
	case "pattern", "pattern_based":
		return MethodPattern
	default:
		return MethodLinear
	}
}

// Sample is one timestamped measurement.
type Sample struct {
	Timestamp time.Time
	Value     float64
	IsImputed bool
	Method    ImputationMethod
}

// Values returns the sample values in order.
func Values(samples []Sample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.Value
	}
	return out
}

// Extent returns the first and last timestamps of a sorted sequence.
func Extent(samples []Sample) (time.Time, time.Time, bool) {
	if len(samples) == 0 {
		return time.Time{}, time.Time{}, false
	}
	return samples[0].Timestamp, samples[len(samples)-1].Timestamp, true
}

// CheckOrder returns the index of the first sample that is earlier than its
// predecessor, or -1 when the sequence is sorted. Chart components assume a
// sorted sequence and never call this; it exists for the layers that build
// the sequence.
func CheckOrder(samples []Sample) int {
	for i := 1; i < len(samples); i++ {
		if samples[i].Timestamp.Before(samples[i-1].Timestamp) {
			return i
		}
	}
	return -1
}
