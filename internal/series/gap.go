package series

import (
	"time"

	"codeberg.org/mutker/vitalchart/internal/errors"
)

// Gap thresholds. Gap detection and segment styling both read these, so
// the gap markers, the gap summary and the line styles stay in agreement.
const (
	GapThreshold = 90 * time.Minute
	ShortGapMax  = 3 * time.Hour
	MediumGapMax = 10 * time.Hour
)

// GapClass buckets a gap by duration.
type GapClass int

const (
	GapShort GapClass = iota
	GapMedium
	GapLong
)

func (c GapClass) String() string {
	switch c {
	case GapShort:
		return "short"
	case GapMedium:
		return "medium"
	default:
		return "long"
	}
}

func (c GapClass) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *GapClass) UnmarshalText(text []byte) error {
	class, ok := ParseGapClass(string(text))
	if !ok {
		return errors.New().WithData(ErrInvalidSample, string(text))
	}
	*c = class
	return nil
}

// ParseGapClass reads the gap_type spelling used by upstream summaries.
func ParseGapClass(name string) (GapClass, bool) {
	switch name {
	case "short":
		return GapShort, true
	case "medium":
		return GapMedium, true
	case "long":
		return GapLong, true
	default:
		return GapShort, false
	}
}

// IsGap reports whether the delta between two consecutive samples is a gap.
func IsGap(delta time.Duration) bool {
	return delta > GapThreshold
}

// ClassifyGap classifies delta. ok is false when delta is not a gap.
func ClassifyGap(delta time.Duration) (class GapClass, ok bool) {
	switch {
	case !IsGap(delta):
		return GapShort, false
	case delta <= ShortGapMax:
		return GapShort, true
	case delta <= MediumGapMax:
		return GapMedium, true
	default:
		return GapLong, true
	}
}
