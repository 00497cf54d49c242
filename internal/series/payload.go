package series

import (
	"encoding/json"
	"io"
	"time"

	"codeberg.org/mutker/vitalchart/internal/errors"
)

// Payload is the document produced by the data service for one metric and
// date range. Only Data feeds the chart; the summaries are display-only.
type Payload struct {
	Metric            string        `json:"metric,omitempty"`
	Timezone          string        `json:"timezone,omitempty"`
	Data              []Point       `json:"data"`
	GapsDetected      []ReportedGap `json:"gaps_detected,omitempty"`
	DataSummary       *DataSummary  `json:"data_summary,omitempty"`
	ImputationApplied bool          `json:"imputation_applied"`
}

// Point is one sample as it appears on the wire.
type Point struct {
	Timestamp        string   `json:"timestamp"`
	Value            float64  `json:"value"`
	IsImputed        bool     `json:"is_imputed,omitempty"`
	ImputationMethod *string  `json:"imputation_method,omitempty"`
	GapDurationHours *float64 `json:"gap_duration_hours,omitempty"`
	MetricType       string   `json:"metric_type,omitempty"`
	UserID           string   `json:"user_id,omitempty"`
}

// ReportedGap is an entry of the upstream gap summary. It is counted for
// the summary text and never drawn.
type ReportedGap struct {
	GapStart         string  `json:"gap_start"`
	GapEnd           string  `json:"gap_end"`
	GapDurationHours float64 `json:"gap_duration_hours"`
	GapType          string  `json:"gap_type"`
}

// DataSummary is passed through to the summary text unmodified.
type DataSummary struct {
	TotalPoints          int     `json:"total_points"`
	RealPoints           int     `json:"real_points"`
	ImputedPoints        int     `json:"imputed_points"`
	ImputationPercentage float64 `json:"imputation_percentage"`
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

// ParseTimestamp reads an ISO-8601 timestamp. Values without an offset are
// read as UTC.
func ParseTimestamp(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// Decode reads a Payload from r.
func Decode(r io.Reader) (*Payload, error) {
	errFactory := errors.New()

	var p Payload
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, errFactory.Wrap(ErrDecodePayload, err)
	}
	return &p, nil
}

// MetricKey returns the payload metric, falling back to the metric_type of
// the first point.
func (p *Payload) MetricKey() string {
	if p.Metric != "" {
		return p.Metric
	}
	if len(p.Data) > 0 {
		return p.Data[0].MetricType
	}
	return ""
}

// Samples converts the wire points into samples. A timestamp that does not
// parse rejects the whole payload, as does a sequence that is not sorted.
func (p *Payload) Samples() ([]Sample, error) {
	errFactory := errors.New()

	out := make([]Sample, 0, len(p.Data))
	for i, pt := range p.Data {
		ts, err := ParseTimestamp(pt.Timestamp)
		if err != nil {
			return nil, errFactory.WithData(ErrInvalidSample, struct {
				Index     int
				Timestamp string
				Error     string
			}{
				Index:     i,
				Timestamp: pt.Timestamp,
				Error:     err.Error(),
			})
		}

		method := ""
		if pt.ImputationMethod != nil {
			method = *pt.ImputationMethod
		}
		out = append(out, Sample{
			Timestamp: ts,
			Value:     pt.Value,
			IsImputed: pt.IsImputed,
			Method:    ParseMethod(method, pt.IsImputed),
		})
	}

	if idx := CheckOrder(out); idx >= 0 {
		return nil, errFactory.WithData(ErrUnorderedInput, struct {
			Index     int
			Timestamp string
		}{
			Index:     idx,
			Timestamp: p.Data[idx].Timestamp,
		})
	}

	return out, nil
}

// ReportedClasses returns the classes of the upstream gap summary, skipping
// entries with an unknown gap_type.
func (p *Payload) ReportedClasses() []GapClass {
	out := make([]GapClass, 0, len(p.GapsDetected))
	for _, g := range p.GapsDetected {
		if c, ok := ParseGapClass(g.GapType); ok {
			out = append(out, c)
		}
	}
	return out
}
