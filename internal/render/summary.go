package render

import (
	"strings"

	"codeberg.org/mutker/vitalchart/internal/gaps"
	"codeberg.org/mutker/vitalchart/internal/profile"
	"codeberg.org/mutker/vitalchart/internal/stats"
)

// SummaryText is the gap-count and data-summary block shown under the
// chart. The data service's own summary is echoed as given; local counts
// are used when it is absent.
func SummaryText(view ViewState, p profile.Profile, detected []gaps.Gap) string {
	pr := view.printer()
	var b strings.Builder

	c := gaps.Count(detected)
	pr.Fprintf(&b, "Gaps on chart: %d (short %d, medium %d, long %d)\n", c.Total(), c.Short, c.Medium, c.Long)
	if view.ReportedGaps != nil {
		r := gaps.CountReported(view.ReportedGaps)
		pr.Fprintf(&b, "Gaps reported by source: %d (short %d, medium %d, long %d)\n", r.Total(), r.Short, r.Medium, r.Long)
	}

	if ds := view.DataSummary; ds != nil {
		pr.Fprintf(&b, "Data points: %d (real %d, imputed %d, %s%% imputed)\n",
			ds.TotalPoints, ds.RealPoints, ds.ImputedPoints, formatNumber(pr, ds.ImputationPercentage))
	} else {
		s := stats.Split(view.Samples)
		pr.Fprintf(&b, "Data points: %d (real %d, imputed %d, %s%% imputed)\n",
			s.Total, s.Real, s.Imputed, formatNumber(pr, s.ImputationPercentage))
	}

	if view.ImputationApplied {
		b.WriteString("Imputation applied: yes\n")
	} else {
		b.WriteString("Imputation applied: no\n")
	}

	if s, ok := stats.Summarize(view.Samples); ok {
		pr.Fprintf(&b, "Range: min %s, max %s, average %s, median %s %s\n",
			formatNumber(pr, s.Min), formatNumber(pr, s.Max),
			formatNumber(pr, s.Average), formatNumber(pr, s.Median), p.Unit)
	} else {
		b.WriteString("No data to display\n")
	}

	return b.String()
}
