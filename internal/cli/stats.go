package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"codeberg.org/mutker/vitalchart/internal/profile"
	"codeberg.org/mutker/vitalchart/internal/render"
	"codeberg.org/mutker/vitalchart/internal/series"
	"codeberg.org/mutker/vitalchart/internal/stats"
)

type statsOptions struct {
	input  inputOptions
	report string
}

// StatsReport is the output of the stats command.
type StatsReport struct {
	Metric    string              `json:"metric" yaml:"metric"`
	Unit      string              `json:"unit" yaml:"unit"`
	Summary   *stats.Summary      `json:"summary" yaml:"summary"`
	Breakdown stats.Breakdown     `json:"breakdown" yaml:"breakdown"`
	Source    *series.DataSummary `json:"source_summary,omitempty" yaml:"source_summary,omitempty"`
}

// NewStatsCommand creates the stats command.
func NewStatsCommand(root *RootOptions) *cobra.Command {
	opts := &statsOptions{}

	cmd := &cobra.Command{
		Use:   "stats [payload.json]",
		Short: "Print min, max, average and median of a series",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validReport(opts.report); err != nil {
				return err
			}
			view, err := loadView(cmd, root, &opts.input, args)
			if err != nil {
				return err
			}
			r := buildStatsReport(view)
			return writeReport(cmd.OutOrStdout(), opts.report, r, func(w io.Writer) error {
				return writeStatsText(w, r)
			})
		},
	}

	addInputFlags(cmd, &opts.input)
	cmd.Flags().StringVar(&opts.report, "report", ReportText, "Report format (text, json, yaml)")

	return cmd
}

func buildStatsReport(view render.ViewState) StatsReport {
	p := profile.Resolve(view.Metric)
	r := StatsReport{
		Metric:    p.Key,
		Unit:      p.Unit,
		Breakdown: stats.Split(view.Samples),
		Source:    view.DataSummary,
	}
	if s, ok := stats.Summarize(view.Samples); ok {
		r.Summary = &s
	}
	return r
}

func writeStatsText(w io.Writer, r StatsReport) error {
	if r.Summary == nil {
		_, err := fmt.Fprintln(w, "No data to display")
		return err
	}
	s := r.Summary
	_, err := fmt.Fprintf(w,
		"Count:   %d\nMin:     %.1f %s\nMax:     %.1f %s\nAverage: %.1f %s\nMedian:  %.1f %s\nImputed: %d of %d (%.1f%%)\n",
		s.Count, s.Min, r.Unit, s.Max, r.Unit, s.Average, r.Unit, s.Median, r.Unit,
		r.Breakdown.Imputed, r.Breakdown.Total, r.Breakdown.ImputationPercentage)
	return err
}
