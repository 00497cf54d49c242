package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"codeberg.org/mutker/vitalchart/internal/gaps"
	"codeberg.org/mutker/vitalchart/internal/render"
)

type gapsOptions struct {
	input  inputOptions
	report string
}

// GapsReport is the output of the gaps command.
type GapsReport struct {
	Metric   string       `json:"metric" yaml:"metric"`
	Gaps     []gapEntry   `json:"gaps" yaml:"gaps"`
	Counts   gaps.Counts  `json:"counts" yaml:"counts"`
	Reported *gaps.Counts `json:"reported,omitempty" yaml:"reported,omitempty"`
	Agrees   *bool        `json:"agrees,omitempty" yaml:"agrees,omitempty"`
}

type gapEntry struct {
	gaps.Gap `yaml:",inline"`
	Label    string `json:"label" yaml:"label"`
}

// NewGapsCommand creates the gaps command.
func NewGapsCommand(root *RootOptions) *cobra.Command {
	opts := &gapsOptions{}

	cmd := &cobra.Command{
		Use:   "gaps [payload.json]",
		Short: "List the gaps detected in a series",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validReport(opts.report); err != nil {
				return err
			}
			view, err := loadView(cmd, root, &opts.input, args)
			if err != nil {
				return err
			}
			return writeReport(cmd.OutOrStdout(), opts.report, buildGapsReport(view), func(w io.Writer) error {
				return writeGapsText(w, view, buildGapsReport(view))
			})
		},
	}

	addInputFlags(cmd, &opts.input)
	cmd.Flags().StringVar(&opts.report, "report", ReportText, "Report format (text, json, yaml)")

	return cmd
}

func buildGapsReport(view render.ViewState) GapsReport {
	detected := gaps.Detect(view.Samples)
	r := GapsReport{
		Metric: view.Metric,
		Gaps:   make([]gapEntry, 0, len(detected)),
		Counts: gaps.Count(detected),
	}
	for _, g := range detected {
		r.Gaps = append(r.Gaps, gapEntry{Gap: g, Label: render.GapLabel(g)})
	}
	if view.ReportedGaps != nil {
		reported := gaps.CountReported(view.ReportedGaps)
		agrees := gaps.Reconcile(r.Counts, reported)
		r.Reported = &reported
		r.Agrees = &agrees
	}
	return r
}

func writeGapsText(w io.Writer, view render.ViewState, r GapsReport) error {
	loc := view.Location()
	for _, g := range r.Gaps {
		if _, err := fmt.Fprintf(w, "%s  %s  %-6s  %5.1fh  %s\n",
			g.Start.In(loc).Format("2006-01-02 15:04"),
			g.End.In(loc).Format("2006-01-02 15:04"),
			g.Class, g.DurationHours, g.Label); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Total: %d (short %d, medium %d, long %d)\n",
		r.Counts.Total(), r.Counts.Short, r.Counts.Medium, r.Counts.Long)
	if err != nil {
		return err
	}
	if r.Reported != nil {
		status := "agrees"
		if !*r.Agrees {
			status = "disagrees"
		}
		_, err = fmt.Fprintf(w, "Reported by source: %d, %s\n", r.Reported.Total(), status)
	}
	return err
}
