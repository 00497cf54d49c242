package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"codeberg.org/mutker/vitalchart/internal/profile"
)

// ProfileMatch is a resolved metric key.
type ProfileMatch struct {
	Query    string           `json:"query" yaml:"query"`
	Strategy profile.Strategy `json:"strategy" yaml:"strategy"`
	Profile  profile.Profile  `json:"profile" yaml:"profile"`
}

// NewProfilesCommand creates the profiles command.
func NewProfilesCommand(_ *RootOptions) *cobra.Command {
	var report string

	cmd := &cobra.Command{
		Use:   "profiles [metric...]",
		Short: "List metric profiles or show how metric names resolve",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validReport(report); err != nil {
				return err
			}

			keys := args
			if len(keys) == 0 {
				keys = profile.Keys()
			}
			matches := make([]ProfileMatch, 0, len(keys))
			for _, key := range keys {
				res := profile.Lookup(key)
				matches = append(matches, ProfileMatch{Query: key, Strategy: res.Strategy, Profile: res.Profile})
			}

			return writeReport(cmd.OutOrStdout(), report, matches, func(w io.Writer) error {
				return writeProfilesText(w, matches)
			})
		},
	}

	cmd.Flags().StringVar(&report, "report", ReportText, "Report format (text, json, yaml)")

	return cmd
}

func writeProfilesText(w io.Writer, matches []ProfileMatch) error {
	for _, m := range matches {
		p := m.Profile
		zones := make([]string, 0, len(p.Zones))
		for _, z := range p.Zones {
			zones = append(zones, fmt.Sprintf("%s %g-%g", z.Label, z.Min, z.Max))
		}
		if _, err := fmt.Fprintf(w, "%-30s -> %s (%s, %s) [%g, %g] %s\n",
			m.Query, p.Key, m.Strategy, p.Unit, p.AxisMin, p.AxisMax, strings.Join(zones, ", ")); err != nil {
			return err
		}
	}
	return nil
}
