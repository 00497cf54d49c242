package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"codeberg.org/mutker/vitalchart/internal/errors"
	"codeberg.org/mutker/vitalchart/internal/logger"
	"codeberg.org/mutker/vitalchart/internal/render"
	"codeberg.org/mutker/vitalchart/internal/series"
	"codeberg.org/mutker/vitalchart/internal/store"
)

// inputOptions selects where samples come from: a payload file (or stdin)
// by default, the sample database with --db.
type inputOptions struct {
	FromDB         bool
	UserID         string
	Metric         string
	Start          string
	End            string
	IncludeImputed bool
}

func addInputFlags(cmd *cobra.Command, in *inputOptions) {
	cmd.Flags().BoolVar(&in.FromDB, "db", false, "Read samples from the sample database instead of a payload")
	cmd.Flags().StringVar(&in.UserID, "user", "", "User ID to read from the database")
	cmd.Flags().StringVarP(&in.Metric, "metric", "m", "", "Metric to chart; overrides the payload metric")
	cmd.Flags().StringVar(&in.Start, "start", "", "Start of the database range (RFC 3339)")
	cmd.Flags().StringVar(&in.End, "end", "", "End of the database range (RFC 3339)")
	cmd.Flags().BoolVar(&in.IncludeImputed, "include-imputed", true, "Include imputed samples from the database")
}

// loadView builds the view for a command from the configured defaults and
// the selected input. args holds at most one payload path; "-" or no path
// reads stdin.
func loadView(cmd *cobra.Command, root *RootOptions, in *inputOptions, args []string) (render.ViewState, error) {
	view := root.Config.View()

	if in.FromDB {
		samples, err := loadStored(cmdContext(cmd), root, in)
		if err != nil {
			return view, err
		}
		view.Samples = samples
		view.Metric = in.Metric
		for _, s := range samples {
			if s.IsImputed {
				view.ImputationApplied = true
				break
			}
		}
		return view, nil
	}

	path := "-"
	if len(args) > 0 {
		path = args[0]
	}
	p, err := readPayload(cmd.InOrStdin(), path)
	if err != nil {
		return view, err
	}
	samples, err := p.Samples()
	if err != nil {
		return view, err
	}

	view.Samples = samples
	view.Metric = p.MetricKey()
	if in.Metric != "" {
		view.Metric = in.Metric
	}
	if p.Timezone != "" && !cmd.Flags().Changed("timezone") {
		view.Timezone = p.Timezone
	}
	view.ImputationApplied = p.ImputationApplied
	view.DataSummary = p.DataSummary
	if p.GapsDetected != nil {
		view.ReportedGaps = p.ReportedClasses()
	}

	logger.Debug().
		Str("path", path).
		Str("metric", view.Metric).
		Int("samples", len(samples)).
		Msg("Payload loaded")

	return view, nil
}

func readPayload(stdin io.Reader, path string) (*series.Payload, error) {
	if path == "-" {
		return series.Decode(stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New().Wrap(errors.ErrResourceNotFound, err)
	}
	defer f.Close()

	return series.Decode(f)
}

func loadStored(ctx context.Context, root *RootOptions, in *inputOptions) ([]series.Sample, error) {
	errFactory := errors.New()

	q := store.Query{
		UserID:         in.UserID,
		Metric:         in.Metric,
		IncludeImputed: in.IncludeImputed,
	}
	var err error
	if q.Start, err = parseTime(in.Start); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidArgument, err)
	}
	if q.End, err = parseTime(in.End); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidArgument, err)
	}

	repo, err := openStore(root)
	if err != nil {
		return nil, err
	}
	defer repo.Close()

	return store.ReadAll(ctx, repo, q)
}

func openStore(root *RootOptions) (store.Repository, error) {
	cfg := store.DefaultConfig()
	cfg.DBPath = root.Config.Database
	return store.NewRepository(cfg, logger.New())
}

func parseTime(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	return series.ParseTimestamp(v)
}

// logNotes reports the fallbacks a frame took.
func logNotes(f render.Frame) {
	for _, note := range f.Notes {
		logger.Warn().Str("metric", f.Profile.Key).Msg(note)
	}
}
