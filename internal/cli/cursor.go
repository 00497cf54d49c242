package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"codeberg.org/mutker/vitalchart/internal/cursor"
	"codeberg.org/mutker/vitalchart/internal/errors"
	"codeberg.org/mutker/vitalchart/internal/render"
	"codeberg.org/mutker/vitalchart/internal/series"
)

type cursorOptions struct {
	input  inputOptions
	at     string
	x      float64
	report string
}

// NewCursorCommand creates the cursor command.
func NewCursorCommand(root *RootOptions) *cobra.Command {
	opts := &cursorOptions{}

	cmd := &cobra.Command{
		Use:   "cursor [payload.json]",
		Short: "Read the value at a time or a pixel column",
		Long: `Read the series value at a timestamp (--at) or at a horizontal pixel
position of the rendered chart (--x). Values between two samples are
interpolated; outside the data the nearest sample is reported.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCursor(cmd, root, opts, args)
		},
	}

	addInputFlags(cmd, &opts.input)
	cmd.Flags().StringVar(&opts.at, "at", "", "Timestamp to read (RFC 3339)")
	cmd.Flags().Float64Var(&opts.x, "x", -1, "Pixel column to read")
	cmd.Flags().StringVar(&opts.report, "report", ReportText, "Report format (text, json, yaml)")
	cmd.MarkFlagsMutuallyExclusive("at", "x")

	return cmd
}

func runCursor(cmd *cobra.Command, root *RootOptions, opts *cursorOptions, args []string) error {
	errFactory := errors.New()

	if err := validReport(opts.report); err != nil {
		return err
	}
	if opts.at == "" && opts.x < 0 {
		return errFactory.WithMessage(errors.ErrInvalidArgument, "one of --at or --x is required")
	}

	view, err := loadView(cmd, root, &opts.input, args)
	if err != nil {
		return err
	}

	var (
		reading cursor.Reading
		ok      bool
	)
	if opts.at != "" {
		t, err := series.ParseTimestamp(opts.at)
		if err != nil {
			return errFactory.Wrap(errors.ErrInvalidArgument, err)
		}
		reading, ok = cursor.ValueAt(view.Samples, t)
	} else {
		frame := render.Compose(view)
		reading, ok = cursor.ValueAtX(view.Samples, frame.Scales, opts.x)
	}
	if !ok {
		return errFactory.WithMessage(errors.ErrResourceNotFound, "no data to read")
	}

	return writeReport(cmd.OutOrStdout(), opts.report, reading, func(w io.Writer) error {
		kind := "measured"
		switch {
		case reading.Interpolated:
			kind = "interpolated"
		case reading.IsImputed:
			kind = "imputed"
		}
		_, err := fmt.Fprintf(w, "%s  %.2f  %s\n",
			reading.Timestamp.In(view.Location()).Format("2006-01-02 15:04:05 MST"), reading.Value, kind)
		return err
	})
}
