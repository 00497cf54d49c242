package cli

import (
	"io"

	"github.com/spf13/cobra"

	"codeberg.org/mutker/vitalchart/internal/canvas"
	"codeberg.org/mutker/vitalchart/internal/logger"
	"codeberg.org/mutker/vitalchart/internal/render"
	"codeberg.org/mutker/vitalchart/internal/surface"
)

type renderOptions struct {
	input    inputOptions
	output   string
	pointerX float64
	pointerY float64
	summary  bool
}

// NewRenderCommand creates the render command.
func NewRenderCommand(root *RootOptions) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render [payload.json]",
		Short: "Render a chart as PNG, SVG or a JSON command list",
		Long: `Render one metric chart. The payload is read from the given file, or
from stdin when the path is "-" or omitted. With --db the samples are
read from the sample database instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, root, opts, args)
		},
	}

	addInputFlags(cmd, &opts.input)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "-", "Output file, \"-\" for stdout")
	cmd.Flags().Float64Var(&opts.pointerX, "pointer-x", -1, "Pointer x position for the crosshair and tooltip")
	cmd.Flags().Float64Var(&opts.pointerY, "pointer-y", 0, "Pointer y position")
	cmd.Flags().BoolVar(&opts.summary, "summary", false, "Print the summary text to stderr")

	return cmd
}

func runRender(cmd *cobra.Command, root *RootOptions, opts *renderOptions, args []string) error {
	view, err := loadView(cmd, root, &opts.input, args)
	if err != nil {
		return err
	}
	if opts.pointerX >= 0 {
		view.Pointer = &canvas.Point{X: opts.pointerX, Y: opts.pointerY}
	}

	frame := render.Compose(view)
	logNotes(frame)

	format := root.Config.Format
	encode := func(w io.Writer) error {
		return surface.Encode(w, format, view.Width, view.Height, frame.Commands)
	}
	if opts.output == "-" {
		err = encode(cmd.OutOrStdout())
	} else {
		err = writeFile(opts.output, encode)
	}
	if err != nil {
		return err
	}

	logger.Info().
		Str("metric", frame.Profile.Key).
		Str("format", format).
		Str("output", opts.output).
		Int("samples", len(view.Samples)).
		Int("gaps", len(frame.Gaps)).
		Msg("Chart rendered")

	if opts.summary {
		printSummary(cmd.ErrOrStderr(), frame)
	}
	return nil
}

func printSummary(w io.Writer, f render.Frame) {
	io.WriteString(w, f.Summary)
	if f.Tooltip.Visible {
		io.WriteString(w, "Cursor: "+f.Tooltip.ValueText+" at "+f.Tooltip.TimestampText+"\n")
	}
}
