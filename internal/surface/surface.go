// Package surface encodes a list of drawing commands into an output format.
package surface

import (
	"encoding/json"
	"io"

	"codeberg.org/mutker/vitalchart/internal/canvas"
	"codeberg.org/mutker/vitalchart/internal/errors"
	"codeberg.org/mutker/vitalchart/internal/surface/raster"
	"codeberg.org/mutker/vitalchart/internal/surface/vector"
)

// Output formats.
const (
	FormatPNG  = "png"
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// Background is the page color behind every chart.
var Background = canvas.MustHex("#ffffff")

// Formats lists the supported output formats.
func Formats() []string {
	return []string{FormatPNG, FormatSVG, FormatJSON}
}

// IsValidFormat reports whether format is supported.
func IsValidFormat(format string) bool {
	for _, f := range Formats() {
		if f == format {
			return true
		}
	}
	return false
}

// ContentType returns the MIME type of format.
func ContentType(format string) string {
	switch format {
	case FormatPNG:
		return "image/png"
	case FormatSVG:
		return "image/svg+xml"
	default:
		return "application/json"
	}
}

// Encode draws cmds on a width x height surface of the given format and
// writes the result to w. The json format writes the commands themselves.
func Encode(w io.Writer, format string, width, height int, cmds []canvas.Command) error {
	errFactory := errors.New()

	switch format {
	case FormatPNG:
		s := raster.New(width, height, Background)
		canvas.Replay(s, cmds)
		if err := s.EncodePNG(w); err != nil {
			return errFactory.Wrap(errors.ErrEncodeOutput, err)
		}
	case FormatSVG:
		s, err := vector.New(width, height, Background)
		if err != nil {
			return errFactory.Wrap(errors.ErrRenderFailed, err)
		}
		canvas.Replay(s, cmds)
		if err := s.Save(w); err != nil {
			return errFactory.Wrap(errors.ErrEncodeOutput, err)
		}
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(cmds); err != nil {
			return errFactory.Wrap(errors.ErrEncodeOutput, err)
		}
	default:
		return errFactory.WithData(errors.ErrInvalidFormat, format)
	}
	return nil
}
