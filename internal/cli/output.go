package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"codeberg.org/mutker/vitalchart/internal/errors"
)

// Report formats of the inspection commands.
const (
	ReportText = "text"
	ReportJSON = "json"
	ReportYAML = "yaml"
)

func validReport(format string) error {
	switch format {
	case ReportText, ReportJSON, ReportYAML:
		return nil
	default:
		return errors.New().WithMessage(errors.ErrInvalidFormat,
			fmt.Sprintf("invalid report format %q: must be one of text, json, yaml", format))
	}
}

// writeReport writes v as JSON or YAML, or calls text for the text format.
func writeReport(w io.Writer, format string, v any, text func(io.Writer) error) error {
	errFactory := errors.New()

	switch format {
	case ReportJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return errFactory.Wrap(errors.ErrEncodeOutput, err)
		}
	case ReportYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return errFactory.Wrap(errors.ErrEncodeOutput, err)
		}
		if err := enc.Close(); err != nil {
			return errFactory.Wrap(errors.ErrEncodeOutput, err)
		}
	default:
		return text(w)
	}
	return nil
}

// writeFile creates path and hands it to write. The file is removed when
// write or the final close fails, so a failed render leaves nothing behind.
func writeFile(path string, write func(io.Writer) error) error {
	errFactory := errors.New()

	f, err := os.Create(path)
	if err != nil {
		return errFactory.Wrap(errors.ErrEncodeOutput, err)
	}

	if err := write(f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return errFactory.Wrap(errors.ErrEncodeOutput, err)
	}
	return nil
}
