package series

import "codeberg.org/mutker/vitalchart/internal/errors"

const (
	ErrDecodePayload  = errors.ErrDecodeInput
	ErrInvalidSample  = errors.ErrInvalidSample
	ErrUnorderedInput = errors.ErrUnorderedInput
)
