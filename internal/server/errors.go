package server

import "codeberg.org/mutker/vitalchart/internal/errors"

const (
	ErrInvalidRequest = errors.ErrInvalidArgument
	ErrDecodeInput    = errors.ErrDecodeInput
	ErrRenderFailed   = errors.ErrRenderFailed
	ErrUnavailable    = errors.ErrUnavailable
	ErrServeFailed    = errors.ErrorCode("server_serve_failed")
)
