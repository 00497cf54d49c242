package config

import "codeberg.org/mutker/vitalchart/internal/errors"

const (
	ErrInvalidConfig     = errors.ErrInvalidConfig
	ErrReadConfig        = errors.ErrReadConfig
	ErrBindFlags         = errors.ErrBindFlags
	ErrInvalidLogLevel   = errors.ErrInvalidLogLevel
	ErrInvalidDimensions = errors.ErrInvalidDimensions
	ErrInvalidFormat     = errors.ErrInvalidFormat
)
