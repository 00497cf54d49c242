package pid

import "codeberg.org/mutker/vitalchart/internal/errors"

const (
	ErrAlreadyRunning = errors.ErrAlreadyRunning
	ErrWriteFailed    = errors.ErrorCode("pid_write_failed")
	ErrRemoveFailed   = errors.ErrorCode("pid_remove_failed")
)
