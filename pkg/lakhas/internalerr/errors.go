package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrLinguisticService = errors.New("linguistic service failure")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrUnsupportedFormat = errors.New("unsupported document format")
)
