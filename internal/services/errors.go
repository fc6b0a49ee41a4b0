package services

import "errors"

// Common service errors
var (
	ErrUnknownCurrency   = errors.New("unsupported currency")
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrSweepTooLarge     = errors.New("sweep exceeds the maximum number of runs")
	ErrEmptySweep        = errors.New("sweep needs at least one value")
	ErrLimitExceeded     = errors.New("parameter exceeds service limit")
)
