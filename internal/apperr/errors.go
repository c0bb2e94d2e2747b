// Package apperr defines the sentinel errors shared across the application.
package apperr

import "errors"

var (
	ErrIndexOutOfRange  = errors.New("index out of range")
	ErrNoData           = errors.New("no data")
	ErrUnknownCrop      = errors.New("unknown crop type")
	ErrMissingColumn    = errors.New("missing column")
	ErrBadValue         = errors.New("invalid value")
	ErrInvalidDimension = errors.New("invalid dimension")
)
