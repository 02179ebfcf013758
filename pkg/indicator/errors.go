package indicator

import "errors"

var (
	// ErrInvalidWindow is returned when a window length is zero or negative
	ErrInvalidWindow = errors.New("invalid window length")
	// ErrUndefinedValue is returned when reading a position before its window filled
	ErrUndefinedValue = errors.New("average not defined at position")
)
