package render

import "errors"

// Sentinel kinds for render errors.
var (
	ErrUnknownFormat = errors.New("unknown output format")
	ErrWrite         = errors.New("write report failed")
)
