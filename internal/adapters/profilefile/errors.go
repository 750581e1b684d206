package profilefile

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidProfile = errors.New("invalid profile")
	ErrReadProfile    = errors.New("read profile failed")
)

// ValidationError reports a profile field that is missing, malformed or
// out of range. It unwraps to ErrInvalidProfile.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidProfile, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidProfile }

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
