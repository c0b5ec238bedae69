package errors

import (
	"github.com/pkg/errors"
)

// Common error types for the CLI and its wiring
var (
	// Configuration errors
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrUnsupported   = errors.New("unsupported option")

	// Login errors
	ErrLoginCancelled = errors.New("login cancelled")
	ErrLoginFailed    = errors.New("login failed")
	ErrNoToken        = errors.New("no stored access token")
)

// Wrapf annotates err with a formatted message and a stack trace. A nil
// err stays nil.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
