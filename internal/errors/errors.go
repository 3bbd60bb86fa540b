package errors

import (
	"errors"
	"fmt"
)

// Common error types for the blog platform client
var (
	// Authentication errors
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrSessionInvalidated = errors.New("session invalidated")

	// Response errors
	ErrMalformedResponse = errors.New("malformed response")

	// Store errors
	ErrStoreOperation = errors.New("session store operation failed")

	// Input errors
	ErrInvalidInput = errors.New("invalid input")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
