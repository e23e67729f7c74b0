// Package xerr defines the three error kinds every component in this
// module surfaces — invalid argument, out of memory, backend failure —
// as sentinels wrapped with errors.Is-compatible detail, in the flat
// "var Err... = errors.New(...)" style used throughout this module.
package xerr

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument covers null out-pointers, impossible sizes,
// double-lock, unlock-without-lock, out-of-range stage, and similar
// caller mistakes.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrOutOfMemory covers allocation failures of staging memory or
// structures.
var ErrOutOfMemory = errors.New("out of memory")

// ErrBackendFailure covers any failure reported by the underlying
// graphics backend.
var ErrBackendFailure = errors.New("backend failure")

// InvalidArgument wraps ErrInvalidArgument with a "prefix: reason"
// message.
func InvalidArgument(prefix, reason string) error {
	return fmt.Errorf("%s: %w: %s", prefix, ErrInvalidArgument, reason)
}

// OutOfMemory wraps ErrOutOfMemory with a reason.
func OutOfMemory(prefix, reason string) error {
	return fmt.Errorf("%s: %w: %s", prefix, ErrOutOfMemory, reason)
}

// BackendFailure wraps ErrBackendFailure with the error the backend
// returned.
func BackendFailure(prefix string, cause error) error {
	return fmt.Errorf("%s: %w: %s", prefix, ErrBackendFailure, cause)
}
