// Package errors provides error handling for FSIM.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints and details
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := p.SetSpeed(i, v); err != nil {
//	    return errors.Wrap(err, "failed to adjust speed")
//	}
//
//	// Add hints for users
//	return errors.WithHint(err, "valid box indexes are 0..2")
//
//	// Check errors
//	if errors.Is(err, errors.ErrBoxIndexOutOfRange) {
//	    // report and keep the loop alive
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Sentinel errors for the simulator.
// Use these with errors.Is() and wrap them with errors.Wrap() to add context.
var (
	// ErrBoxIndexOutOfRange indicates a box position outside the pipeline
	ErrBoxIndexOutOfRange = New("box index out of range")

	// ErrInvalidConfig indicates a configuration value that cannot drive a simulation
	ErrInvalidConfig = New("invalid configuration")

	// ErrInvalidInput indicates console input that could not be interpreted
	ErrInvalidInput = New("invalid input")

	// ErrNotFound indicates the requested resource does not exist
	ErrNotFound = New("not found")
)

// IsBoxIndexError checks if an error is or wraps ErrBoxIndexOutOfRange
func IsBoxIndexError(err error) bool {
	return err != nil && Is(err, ErrBoxIndexOutOfRange)
}

// IsInvalidConfigError checks if an error is or wraps ErrInvalidConfig
func IsInvalidConfigError(err error) bool {
	return err != nil && Is(err, ErrInvalidConfig)
}

// NewBoxIndexError reports index as outside a pipeline of count boxes.
// The hint names the valid range.
func NewBoxIndexError(index, count int) error {
	err := Wrapf(ErrBoxIndexOutOfRange, "box %d", index)
	if count == 0 {
		return WithHint(err, "the pipeline has no boxes")
	}
	return WithHintf(err, "valid box indexes are 0..%d", count-1)
}

// NewInvalidConfigError creates an invalid-config error with a formatted message
func NewInvalidConfigError(format string, args ...interface{}) error {
	return Wrap(ErrInvalidConfig, Newf(format, args...).Error())
}

// NewInvalidInputError creates an invalid-input error with a formatted message
func NewInvalidInputError(format string, args ...interface{}) error {
	return Wrap(ErrInvalidInput, Newf(format, args...).Error())
}
