// Package errors defines the structured errors returned by the simtemp SDK.
package errors

import "time"

type (
	// Error represents a structured device error.
	Error struct {
		Message string
		Kind    Kind

		NestedError error

		PropertyName  string
		PropertyValue any

		TimeoutName  string
		TimeoutValue time.Duration
	}

	// Kind defines the type of error being returned.
	Kind int
)

// The following are the defined error kinds.
const (
	// UnknownError indicates an error that could not be classified.
	UnknownError Kind = iota

	// ConfigurationInvalid indicates a rejected configuration write; the
	// prior value is retained.
	ConfigurationInvalid

	// ArgumentInvalid indicates a malformed argument to a device operation,
	// such as an undersized read buffer.
	ArgumentInvalid

	// WouldBlock indicates a non-blocking read with no data available. It is
	// a control-flow status rather than a fault; callers retry or poll.
	WouldBlock

	// StateInvalid indicates an operation against a device in the wrong
	// lifecycle state, such as reading after Stop.
	StateInvalid

	// Timeout indicates that an operation exceeded its deadline.
	Timeout

	// Cancellation indicates that an operation was cancelled.
	Cancellation

	// InternalLogicError indicates an unexpected fault contained within a
	// sampling cycle. It is only observable through device statistics.
	InternalLogicError
)

// Error returns the error as a string.
func (e *Error) Error() string {
	return e.Message
}

// IsWouldBlock reports whether the error is the would-block status.
func IsWouldBlock(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == WouldBlock
}
