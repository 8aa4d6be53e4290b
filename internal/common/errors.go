// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Input errors.
	ErrMissingFile     = errors.New("file not found")
	ErrMalformedRecord = errors.New("malformed record")

	// Matching errors.
	ErrAmbiguousIdentity = errors.New("ambiguous identity")

	// Ledger errors.
	ErrMissingColumn   = errors.New("column not found")
	ErrMissingSentinel = errors.New("sentinel row not found")
	ErrUnknownMonth    = errors.New("unrecognized month label")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsFatal reports whether an error indicates a structural assumption
// violation that must stop the run. Everything else is handled at the
// operation boundary: one record, one upsert.
func IsFatal(err error) bool {
	return errors.Is(err, ErrUnknownMonth)
}
