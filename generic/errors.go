/*
errors.go - Centralized error types for the threshold engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Domain packages should wrap these errors with additional context.

ERROR CATEGORIES:
  1. Input errors - A value outside its declared domain
  2. Rule errors - Missing or incomplete rule configuration
  3. Store errors - Database-level failures (wrapped by store packages)

USAGE:
  Callers classify with errors.Is / errors.As:

    if errors.Is(err, generic.ErrInvalidInput) {
        // 400
    }
    var iie *generic.InvalidInputError
    if errors.As(err, &iie) {
        log.Printf("bad field %s", iie.Field)
    }

SEE ALSO:
  - housing/input.go: Raises InvalidInputError
  - factory/rules.go: Raises ErrIncompleteRuleSet
  - api/handlers.go: Maps errors to HTTP status codes
*/
package generic

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidInput is returned when an input value is outside its domain.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownJurisdiction is returned for a jurisdiction code that is not
	// registered. It is always wrapped in an InvalidInputError.
	ErrUnknownJurisdiction = errors.New("unknown jurisdiction")

	// ErrRuleSetNotFound is returned when a referenced rule set doesn't exist.
	ErrRuleSetNotFound = errors.New("rule set not found")

	// ErrIncompleteRuleSet is returned when a rule set lacks a jurisdiction
	// or carries a malformed limit.
	ErrIncompleteRuleSet = errors.New("incomplete rule set")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidInputError provides details about a rejected input field.
type InvalidInputError struct {
	Field  string
	Value  any
	Reason string
	Err    error // optional cause, e.g. ErrUnknownJurisdiction
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s=%v: %s", e.Field, e.Value, e.Reason)
}

func (e *InvalidInputError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInvalidInput, e.Err}
	}
	return []error{ErrInvalidInput}
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrIncompleteRuleSet)
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRuleSetNotFound)
}
