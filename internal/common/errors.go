// Package common defines shared constants and sentinel errors used across
// journalkeeper layers. Callers should use errors.Is / errors.As to match
// these values.
package common

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Auth errors.
	ErrInvalidToken      = errors.New("invalid token")
	ErrTokenExpired      = errors.New("token expired")
	ErrCorruptCredential = errors.New("corrupt credential")

	// Journal consistency errors.
	ErrEventTypeValidation = errors.New("referenced event type is missing or does not permit the entry tags")
	ErrEventTypeInUse      = errors.New("event type is still referenced by journal entries")
)

// ValidationError reports semantically invalid input. Fields lists the
// offending field names for caller display.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on fields: %s", strings.Join(e.Fields, ", "))
}

// NewValidationError builds a ValidationError for the given field names.
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// TagsStillUsedError rejects an event-type retag that would drop tags still
// carried by journal entries. Tags holds the offending tag list.
type TagsStillUsedError struct {
	Tags []string
}

func (e *TagsStillUsedError) Error() string {
	return fmt.Sprintf("removed tags still used in journal entries: %s", strings.Join(e.Tags, ", "))
}
