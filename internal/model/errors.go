package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound covers both missing records and records owned by a
	// different user, so existence never leaks across tenants.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials is returned uniformly for unknown email and
	// wrong password.
	ErrInvalidCredentials = errors.New("unable to login")
	// ErrEmailTaken is returned when registration or update hits the
	// unique email constraint.
	ErrEmailTaken = errors.New("email already taken")
	// ErrUnauthorized is returned for missing, malformed or revoked
	// bearer tokens.
	ErrUnauthorized = errors.New("please authenticate")

	// Upload admission errors, checked before any resize or persistence.
	ErrMissingFile         = errors.New("file is required")
	ErrFileTooLarge        = errors.New("file exceeds size limit")
	ErrUnsupportedFileType = errors.New("file must be jpg, jpeg or png")
)

// ValidationError reports field-level validation failures. Fields holds
// the offending field names in encounter order.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Fields, ", "))
}

// DisallowedFieldError is returned when an update request carries a field
// outside the resource's allow-list.
type DisallowedFieldError struct {
	Field string
}

func (e *DisallowedFieldError) Error() string {
	return fmt.Sprintf("field %q is not updatable", e.Field)
}
