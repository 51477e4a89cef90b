package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrIntegrityViolation  = errors.New("integrity violation")
	ErrDuplicate           = errors.New("duplicate record")
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrNotificationFailure = errors.New("notification failure")
	ErrInvalidCredentials  = errors.New("invalid credentials")
)

// NotFoundError names the entity that could not be found. It matches ErrNotFound.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Reason classifies why a field was rejected.
type Reason string

const (
	ReasonInvalidTitle     Reason = "InvalidTitle"
	ReasonPasswordMismatch Reason = "PasswordMismatch"
	ReasonMissingField     Reason = "MissingField"
	ReasonTooLong          Reason = "TooLong"
	ReasonInvalidEmail     Reason = "InvalidEmail"
	ReasonInvalidChoice    Reason = "InvalidChoice"
	ReasonInvalidFormat    Reason = "InvalidFormat"
	ReasonDuplicate        Reason = "Duplicate"
	ReasonInvalid          Reason = "Invalid"
)

type ValidationError struct {
	Field   string
	Reason  Reason
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// FieldErrors collects validation errors keyed by form field name.
// The empty key holds form-level errors.
type FieldErrors map[string][]ValidationError

func (fe FieldErrors) Add(field string, reason Reason, message string) {
	fe[field] = append(fe[field], ValidationError{Field: field, Reason: reason, Message: message})
}

// Has reports whether field failed with the given reason.
func (fe FieldErrors) Has(field string, reason Reason) bool {
	for _, e := range fe[field] {
		if e.Reason == reason {
			return true
		}
	}
	return false
}

// First returns the first message for field, used by templates for inline errors.
func (fe FieldErrors) First(field string) string {
	if errs := fe[field]; len(errs) > 0 {
		return errs[0].Message
	}
	return ""
}

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fe))
	for _, f := range fields {
		for _, e := range fe[f] {
			msgs = append(msgs, e.Error())
		}
	}
	return strings.Join(msgs, "; ")
}
