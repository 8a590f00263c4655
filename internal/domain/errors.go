package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrValidation  = errors.New("validation failed")
	ErrReferential = errors.New("referenced record does not exist")
)

// NotFoundError indicates a record was not found
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s: not found", e.Entity, e.ID)
}

// Is allows errors.Is() to match against ErrNotFound
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ValidationError indicates a record or request failed field-level validation.
// Fields maps each offending field (dotted for nested values) to its message.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

// NewFieldError builds a ValidationError for a single field
func NewFieldError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		if e.Message == "" {
			return ErrValidation.Error()
		}
		return e.Message
	}

	parts := make([]string, 0, len(e.Fields))
	for _, field := range e.FieldNames() {
		parts = append(parts, field+": "+e.Fields[field])
	}
	msg := strings.Join(parts, "; ")
	if e.Message != "" {
		msg = e.Message + ": " + msg
	}
	return msg
}

// Is allows errors.Is() to match against ErrValidation
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// FieldNames returns the offending field names in sorted order
func (e *ValidationError) FieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasField reports whether field is among the offending fields
func (e *ValidationError) HasField(field string) bool {
	_, ok := e.Fields[field]
	return ok
}

// ReferentialError indicates a foreign key pointing at a record that does not exist
type ReferentialError struct {
	Field  string // FK field on the record being written, e.g. "project_id"
	Entity string // target entity type, e.g. "project"
	ID     string // referenced identifier
}

func (e *ReferentialError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s: referenced %s does not exist", e.Field, e.Entity)
	}
	return fmt.Sprintf("%s: %s %s does not exist", e.Field, e.Entity, e.ID)
}

// Is allows errors.Is() to match against ErrReferential
func (e *ReferentialError) Is(target error) bool { return target == ErrReferential }

// ConflictError represents a resource conflict: a duplicate unique value, or a
// record modified by someone else since it was read. Retriable after re-fetching.
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (user, project, chat, ...)
	ResourceID   string // ID of the existing/conflicting resource
}

func (e *ConflictError) Error() string {
	return e.Message
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
