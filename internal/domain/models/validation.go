package models

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/nytron88/gdd-module-types/internal/domain"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// toDomainError converts ozzo-validation output into a *domain.ValidationError.
// Nested errors (slices of attachments, etc.) are flattened into dotted keys.
func toDomainError(err error) error {
	if err == nil {
		return nil
	}

	var errs validation.Errors
	if !errors.As(err, &errs) {
		// validation.InternalError or a rule that failed to run
		return fmt.Errorf("validate: %w", err)
	}

	fields := make(map[string]string)
	flattenErrors("", errs, fields)
	return &domain.ValidationError{Fields: fields}
}

func flattenErrors(prefix string, errs validation.Errors, out map[string]string) {
	for key, err := range errs {
		if err == nil {
			continue
		}
		name := key
		if prefix != "" {
			name = prefix + "." + key
		}

		var nested validation.Errors
		if errors.As(err, &nested) {
			flattenErrors(name, nested, out)
			continue
		}
		out[name] = err.Error()
	}
}

// notBlank rejects strings that are empty once trimmed
var notBlank = validation.By(func(value interface{}) error {
	switch v := value.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return errors.New("cannot be blank")
		}
	case *string:
		if v != nil && strings.TrimSpace(*v) == "" {
			return errors.New("cannot be blank")
		}
	}
	return nil
})

// finite rejects NaN and infinities, which JSON cannot carry
var finite = validation.By(func(value interface{}) error {
	var f float64
	switch v := value.(type) {
	case float64:
		f = v
	case *float64:
		if v == nil {
			return nil
		}
		f = *v
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return errors.New("must be a finite number")
	}
	return nil
})

// uniqueStrings rejects slices with repeated entries
func uniqueStrings[T ~string](value interface{}) error {
	items, ok := value.([]T)
	if !ok {
		return nil
	}
	seen := make(map[T]struct{}, len(items))
	for _, item := range items {
		if _, dup := seen[item]; dup {
			return fmt.Errorf("duplicate value %q", string(item))
		}
		seen[item] = struct{}{}
	}
	return nil
}

// trimmed returns a copy of the string slice with blank entries dropped, or nil
// when nothing remains (absent is the only "no value" state).
func trimmed(items []string) []string {
	var out []string
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// optionalString returns nil for blank input so an empty value is never stored
func optionalString(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// notBefore rejects a timestamp earlier than floor
func notBefore(floor time.Time) validation.RuleFunc {
	return func(value interface{}) error {
		t, ok := value.(time.Time)
		if !ok || t.IsZero() || floor.IsZero() {
			return nil
		}
		if t.Before(floor) {
			return errors.New("must not be before created_at")
		}
		return nil
	}
}
