package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/nytron88/gdd-module-types/internal/domain"
)

// checkExpected rejects an update whose caller read an older version of the record
func checkExpected(resource, id string, stored time.Time, expected *time.Time) error {
	if expected == nil || expected.Equal(stored) {
		return nil
	}
	return &domain.ConflictError{
		Message:      fmt.Sprintf("%s %s has been modified since %s", resource, id, expected.UTC().Format(time.RFC3339Nano)),
		ResourceType: resource,
		ResourceID:   id,
	}
}

// asReference turns a NotFound on a foreign key lookup into a ReferentialError
func asReference(err error, field, entity, id string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return &domain.ReferentialError{Field: field, Entity: entity, ID: id}
	}
	return err
}
