package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nytron88/gdd-module-types/internal/domain"
	"github.com/nytron88/gdd-module-types/internal/domain/repositories"

	"github.com/google/uuid"
)

// pgInvalidText is raised when a malformed UUID is compared against a UUID column
const pgInvalidText = "22P02"

// scanner is satisfied by pgx.Row and pgx.Rows
type scanner interface {
	Scan(dest ...any) error
}

// isUUID reports whether id can be compared against a UUID column. Malformed
// ids are rejected by the driver while encoding, so lookups short-circuit them.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// notFoundOr converts "no rows" (and malformed ids, which can never match) into
// a NotFoundError; anything else is wrapped with op.
func notFoundOr(err error, op, resource, id string) error {
	if IsPgNoRowsError(err) || pgCode(err) == pgInvalidText {
		return &domain.NotFoundError{Entity: resource, ID: id}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// resolveStaleUpdate explains why an optimistic UPDATE matched no rows:
// either the record is gone, or someone else modified it first.
func resolveStaleUpdate(ctx context.Context, executor repositories.DBTX, table, resource, id string) error {
	if resource != "user" && !isUUID(id) {
		return &domain.NotFoundError{Entity: resource, ID: id}
	}
	var exists bool
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, table)
	if err := executor.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return notFoundOr(err, "check "+resource, resource, id)
	}
	if !exists {
		return &domain.NotFoundError{Entity: resource, ID: id}
	}
	return &domain.ConflictError{
		Message:      fmt.Sprintf("%s %s was modified concurrently; re-fetch and retry", resource, id),
		ResourceType: resource,
		ResourceID:   id,
	}
}

// execDelete runs a DELETE by id and reports NotFound when nothing was removed
func execDelete(ctx context.Context, executor repositories.DBTX, table, resource, id string) error {
	if !isUUID(id) {
		return &domain.NotFoundError{Entity: resource, ID: id}
	}
	result, err := executor.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table), id)
	if err != nil {
		return notFoundOr(err, "delete "+resource, resource, id)
	}
	if result.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: resource, ID: id}
	}
	return nil
}

// jsonParam encodes v for a JSONB column; nil/empty values become SQL NULL
func jsonParam[T any](v []T) (*string, error) {
	if len(v) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	s := string(data)
	return &s, nil
}

// textArray converts a named-string slice for a TEXT[] column
func textArray[T ~string](v []T) []string {
	if v == nil {
		return nil
	}
	out := make([]string, len(v))
	for i, s := range v {
		out[i] = string(s)
	}
	return out
}
