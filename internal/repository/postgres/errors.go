package postgres

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/nytron88/gdd-module-types/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres SQLSTATE codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgNotNullViolation    = "23502"
)

// IsPgDuplicateError checks if error is a unique constraint violation
func IsPgDuplicateError(err error) bool {
	return pgCode(err) == pgUniqueViolation
}

// IsPgNoRowsError checks if error is a "no rows" error
func IsPgNoRowsError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsPgForeignKeyError checks if error is a foreign key violation
func IsPgForeignKeyError(err error) bool {
	return pgCode(err) == pgForeignKeyViolation
}

// IsPgCheckError checks if error is a check constraint violation
func IsPgCheckError(err error) bool {
	return pgCode(err) == pgCheckViolation
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// fkDetail matches: Key (project_id)=(3f0c...) is not present in table "dev_projects".
var fkDetail = regexp.MustCompile(`Key \(([^)]+)\)=\(([^)]*)\)`)

// fkTargets maps FK column names to the entity they reference
var fkTargets = map[string]string{
	"owner_id":         "user",
	"user_id":          "user",
	"project_id":       "project",
	"chat_id":          "chat",
	"questionnaire_id": "questionnaire",
}

// translate maps constraint violations onto the domain error taxonomy.
// resource/id describe the record being written. Other errors pass through.
func (t *TableNames) translate(err error, resource, id string) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch {
	case IsPgDuplicateError(err):
		field := t.constraintField(pgErr.ConstraintName)
		msg := fmt.Sprintf("%s %s already exists", resource, id)
		if field != "" && field != "pkey" {
			msg = fmt.Sprintf("%s with this %s already exists", resource, field)
		}
		return &domain.ConflictError{
			Message:      msg,
			ResourceType: resource,
			ResourceID:   id,
		}

	case IsPgForeignKeyError(err):
		field := t.constraintField(pgErr.ConstraintName)
		refID := ""
		if m := fkDetail.FindStringSubmatch(pgErr.Detail); m != nil {
			// composite keys report "chat_id, project_id"; the first column names the field
			field = strings.TrimSpace(strings.Split(m[1], ",")[0])
			refID = strings.TrimSpace(strings.Split(m[2], ",")[0])
		}
		return &domain.ReferentialError{
			Field:  field,
			Entity: fkTargets[field],
			ID:     refID,
		}

	case IsPgCheckError(err):
		return domain.NewFieldError(t.constraintField(pgErr.ConstraintName), "violates constraint "+pgErr.ConstraintName)

	case pgErr.Code == pgNotNullViolation:
		return domain.NewFieldError(pgErr.ColumnName, "cannot be null")
	}

	return err
}

// constraintField extracts the column part of a constraint name generated by
// Postgres (<table>_<column>_fkey, _key, _check) or declared in schema.sql.
func (t *TableNames) constraintField(name string) string {
	rest := strings.TrimPrefix(name, t.Prefix)
	for _, suffix := range []string{"_fkey", "_check", "_key"} {
		if strings.HasSuffix(rest, suffix) {
			rest = strings.TrimSuffix(rest, suffix)
			break
		}
	}
	for _, table := range t.All() {
		base := strings.TrimPrefix(table, t.Prefix) + "_"
		if strings.HasPrefix(rest, base) {
			return strings.TrimPrefix(rest, base)
		}
	}
	return rest
}
