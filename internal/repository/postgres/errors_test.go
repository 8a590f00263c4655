package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/nytron88/gdd-module-types/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstraintField(t *testing.T) {
	tables := NewTableNames("dev_")

	tests := []struct {
		constraint string
		want       string
	}{
		{"dev_users_email_key", "email"},
		{"dev_users_pkey", "pkey"},
		{"dev_projects_owner_id_fkey", "owner_id"},
		{"dev_projects_questionnaire_id_fkey", "questionnaire_id"},
		{"dev_projects_status_check", "status"},
		{"dev_questionnaire_responses_project_id_key", "project_id"},
		{"dev_questionnaire_responses_budget_amount_check", "budget_amount"},
		{"dev_documents_chat_id_fkey", "chat_id"},
		{"dev_documents_relevance_score_check", "relevance_score"},
		{"dev_generated_documents_page_count_check", "page_count"},
		{"dev_messages_role_check", "role"},
	}

	for _, tt := range tests {
		t.Run(tt.constraint, func(t *testing.T) {
			assert.Equal(t, tt.want, tables.constraintField(tt.constraint))
		})
	}
}

func TestTranslate(t *testing.T) {
	tables := NewTableNames("dev_")

	t.Run("unique email becomes conflict", func(t *testing.T) {
		err := tables.translate(&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "dev_users_email_key"}, "user", "auth0|1")

		var conflict *domain.ConflictError
		require.True(t, errors.As(err, &conflict))
		assert.Equal(t, "user with this email already exists", conflict.Message)
		assert.Equal(t, "user", conflict.ResourceType)
		assert.Equal(t, "auth0|1", conflict.ResourceID)
	})

	t.Run("duplicate primary key", func(t *testing.T) {
		err := tables.translate(&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "dev_users_pkey"}, "user", "auth0|1")
		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.EqualError(t, err, "user auth0|1 already exists")
	})

	t.Run("composite foreign key names its first column", func(t *testing.T) {
		err := tables.translate(&pgconn.PgError{
			Code:           pgForeignKeyViolation,
			ConstraintName: "dev_documents_chat_id_fkey",
			Detail:         `Key (chat_id, project_id)=(3f0c2a52-6a57-4b7e-9a55-0d1c8f6a1b2c, 9b1d) is not present in table "dev_chats".`,
		}, "document", "d1")

		var ref *domain.ReferentialError
		require.True(t, errors.As(err, &ref))
		assert.Equal(t, "chat_id", ref.Field)
		assert.Equal(t, "chat", ref.Entity)
		assert.Equal(t, "3f0c2a52-6a57-4b7e-9a55-0d1c8f6a1b2c", ref.ID)
	})

	t.Run("foreign key without detail", func(t *testing.T) {
		err := tables.translate(&pgconn.PgError{Code: pgForeignKeyViolation, ConstraintName: "dev_projects_owner_id_fkey"}, "project", "p1")

		var ref *domain.ReferentialError
		require.True(t, errors.As(err, &ref))
		assert.Equal(t, "owner_id", ref.Field)
		assert.Equal(t, "user", ref.Entity)
	})

	t.Run("check violation becomes field error", func(t *testing.T) {
		err := tables.translate(&pgconn.PgError{Code: pgCheckViolation, ConstraintName: "dev_projects_status_check"}, "project", "p1")

		var verr *domain.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.True(t, verr.HasField("status"))
	})

	t.Run("not null violation names the column", func(t *testing.T) {
		err := tables.translate(&pgconn.PgError{Code: pgNotNullViolation, ColumnName: "title"}, "project", "p1")

		var verr *domain.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.True(t, verr.HasField("title"))
	})

	t.Run("wrapped violations are translated", func(t *testing.T) {
		err := tables.translate(fmt.Errorf("insert: %w", &pgconn.PgError{
			Code:           pgUniqueViolation,
			ConstraintName: "dev_users_email_key",
		}), "user", "u1")
		var conflict *domain.ConflictError
		require.True(t, errors.As(err, &conflict))
		assert.Equal(t, "user with this email already exists", conflict.Message)
	})

	t.Run("other errors pass through", func(t *testing.T) {
		plain := errors.New("connection reset")
		assert.Same(t, plain, tables.translate(plain, "project", "p1"))

		serialization := &pgconn.PgError{Code: "40001"}
		assert.Same(t, serialization, tables.translate(serialization, "project", "p1"))
	})
}

func TestErrorPredicates(t *testing.T) {
	wrapped := fmt.Errorf("create: %w", &pgconn.PgError{Code: pgUniqueViolation})
	assert.True(t, IsPgDuplicateError(wrapped))
	assert.False(t, IsPgForeignKeyError(wrapped))

	assert.True(t, IsPgForeignKeyError(&pgconn.PgError{Code: pgForeignKeyViolation}))
	assert.True(t, IsPgCheckError(&pgconn.PgError{Code: pgCheckViolation}))
	assert.True(t, IsPgNoRowsError(fmt.Errorf("scan: %w", pgx.ErrNoRows)))
	assert.False(t, IsPgNoRowsError(errors.New("boom")))
}

func TestNotFoundOr(t *testing.T) {
	err := notFoundOr(pgx.ErrNoRows, "get chat", "chat", "c1")
	var nf *domain.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "chat", nf.Entity)
	assert.Equal(t, "c1", nf.ID)

	assert.ErrorIs(t, notFoundOr(&pgconn.PgError{Code: pgInvalidText}, "get chat", "chat", "x"), domain.ErrNotFound)

	other := errors.New("timeout")
	err = notFoundOr(other, "get chat", "chat", "c1")
	assert.ErrorIs(t, err, other)
	assert.EqualError(t, err, "get chat: timeout")
}
