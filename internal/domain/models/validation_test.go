package models

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/nytron88/gdd-module-types/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

// requireFields asserts err is a ValidationError naming exactly fields
func requireFields(t *testing.T, err error, fields ...string) {
	t.Helper()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr), "expected *domain.ValidationError, got %T", err)
	assert.ElementsMatch(t, fields, verr.FieldNames(), "error: %v", err)
}

func TestNewUser(t *testing.T) {
	u, err := NewUser(" auth0|abc ", " Ana@Example.ORG ", "Ana", 30, "PT", "pt", []Interest{InterestHealth, InterestEconomic})
	require.NoError(t, err)

	assert.Equal(t, "auth0|abc", u.ID)
	assert.Equal(t, "ana@example.org", u.Email)
	assert.Equal(t, []Interest{InterestHealth, InterestEconomic}, u.Interests)
	assert.Equal(t, u.CreatedAt, u.UpdatedAt)

	u, err = NewUser("auth0|abc", "ana@example.org", "Ana", 30, "PT", "pt", nil)
	require.NoError(t, err)
	assert.NotNil(t, u.Interests)
	assert.Empty(t, u.Interests)
}

func TestNewUserValidation(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		email     string
		age       int
		interests []Interest
		fields    []string
	}{
		{"missing id", "", "a@example.org", 30, nil, []string{"id"}},
		{"bad email", "u1", "not-an-email", 30, nil, []string{"email"}},
		{"age zero", "u1", "a@example.org", 0, nil, []string{"age"}},
		{"age too high", "u1", "a@example.org", 151, nil, []string{"age"}},
		{"unknown interest", "u1", "a@example.org", 30, []Interest{InterestHealth, "sports"}, []string{"interests.1"}},
		{"duplicate interest", "u1", "a@example.org", 30, []Interest{InterestSocial, InterestSocial}, []string{"interests"}},
		{"several fields", "", "nope", 200, nil, []string{"id", "email", "age"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewUser(tt.id, tt.email, "Ana", tt.age, "PT", "pt", tt.interests)
			requireFields(t, err, tt.fields...)
		})
	}
}

func TestNewProjectCreatesLinkedQuestionnaire(t *testing.T) {
	p, q, err := NewProject("auth0|abc", "  Water access  ", strPtr("   "), []string{"water", " ", "rural "})
	require.NoError(t, err)

	assert.Equal(t, "Water access", p.Title)
	assert.Nil(t, p.Description)
	assert.Equal(t, []string{"water", "rural"}, p.Tags)
	assert.Equal(t, ProjectStatusDraft, p.Status)

	assert.Equal(t, p.QuestionnaireID, q.ID)
	assert.Equal(t, p.ID, q.ProjectID)
	assert.Equal(t, QuestionnaireStatusDraft, q.Status)
	assert.NotEqual(t, p.ID, q.ID)
}

func TestProjectValidation(t *testing.T) {
	p, _, err := NewProject("auth0|abc", "Water access", nil, nil)
	require.NoError(t, err)

	t.Run("unlisted status", func(t *testing.T) {
		bad := *p
		bad.Status = "cancelled"
		requireFields(t, bad.Validate(), "status")
	})

	t.Run("blank title", func(t *testing.T) {
		_, _, err := NewProject("auth0|abc", "   ", nil, nil)
		requireFields(t, err, "title")
	})

	t.Run("duplicate tags", func(t *testing.T) {
		_, _, err := NewProject("auth0|abc", "Water", nil, []string{"a", "a"})
		requireFields(t, err, "tags")
	})

	t.Run("updated before created", func(t *testing.T) {
		bad := *p
		bad.UpdatedAt = p.CreatedAt.Add(-1)
		requireFields(t, bad.Validate(), "updated_at")
	})
}

func TestNewMessage(t *testing.T) {
	chatID := NewID()
	docID := NewID()

	tests := []struct {
		name        string
		role        Role
		content     string
		attachments []Attachment
		fields      []string
	}{
		{"plain", RoleUser, "hello", nil, nil},
		{"assistant", RoleAssistant, "hi", nil, nil},
		{"system", RoleSystem, "chat renamed", nil, nil},
		{"legacy admin role", Role("admin"), "hi", nil, []string{"role"}},
		{"legacy bot role", Role("bot"), "hi", nil, []string{"role"}},
		{"empty role", "", "hi", nil, []string{"role"}},
		{"empty content without attachments", RoleUser, "  ", nil, []string{"content"}},
		{"empty content with attachment", RoleUser, "", []Attachment{{DocumentID: &docID}}, nil},
		{"storage key only", RoleUser, "see photo", []Attachment{{S3Key: strPtr("uploads/a.jpg"), MIME: strPtr("image/jpeg")}}, nil},
		{"attachment without target", RoleUser, "x", []Attachment{{MIME: strPtr("application/pdf")}}, []string{"attachments.0.document_id"}},
		{"attachment with malformed id", RoleUser, "x", []Attachment{{DocumentID: &docID}, {DocumentID: strPtr("doc-1")}}, []string{"attachments.1.document_id"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := NewMessage(chatID, tt.role, tt.content, tt.attachments)
			if len(tt.fields) == 0 {
				require.NoError(t, err)
				assert.Equal(t, tt.role, msg.Role)
				return
			}
			requireFields(t, err, tt.fields...)
		})
	}
}

func TestMessageAttachmentsNormalized(t *testing.T) {
	docID := NewID()
	msg, err := NewMessage(NewID(), RoleUser, "files", []Attachment{
		{DocumentID: &docID, S3Key: strPtr("  "), MIME: strPtr("application/pdf")},
		{S3Key: strPtr("uploads/raw.bin")},
	})
	require.NoError(t, err)

	require.Len(t, msg.Attachments, 2)
	assert.Nil(t, msg.Attachments[0].S3Key)
	assert.Equal(t, []string{docID}, msg.DocumentIDs())

	msg, err = NewMessage(NewID(), RoleUser, "no files", []Attachment{})
	require.NoError(t, err)
	assert.Nil(t, msg.Attachments)
}

func TestNewDocumentRelevanceBounds(t *testing.T) {
	for _, score := range []float64{0, 0.5, 1} {
		_, err := NewDocument("auth0|abc", NewID(), NewID(), "brief.pdf", score, "uploads/brief.pdf")
		assert.NoError(t, err, "score %v", score)
	}
	for _, score := range []float64{-0.1, 1.01, 42, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := NewDocument("auth0|abc", NewID(), NewID(), "brief.pdf", score, "uploads/brief.pdf")
		requireFields(t, err, "relevance_score")
	}

	_, err := NewDocument("auth0|abc", NewID(), NewID(), "brief.pdf", math.NaN(), "uploads/brief.pdf")
	assert.Contains(t, err.Error(), "must be a finite number")
}

func TestNewGeneratedDocumentValidation(t *testing.T) {
	_, err := NewGeneratedDocument(NewID(), "exports/p.pdf", strPtr("https://cdn.example.org/p.pdf"), 3)
	require.NoError(t, err)

	_, err = NewGeneratedDocument(NewID(), "exports/p.pdf", strPtr("not a url"), 3)
	requireFields(t, err, "s3_url")

	_, err = NewGeneratedDocument(NewID(), "exports/p.pdf", nil, 0)
	requireFields(t, err, "page_count")

	_, err = NewGeneratedDocument("project-1", "", nil, 1)
	requireFields(t, err, "project_id", "s3_key")
}

func TestQuestionnaireApply(t *testing.T) {
	_, q, err := NewProject("auth0|abc", "Water", nil, nil)
	require.NoError(t, err)

	assert.False(t, q.Apply(&QuestionnaireAnswers{IssueStatement: strPtr("  "), Partners: []string{" "}}))
	assert.Nil(t, q.IssueStatement)

	budget := 1500.5
	assert.True(t, q.Apply(&QuestionnaireAnswers{
		IssueStatement: strPtr(" No clean water "),
		Partners:       []string{"NGO A", "", "NGO B"},
		BudgetAmount:   &budget,
	}))
	assert.Equal(t, "No clean water", *q.IssueStatement)
	assert.Equal(t, []string{"NGO A", "NGO B"}, q.Partners)
	assert.Equal(t, 1500.5, *q.BudgetAmount)
	require.NoError(t, q.Validate())

	negative := -1.0
	q.Apply(&QuestionnaireAnswers{BudgetAmount: &negative})
	requireFields(t, q.Validate(), "budget_amount")

	// a budget that passes validation must also encode
	for _, bad := range []float64{math.Inf(1), math.NaN()} {
		q.Apply(&QuestionnaireAnswers{BudgetAmount: &bad})
		requireFields(t, q.Validate(), "budget_amount")
	}
	budget = 0
	q.Apply(&QuestionnaireAnswers{BudgetAmount: &budget})
	require.NoError(t, q.Validate())
	_, err = json.Marshal(q)
	require.NoError(t, err)

	long := strings.Repeat("x", 20001)
	q.BudgetAmount = nil
	q.Apply(&QuestionnaireAnswers{Timeline: &long})
	requireFields(t, q.Validate(), "timeline")
}
