package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONRoundTrip(t *testing.T) {
	user, err := NewUser("auth0|abc", "ana@example.org", "Ana", 30, "PT", "pt", []Interest{InterestHealth})
	require.NoError(t, err)

	project, questionnaire, err := NewProject(user.ID, "Water", strPtr("Wells for two villages"), []string{"water"})
	require.NoError(t, err)
	budget := 2500.0
	questionnaire.Apply(&QuestionnaireAnswers{
		IssueStatement: strPtr("No clean water"),
		Stakeholders:   []string{"Council"},
		BudgetAmount:   &budget,
	})

	chat, err := NewChat(project.ID, user.ID, strPtr("Kickoff"))
	require.NoError(t, err)

	doc, err := NewDocument(user.ID, project.ID, chat.ID, "survey.pdf", 0.75, "uploads/survey.pdf")
	require.NoError(t, err)

	msg, err := NewMessage(chat.ID, RoleAssistant, "", []Attachment{
		{DocumentID: &doc.ID, MIME: strPtr("application/pdf")},
		{S3Key: strPtr("uploads/raw.jpg")},
	})
	require.NoError(t, err)

	gen, err := NewGeneratedDocument(project.ID, "exports/water.pdf", strPtr("https://cdn.example.org/water.pdf"), 8)
	require.NoError(t, err)

	tests := []struct {
		name  string
		value any
		fresh func() any
	}{
		{"user", user, func() any { return &User{} }},
		{"project", project, func() any { return &Project{} }},
		{"questionnaire", questionnaire, func() any { return &QuestionnaireResponse{} }},
		{"chat", chat, func() any { return &Chat{} }},
		{"message", msg, func() any { return &Message{} }},
		{"document", doc, func() any { return &Document{} }},
		{"generated document", gen, func() any { return &GeneratedDocument{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.value)
			require.NoError(t, err)

			decoded := tt.fresh()
			require.NoError(t, json.Unmarshal(data, decoded))
			assert.Equal(t, tt.value, decoded)
		})
	}
}

func TestJSONFieldNames(t *testing.T) {
	project, _, err := NewProject("auth0|abc", "Water", nil, nil)
	require.NoError(t, err)

	data, err := json.Marshal(project)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	for _, key := range []string{"id", "owner_id", "title", "status", "questionnaire_id", "created_at", "updated_at"} {
		assert.Contains(t, fields, key)
	}
	assert.NotContains(t, fields, "description")
	assert.NotContains(t, fields, "tags")
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?Z$`, fields["created_at"])
}
