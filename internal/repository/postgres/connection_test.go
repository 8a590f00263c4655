package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTableNames(t *testing.T) {
	tables := NewTableNames("test_")

	assert.Equal(t, "test_users", tables.Users)
	assert.Equal(t, "test_projects", tables.Projects)
	assert.Equal(t, "test_questionnaire_responses", tables.Questionnaires)
	assert.Equal(t, "test_chats", tables.Chats)
	assert.Equal(t, "test_messages", tables.Messages)
	assert.Equal(t, "test_documents", tables.Documents)
	assert.Equal(t, "test_generated_documents", tables.GeneratedDocuments)

	all := tables.All()
	require.Len(t, all, 7)
	assert.Equal(t, tables.Messages, all[0])
	assert.Equal(t, tables.Users, all[len(all)-1])
}

func TestSchemaSQL(t *testing.T) {
	tables := NewTableNames("test_")
	ddl := tables.SchemaSQL()

	assert.NotContains(t, ddl, "${prefix}")
	for _, table := range tables.All() {
		assert.Contains(t, ddl, "CREATE TABLE IF NOT EXISTS "+table+" (")
	}
	assert.Contains(t, ddl, "test_users_email_key UNIQUE (email)")
	assert.Contains(t, ddl, "DEFERRABLE INITIALLY DEFERRED")
	assert.Contains(t, ddl, "REFERENCES test_chats(id, project_id)")

	// every CHECK mirrors an enumeration from the domain model
	assert.Contains(t, ddl, "CHECK (status IN ('draft', 'in_progress', 'ready', 'archived'))")
	assert.Contains(t, ddl, "CHECK (role IN ('user', 'assistant', 'system'))")
	assert.Equal(t, 1, strings.Count(ddl, "CREATE TABLE IF NOT EXISTS test_messages"))
}

func TestParams(t *testing.T) {
	assert.True(t, isUUID("3f0c2a52-6a57-4b7e-9a55-0d1c8f6a1b2c"))
	assert.False(t, isUUID("project-1"))
	assert.False(t, isUUID(""))

	empty, err := jsonParam([]string{})
	require.NoError(t, err)
	assert.Nil(t, empty)

	encoded, err := jsonParam([]map[string]string{{"s3_key": "uploads/a.pdf"}})
	require.NoError(t, err)
	require.NotNil(t, encoded)
	assert.JSONEq(t, `[{"s3_key":"uploads/a.pdf"}]`, *encoded)

	type tag string
	assert.Equal(t, []string{"a", "b"}, textArray([]tag{"a", "b"}))
	assert.Nil(t, textArray[tag](nil))
}
