package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nytron88/gdd-module-types/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedFixture(t *testing.T) {
	f, err := LoadFixture("")
	require.NoError(t, err)

	require.Len(t, f.Users, 2)
	require.Len(t, f.Projects, 2)

	clinic := f.Projects[0]
	assert.Equal(t, "clinic", clinic.Key)
	assert.Equal(t, models.ProjectStatusReady, clinic.Status)
	assert.True(t, clinic.Questionnaire.Approved)
	require.NotNil(t, clinic.Questionnaire.Answers.BudgetAmount)
	assert.Equal(t, 48000.0, *clinic.Questionnaire.Answers.BudgetAmount)

	msgs := clinic.Chats[0].Messages
	require.Len(t, msgs, 3)
	assert.Equal(t, string(models.RoleAssistant), msgs[1].Role)

	// bare string shorthand
	require.Len(t, msgs[0].Attachments, 1)
	assert.Equal(t, "route-survey", msgs[0].Attachments[0].Document)

	// mapping form, including a storage-key-only attachment
	require.Len(t, msgs[2].Attachments, 2)
	assert.Equal(t, "budget-draft", msgs[2].Attachments[0].Document)
	require.NotNil(t, msgs[2].Attachments[1].S3Key)
	assert.Empty(t, msgs[2].Attachments[1].Document)

	compost := f.Projects[1]
	assert.Equal(t, string(models.RoleAssistant), compost.Chats[0].Messages[1].Role)
	require.NotNil(t, compost.Chats[0].Messages[1].Attachments[0].DocumentID)
}

func TestLoadFixtureFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "small.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
users:
  - key: ana
    id: auth0|ana
    email: ana@example.org
    name: Ana
    age: 29
projects:
  - key: p
    owner: ana
    title: Seed bank
`), 0o644))

	f, err := LoadFixture(path)
	require.NoError(t, err)
	require.Len(t, f.Projects, 1)
	assert.Empty(t, f.Projects[0].Status)

	_, err = LoadFixture(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseFixtureRejects(t *testing.T) {
	users := `
users:
  - key: ana
    id: auth0|ana
    email: ana@example.org
`
	tests := []struct {
		name string
		data string
		want string
	}{
		{"empty", "", "fixture is empty"},
		{"unknown field", users + "    nickname: an\n", "nickname"},
		{"duplicate user key", users + "  - key: ana\n    id: auth0|other\n", `duplicate user key "ana"`},
		{"unknown owner", users + "projects:\n  - key: p\n    owner: bob\n    title: T\n", `unknown owner "bob"`},
		{"unknown status", users + "projects:\n  - key: p\n    owner: ana\n    title: T\n    status: cancelled\n", `unknown status "cancelled"`},
		{
			"unknown role",
			users + "projects:\n  - key: p\n    owner: ana\n    title: T\n    chats:\n      - key: c\n        user: ana\n        messages:\n          - role: moderator\n            content: hi\n",
			"unknown message role",
		},
		{
			"unknown attachment document",
			users + "projects:\n  - key: p\n    owner: ana\n    title: T\n    chats:\n      - key: c\n        user: ana\n        messages:\n          - role: user\n            attachments: [nope]\n",
			`unknown document "nope"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFixture([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestStatusPath(t *testing.T) {
	assert.Nil(t, statusPath(""))
	assert.Nil(t, statusPath(models.ProjectStatusDraft))
	assert.Equal(t, []models.ProjectStatus{models.ProjectStatusInProgress}, statusPath(models.ProjectStatusInProgress))
	assert.Equal(t, []models.ProjectStatus{models.ProjectStatusInProgress, models.ProjectStatusReady}, statusPath(models.ProjectStatusReady))
	assert.Equal(t, []models.ProjectStatus{models.ProjectStatusArchived}, statusPath(models.ProjectStatusArchived))

	// every step of every path is a legal transition from the previous state
	for _, target := range models.ProjectStatuses {
		from := models.ProjectStatusDraft
		for _, next := range statusPath(target) {
			assert.True(t, from.CanTransitionTo(next), "%s -> %s", from, next)
			from = next
		}
		assert.Equal(t, target, from)
	}
}
