package service

import (
	"context"
	"testing"

	"github.com/nytron88/gdd-module-types/internal/domain"
	"github.com/nytron88/gdd-module-types/internal/domain/models"
	"github.com/nytron88/gdd-module-types/internal/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProjectWithQuestionnaire(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	owner := createUser(t, env, "auth0|ana", "ana@example.org")

	project, err := env.projects.CreateProject(ctx, &services.CreateProjectRequest{
		OwnerID:     owner.ID,
		Title:       " Water points ",
		Description: strPtr("Boreholes for three schools"),
		Tags:        []string{"water", "schools"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Water points", project.Title)
	assert.Equal(t, models.ProjectStatusDraft, project.Status)

	q, err := env.questionnaire.GetByProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, project.QuestionnaireID, q.ID)
	assert.Equal(t, project.ID, q.ProjectID)
	assert.Equal(t, models.QuestionnaireStatusDraft, q.Status)

	projects, err := env.projects.ListProjects(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, project.ID, projects[0].ID)
}

func TestCreateProjectRequiresOwner(t *testing.T) {
	env := newTestEnv()

	_, err := env.projects.CreateProject(context.Background(), &services.CreateProjectRequest{
		OwnerID: "auth0|ghost",
		Title:   "Orphan",
	})
	requireReferentialError(t, err, "owner_id")
	assert.ErrorIs(t, err, domain.ErrReferential)
	assert.Empty(t, env.tables().Projects)
	assert.Empty(t, env.tables().Questionnaires)
}

func TestSetStatusLifecycle(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	owner := createUser(t, env, "auth0|ana", "ana@example.org")

	tests := []struct {
		name    string
		path    []models.ProjectStatus
		next    models.ProjectStatus
		wantErr bool
	}{
		{"draft to in_progress", nil, models.ProjectStatusInProgress, false},
		{"draft cannot skip to ready", nil, models.ProjectStatusReady, true},
		{"in_progress to ready", []models.ProjectStatus{models.ProjectStatusInProgress}, models.ProjectStatusReady, false},
		{"ready back to in_progress", []models.ProjectStatus{models.ProjectStatusInProgress, models.ProjectStatusReady}, models.ProjectStatusInProgress, true},
		{"draft to archived", nil, models.ProjectStatusArchived, false},
		{"ready to archived", []models.ProjectStatus{models.ProjectStatusInProgress, models.ProjectStatusReady}, models.ProjectStatusArchived, false},
		{"archived is terminal", []models.ProjectStatus{models.ProjectStatusArchived}, models.ProjectStatusDraft, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			project := createProject(t, env, owner.ID)
			for _, s := range tt.path {
				_, err := env.projects.SetStatus(ctx, project.ID, s)
				require.NoError(t, err)
			}

			updated, err := env.projects.SetStatus(ctx, project.ID, tt.next)
			if tt.wantErr {
				requireFieldError(t, err, "status")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.next, updated.Status)
			assert.True(t, updated.UpdatedAt.After(project.UpdatedAt))
		})
	}
}

func TestSetStatusRejectsUnlistedValue(t *testing.T) {
	env := newTestEnv()
	owner := createUser(t, env, "auth0|ana", "ana@example.org")
	project := createProject(t, env, owner.ID)

	_, err := env.projects.SetStatus(context.Background(), project.ID, "cancelled")
	requireFieldError(t, err, "status")
	assert.ErrorIs(t, err, domain.ErrValidation)

	stored, err := env.projects.GetProject(context.Background(), project.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProjectStatusDraft, stored.Status)
}

func TestSetStatusSameValueIsNoop(t *testing.T) {
	env := newTestEnv()
	owner := createUser(t, env, "auth0|ana", "ana@example.org")
	project := createProject(t, env, owner.ID)

	same, err := env.projects.SetStatus(context.Background(), project.ID, models.ProjectStatusDraft)
	require.NoError(t, err)
	assert.Equal(t, project.UpdatedAt, same.UpdatedAt)
}

func TestLeavingDraftRequiresMatchingQuestionnaire(t *testing.T) {
	ctx := context.Background()

	t.Run("questionnaire missing", func(t *testing.T) {
		env := newTestEnv()
		owner := createUser(t, env, "auth0|ana", "ana@example.org")
		project := createProject(t, env, owner.ID)
		env.deleteQuestionnaire(project.QuestionnaireID)

		_, err := env.projects.SetStatus(ctx, project.ID, models.ProjectStatusInProgress)
		requireReferentialError(t, err, "questionnaire_id")

		_, err = env.projects.SetStatus(ctx, project.ID, models.ProjectStatusArchived)
		requireReferentialError(t, err, "questionnaire_id")
	})

	t.Run("questionnaire points at another project", func(t *testing.T) {
		env := newTestEnv()
		owner := createUser(t, env, "auth0|ana", "ana@example.org")
		project := createProject(t, env, owner.ID)
		other := createProject(t, env, owner.ID)

		env.repointQuestionnaire(project.QuestionnaireID, other.ID)

		_, err := env.projects.SetStatus(ctx, project.ID, models.ProjectStatusInProgress)
		requireFieldError(t, err, "questionnaire_id")
	})

	t.Run("later transitions do not re-check", func(t *testing.T) {
		env := newTestEnv()
		owner := createUser(t, env, "auth0|ana", "ana@example.org")
		project := createProject(t, env, owner.ID)

		_, err := env.projects.SetStatus(ctx, project.ID, models.ProjectStatusInProgress)
		require.NoError(t, err)
		env.deleteQuestionnaire(project.QuestionnaireID)

		_, err = env.projects.SetStatus(ctx, project.ID, models.ProjectStatusReady)
		assert.NoError(t, err)
	})
}

func TestUpdateProject(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	owner := createUser(t, env, "auth0|ana", "ana@example.org")
	project := createProject(t, env, owner.ID)

	tags := []string{" water ", "", "health"}
	updated, err := env.projects.UpdateProject(ctx, project.ID, &services.UpdateProjectRequest{
		Title:       strPtr("Water and sanitation"),
		Description: strPtr("Latrines too"),
		Tags:        &tags,
	})
	require.NoError(t, err)
	assert.Equal(t, "Water and sanitation", updated.Title)
	assert.Equal(t, "Latrines too", *updated.Description)
	assert.Equal(t, []string{"water", "health"}, updated.Tags)
	assert.Equal(t, project.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(project.UpdatedAt))

	// empty values clear optional fields
	none := []string{}
	cleared, err := env.projects.UpdateProject(ctx, project.ID, &services.UpdateProjectRequest{
		Description: strPtr(""),
		Tags:        &none,
	})
	require.NoError(t, err)
	assert.Nil(t, cleared.Description)
	assert.Nil(t, cleared.Tags)

	_, err = env.projects.UpdateProject(ctx, project.ID, &services.UpdateProjectRequest{Title: strPtr("  ")})
	requireFieldError(t, err, "title")

	_, err = env.projects.UpdateProject(ctx, project.ID, &services.UpdateProjectRequest{
		Title:             strPtr("Stale"),
		ExpectedUpdatedAt: &project.UpdatedAt,
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestDeleteProjectCascades(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	owner := createUser(t, env, "auth0|ana", "ana@example.org")
	project := createProject(t, env, owner.ID)
	chat := createChat(t, env, project.ID, owner.ID)
	createDocument(t, env, owner.ID, project.ID, chat.ID)

	require.NoError(t, env.projects.DeleteProject(ctx, project.ID))

	_, err := env.projects.GetProject(ctx, project.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = env.questionnaire.GetByProject(ctx, project.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, env.tables().Chats)
	assert.Empty(t, env.tables().Documents)

	assert.ErrorIs(t, env.projects.DeleteProject(ctx, project.ID), domain.ErrNotFound)
}
