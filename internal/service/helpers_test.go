package service

import (
	"context"
	"errors"
	"testing"

	"github.com/nytron88/gdd-module-types/internal/domain"
	"github.com/nytron88/gdd-module-types/internal/domain/models"
	"github.com/nytron88/gdd-module-types/internal/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func createUser(t *testing.T, env *testEnv, id, email string) *models.User {
	t.Helper()
	u, err := env.users.CreateUser(context.Background(), &services.CreateUserRequest{
		ID:        id,
		Email:     email,
		Name:      "Test User",
		Age:       33,
		Country:   "KE",
		Language:  "sw",
		Interests: []models.Interest{models.InterestSocial},
	})
	require.NoError(t, err)
	return u
}

func createProject(t *testing.T, env *testEnv, ownerID string) *models.Project {
	t.Helper()
	p, err := env.projects.CreateProject(context.Background(), &services.CreateProjectRequest{
		OwnerID: ownerID,
		Title:   "Community water points",
	})
	require.NoError(t, err)
	return p
}

func createChat(t *testing.T, env *testEnv, projectID, userID string) *models.Chat {
	t.Helper()
	c, err := env.chats.CreateChat(context.Background(), &services.CreateChatRequest{
		ProjectID: projectID,
		UserID:    userID,
	})
	require.NoError(t, err)
	return c
}

func createDocument(t *testing.T, env *testEnv, userID, projectID, chatID string) *models.Document {
	t.Helper()
	d, err := env.documents.CreateDocument(context.Background(), &services.CreateDocumentRequest{
		UserID:         userID,
		ProjectID:      projectID,
		ChatID:         chatID,
		Name:           "survey.pdf",
		RelevanceScore: 0.8,
		S3Key:          "uploads/survey.pdf",
	})
	require.NoError(t, err)
	return d
}

func requireFieldError(t *testing.T, err error, field string) {
	t.Helper()
	require.Error(t, err)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr), "expected *domain.ValidationError, got %T: %v", err, err)
	assert.True(t, verr.HasField(field), "fields: %v", verr.FieldNames())
}

func requireReferentialError(t *testing.T, err error, field string) {
	t.Helper()
	require.Error(t, err)
	var ref *domain.ReferentialError
	require.True(t, errors.As(err, &ref), "expected *domain.ReferentialError, got %T: %v", err, err)
	assert.Equal(t, field, ref.Field)
}
