package services

import (
	"context"
	"time"

	"github.com/nytron88/gdd-module-types/internal/domain/models"
)

// CreateProjectRequest represents a request to create a project
type CreateProjectRequest struct {
	OwnerID     string   `json:"owner_id"`
	Title       string   `json:"title"`
	Description *string  `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// UpdateProjectRequest represents a request to update a project.
// A non-nil empty Description or Tags clears the field.
type UpdateProjectRequest struct {
	Title             *string    `json:"title,omitempty"`
	Description       *string    `json:"description,omitempty"`
	Tags              *[]string  `json:"tags,omitempty"`
	ExpectedUpdatedAt *time.Time `json:"expected_updated_at,omitempty"`
}

// ProjectService defines business logic operations for projects
type ProjectService interface {
	// CreateProject creates a draft project and its draft questionnaire atomically
	CreateProject(ctx context.Context, req *CreateProjectRequest) (*models.Project, error)

	GetProject(ctx context.Context, id string) (*models.Project, error)

	// ListProjects retrieves all projects owned by a user
	ListProjects(ctx context.Context, ownerID string) ([]models.Project, error)

	UpdateProject(ctx context.Context, id string, req *UpdateProjectRequest) (*models.Project, error)

	// SetStatus moves a project through its lifecycle.
	// draft -> in_progress -> ready, any non-archived -> archived.
	// Leaving draft requires the project's questionnaire to exist and point back at it.
	SetStatus(ctx context.Context, id string, status models.ProjectStatus) (*models.Project, error)

	// DeleteProject deletes a project with its questionnaire, chats, messages and documents
	DeleteProject(ctx context.Context, id string) error
}
