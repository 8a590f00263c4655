package repositories

import (
	"context"
	"time"

	"github.com/nytron88/gdd-module-types/internal/domain/models"
)

// ProjectRepository defines data access operations for projects
type ProjectRepository interface {
	// Create inserts a project. Its questionnaire must be inserted in the same transaction.
	Create(ctx context.Context, project *models.Project) error

	// GetByID retrieves a project by ID
	GetByID(ctx context.Context, id string) (*models.Project, error)

	// ListByOwner retrieves all projects for a user, ordered by updated_at DESC
	ListByOwner(ctx context.Context, ownerID string) ([]models.Project, error)

	// ListIDs returns every project id, oldest first
	ListIDs(ctx context.Context) ([]string, error)

	// Update writes title, description, status and tags if the stored
	// updated_at still equals prevUpdatedAt, otherwise returns a ConflictError
	Update(ctx context.Context, project *models.Project, prevUpdatedAt time.Time) error

	// Delete removes a project and everything scoped to it
	Delete(ctx context.Context, id string) error
}
