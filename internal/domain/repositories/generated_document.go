package repositories

import (
	"context"

	"github.com/nytron88/gdd-module-types/internal/domain/models"
)

// GeneratedDocumentRepository defines data access operations for generated artifacts
type GeneratedDocumentRepository interface {
	Create(ctx context.Context, doc *models.GeneratedDocument) error

	GetByID(ctx context.Context, id string) (*models.GeneratedDocument, error)

	// ListByProject retrieves a project's generated documents, newest first
	ListByProject(ctx context.Context, projectID string) ([]models.GeneratedDocument, error)

	Delete(ctx context.Context, id string) error
}
