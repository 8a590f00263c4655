package repositories

import (
	"context"
	"time"

	"github.com/nytron88/gdd-module-types/internal/domain/models"
)

// DocumentRepository defines data access operations for uploaded documents
type DocumentRepository interface {
	Create(ctx context.Context, doc *models.Document) error

	GetByID(ctx context.Context, id string) (*models.Document, error)

	// GetByIDs retrieves the documents that exist among ids; missing ids are skipped
	GetByIDs(ctx context.Context, ids []string) ([]models.Document, error)

	// ListByProject retrieves a project's documents, most relevant first
	ListByProject(ctx context.Context, projectID string) ([]models.Document, error)

	// ListByChat retrieves a chat's documents, most relevant first
	ListByChat(ctx context.Context, chatID string) ([]models.Document, error)

	// Update writes name and relevance_score if the stored updated_at still equals prevUpdatedAt
	Update(ctx context.Context, doc *models.Document, prevUpdatedAt time.Time) error

	Delete(ctx context.Context, id string) error
}
