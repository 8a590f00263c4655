package repositories

import (
	"context"
	"time"

	"github.com/nytron88/gdd-module-types/internal/domain/models"
)

// ChatRepository defines data access operations for chats
type ChatRepository interface {
	Create(ctx context.Context, chat *models.Chat) error

	GetByID(ctx context.Context, id string) (*models.Chat, error)

	// ListByProject retrieves all chats in a project, ordered by updated_at DESC
	ListByProject(ctx context.Context, projectID string) ([]models.Chat, error)

	// Update writes the title if the stored updated_at still equals prevUpdatedAt
	Update(ctx context.Context, chat *models.Chat, prevUpdatedAt time.Time) error

	// Delete removes a chat with its messages and documents
	Delete(ctx context.Context, id string) error
}
