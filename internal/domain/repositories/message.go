package repositories

import (
	"context"
	"time"

	"github.com/nytron88/gdd-module-types/internal/domain/models"
)

// MessageRepository is append-only: messages are never updated or deleted
// individually (they go away with their chat).
type MessageRepository interface {
	Append(ctx context.Context, msg *models.Message) error

	GetByID(ctx context.Context, id string) (*models.Message, error)

	// ListByChat retrieves a chat's messages ordered by created_at, id
	ListByChat(ctx context.Context, chatID string) ([]models.Message, error)

	// LastCreatedAt returns the created_at of the chat's newest message,
	// or the zero time when the chat is empty
	LastCreatedAt(ctx context.Context, chatID string) (time.Time, error)
}
