package services

import (
	"context"

	"github.com/nytron88/gdd-module-types/internal/domain/models"
)

// ReferenceValidator resolves foreign keys before a write. A missing target
// is reported as *domain.ReferentialError naming field.
type ReferenceValidator interface {
	RequireUser(ctx context.Context, field, id string) (*models.User, error)
	RequireProject(ctx context.Context, field, id string) (*models.Project, error)
	RequireChat(ctx context.Context, field, id string) (*models.Chat, error)
}
