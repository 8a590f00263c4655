package repositories

import (
	"context"
	"time"

	"github.com/nytron88/gdd-module-types/internal/domain/models"
)

// UserRepository defines data access operations for users
type UserRepository interface {
	// Create inserts a user. A duplicate id or email returns a ConflictError.
	Create(ctx context.Context, user *models.User) error

	// GetByID retrieves a user by identity-provider id
	GetByID(ctx context.Context, id string) (*models.User, error)

	// GetByEmail retrieves a user by (lower-cased) email
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// Update writes all mutable fields if the stored updated_at still equals
	// prevUpdatedAt, otherwise returns a ConflictError
	Update(ctx context.Context, user *models.User, prevUpdatedAt time.Time) error
}
