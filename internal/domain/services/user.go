package services

import (
	"context"
	"time"

	"github.com/nytron88/gdd-module-types/internal/domain/models"
)

// CreateUserRequest registers a user known to the identity provider
type CreateUserRequest struct {
	ID        string            `json:"id"` // identity provider subject
	Email     string            `json:"email"`
	Name      string            `json:"name"`
	Age       int               `json:"age"`
	Country   string            `json:"country"`
	Language  string            `json:"language"`
	Interests []models.Interest `json:"interests"`
}

// UpdateUserRequest is a partial update; nil fields are left unchanged.
// ExpectedUpdatedAt, when set, must match the stored updated_at.
type UpdateUserRequest struct {
	Email             *string            `json:"email,omitempty"`
	Name              *string            `json:"name,omitempty"`
	Age               *int               `json:"age,omitempty"`
	Country           *string            `json:"country,omitempty"`
	Language          *string            `json:"language,omitempty"`
	Interests         *[]models.Interest `json:"interests,omitempty"`
	ExpectedUpdatedAt *time.Time         `json:"expected_updated_at,omitempty"`
}

// UserService defines business logic operations for users
type UserService interface {
	CreateUser(ctx context.Context, req *CreateUserRequest) (*models.User, error)

	GetUser(ctx context.Context, id string) (*models.User, error)

	// GetUserByEmail looks a user up by (case-insensitive) email
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// UpdateUser refreshes updated_at; created_at never changes
	UpdateUser(ctx context.Context, id string, req *UpdateUserRequest) (*models.User, error)
}
