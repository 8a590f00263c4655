package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/nytron88/gdd-module-types/internal/domain/models"
	"github.com/nytron88/gdd-module-types/internal/domain/repositories"
	"github.com/nytron88/gdd-module-types/internal/domain/services"
)

// userService implements the UserService interface
type userService struct {
	userRepo repositories.UserRepository
	logger   *slog.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository, logger *slog.Logger) services.UserService {
	return &userService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// CreateUser stores a user under the identity provider's subject id
func (s *userService) CreateUser(ctx context.Context, req *services.CreateUserRequest) (*models.User, error) {
	user, err := models.NewUser(req.ID, req.Email, req.Name, req.Age, req.Country, req.Language, req.Interests)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created",
		"id", user.ID,
		"email", user.Email,
	)

	return user, nil
}

// GetUser retrieves a user by ID
func (s *userService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, strings.TrimSpace(id))
}

// GetUserByEmail retrieves a user by email
func (s *userService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

// UpdateUser applies a partial profile update
func (s *userService) UpdateUser(ctx context.Context, id string, req *services.UpdateUserRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if err := checkExpected("user", user.ID, user.UpdatedAt, req.ExpectedUpdatedAt); err != nil {
		return nil, err
	}
	prev := user.UpdatedAt

	if req.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Age != nil {
		user.Age = *req.Age
	}
	if req.Country != nil {
		user.Country = strings.TrimSpace(*req.Country)
	}
	if req.Language != nil {
		user.Language = strings.TrimSpace(*req.Language)
	}
	if req.Interests != nil {
		user.Interests = append([]models.Interest{}, (*req.Interests)...)
	}

	user.Touch()
	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.userRepo.Update(ctx, user, prev); err != nil {
		return nil, err
	}

	s.logger.Info("user updated",
		"id", user.ID,
		"updated_at", user.UpdatedAt,
	)

	return user, nil
}
