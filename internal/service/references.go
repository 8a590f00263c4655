package service

import (
	"context"
	"fmt"

	"github.com/nytron88/gdd-module-types/internal/domain/models"
	"github.com/nytron88/gdd-module-types/internal/domain/repositories"
	"github.com/nytron88/gdd-module-types/internal/domain/services"
)

// referenceValidator implements the ReferenceValidator interface
type referenceValidator struct {
	userRepo    repositories.UserRepository
	projectRepo repositories.ProjectRepository
	chatRepo    repositories.ChatRepository
}

// NewReferenceValidator creates a new reference validator
func NewReferenceValidator(
	userRepo repositories.UserRepository,
	projectRepo repositories.ProjectRepository,
	chatRepo repositories.ChatRepository,
) services.ReferenceValidator {
	return &referenceValidator{
		userRepo:    userRepo,
		projectRepo: projectRepo,
		chatRepo:    chatRepo,
	}
}

func (v *referenceValidator) RequireUser(ctx context.Context, field, id string) (*models.User, error) {
	user, err := v.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", field, asReference(err, field, "user", id))
	}
	return user, nil
}

func (v *referenceValidator) RequireProject(ctx context.Context, field, id string) (*models.Project, error) {
	project, err := v.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", field, asReference(err, field, "project", id))
	}
	return project, nil
}

func (v *referenceValidator) RequireChat(ctx context.Context, field, id string) (*models.Chat, error) {
	chat, err := v.chatRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", field, asReference(err, field, "chat", id))
	}
	return chat, nil
}
