package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/nytron88/gdd-module-types/internal/domain/models"
	"github.com/nytron88/gdd-module-types/internal/domain/repositories"
	"github.com/nytron88/gdd-module-types/internal/domain/services"
)

// chatService implements the ChatService interface
type chatService struct {
	chatRepo repositories.ChatRepository
	refs     services.ReferenceValidator
	logger   *slog.Logger
}

// NewChatService creates a new chat service
func NewChatService(
	chatRepo repositories.ChatRepository,
	refs services.ReferenceValidator,
	logger *slog.Logger,
) services.ChatService {
	return &chatService{
		chatRepo: chatRepo,
		refs:     refs,
		logger:   logger,
	}
}

// CreateChat opens a chat in an existing project
func (s *chatService) CreateChat(ctx context.Context, req *services.CreateChatRequest) (*models.Chat, error) {
	chat, err := models.NewChat(req.ProjectID, req.UserID, req.Title)
	if err != nil {
		return nil, err
	}

	if _, err := s.refs.RequireProject(ctx, "project_id", chat.ProjectID); err != nil {
		return nil, err
	}
	if _, err := s.refs.RequireUser(ctx, "user_id", chat.UserID); err != nil {
		return nil, err
	}

	if err := s.chatRepo.Create(ctx, chat); err != nil {
		return nil, err
	}

	s.logger.Info("chat created",
		"id", chat.ID,
		"project_id", chat.ProjectID,
		"user_id", chat.UserID,
	)

	return chat, nil
}

func (s *chatService) GetChat(ctx context.Context, id string) (*models.Chat, error) {
	return s.chatRepo.GetByID(ctx, strings.TrimSpace(id))
}

func (s *chatService) ListChats(ctx context.Context, projectID string) ([]models.Chat, error) {
	return s.chatRepo.ListByProject(ctx, strings.TrimSpace(projectID))
}

// RenameChat sets or clears a chat's title
func (s *chatService) RenameChat(ctx context.Context, id string, req *services.RenameChatRequest) (*models.Chat, error) {
	chat, err := s.chatRepo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if err := checkExpected("chat", chat.ID, chat.UpdatedAt, req.ExpectedUpdatedAt); err != nil {
		return nil, err
	}

	prev := chat.UpdatedAt
	chat.Title = nil
	if req.Title != nil {
		if t := strings.TrimSpace(*req.Title); t != "" {
			chat.Title = &t
		}
	}
	chat.Touch()
	if err := chat.Validate(); err != nil {
		return nil, err
	}

	if err := s.chatRepo.Update(ctx, chat, prev); err != nil {
		return nil, err
	}

	s.logger.Info("chat renamed",
		"id", chat.ID,
		"title", chat.Title,
	)

	return chat, nil
}

// DeleteChat deletes a chat with its transcript and documents
func (s *chatService) DeleteChat(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if err := s.chatRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("chat deleted",
		"id", id,
	)

	return nil
}
