package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/nytron88/gdd-module-types/internal/domain/models"
	"github.com/nytron88/gdd-module-types/internal/domain/repositories"
	"github.com/nytron88/gdd-module-types/internal/domain/services"
)

// messageService implements the MessageService interface
type messageService struct {
	messageRepo repositories.MessageRepository
	txManager   repositories.TransactionManager
	refs        services.ReferenceValidator
	logger      *slog.Logger
}

// NewMessageService creates a new message service
func NewMessageService(
	messageRepo repositories.MessageRepository,
	txManager repositories.TransactionManager,
	refs services.ReferenceValidator,
	logger *slog.Logger,
) services.MessageService {
	return &messageService{
		messageRepo: messageRepo,
		txManager:   txManager,
		refs:        refs,
		logger:      logger,
	}
}

// AppendMessage adds a message to the end of a chat's transcript
func (s *messageService) AppendMessage(ctx context.Context, req *services.AppendMessageRequest) (*models.Message, error) {
	msg, err := models.NewMessage(req.ChatID, req.Role, req.Content, req.Attachments)
	if err != nil {
		return nil, err
	}

	err = s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if _, err := s.refs.RequireChat(ctx, "chat_id", msg.ChatID); err != nil {
			return err
		}

		// created_at must sort after everything already in the chat
		last, err := s.messageRepo.LastCreatedAt(ctx, msg.ChatID)
		if err != nil {
			return err
		}
		if !msg.CreatedAt.After(last) {
			msg.CreatedAt = models.NextTimestamp(last)
		}

		return s.messageRepo.Append(ctx, msg)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("message appended",
		"id", msg.ID,
		"chat_id", msg.ChatID,
		"role", msg.Role,
		"attachments", len(msg.Attachments),
	)

	return msg, nil
}

func (s *messageService) GetMessage(ctx context.Context, id string) (*models.Message, error) {
	return s.messageRepo.GetByID(ctx, strings.TrimSpace(id))
}

// ListMessages returns a chat's transcript, oldest first
func (s *messageService) ListMessages(ctx context.Context, chatID string) ([]models.Message, error) {
	return s.messageRepo.ListByChat(ctx, strings.TrimSpace(chatID))
}
