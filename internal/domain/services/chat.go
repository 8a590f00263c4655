package services

import (
	"context"
	"time"

	"github.com/nytron88/gdd-module-types/internal/domain/models"
)

// CreateChatRequest represents a request to open a chat in a project
type CreateChatRequest struct {
	ProjectID string  `json:"project_id"`
	UserID    string  `json:"user_id"`
	Title     *string `json:"title,omitempty"`
}

// RenameChatRequest sets or clears (nil/blank) a chat's title
type RenameChatRequest struct {
	Title             *string    `json:"title,omitempty"`
	ExpectedUpdatedAt *time.Time `json:"expected_updated_at,omitempty"`
}

// ChatService defines business logic operations for chats
type ChatService interface {
	CreateChat(ctx context.Context, req *CreateChatRequest) (*models.Chat, error)

	GetChat(ctx context.Context, id string) (*models.Chat, error)

	ListChats(ctx context.Context, projectID string) ([]models.Chat, error)

	RenameChat(ctx context.Context, id string, req *RenameChatRequest) (*models.Chat, error)

	// DeleteChat deletes a chat with its messages and documents
	DeleteChat(ctx context.Context, id string) error
}

// AppendMessageRequest represents a new message in a chat
type AppendMessageRequest struct {
	ChatID      string              `json:"chat_id"`
	Role        models.Role         `json:"role"`
	Content     string              `json:"content"`
	Attachments []models.Attachment `json:"attachments,omitempty"`
}

// MessageService appends to and reads chat transcripts
type MessageService interface {
	// AppendMessage adds a message after the chat's current last message.
	// Attachments are weak references and are not checked here.
	AppendMessage(ctx context.Context, req *AppendMessageRequest) (*models.Message, error)

	GetMessage(ctx context.Context, id string) (*models.Message, error)

	// ListMessages returns the transcript in order
	ListMessages(ctx context.Context, chatID string) ([]models.Message, error)
}
