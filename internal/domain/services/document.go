package services

import (
	"context"
	"time"

	"github.com/nytron88/gdd-module-types/internal/domain/models"
)

// CreateDocumentRequest registers an uploaded reference document
type CreateDocumentRequest struct {
	UserID         string  `json:"user_id"`
	ProjectID      string  `json:"project_id"`
	ChatID         string  `json:"chat_id"`
	Name           string  `json:"name"`
	RelevanceScore float64 `json:"relevance_score"`
	S3Key          string  `json:"s3_key"`
}

// UpdateDocumentRequest represents a document update request
type UpdateDocumentRequest struct {
	Name              *string    `json:"name,omitempty"`
	RelevanceScore    *float64   `json:"relevance_score,omitempty"`
	ExpectedUpdatedAt *time.Time `json:"expected_updated_at,omitempty"`
}

// DocumentService handles document business logic
type DocumentService interface {
	// CreateDocument requires user, project and chat to exist and the chat to
	// belong to the project
	CreateDocument(ctx context.Context, req *CreateDocumentRequest) (*models.Document, error)

	GetDocument(ctx context.Context, id string) (*models.Document, error)

	ListProjectDocuments(ctx context.Context, projectID string) ([]models.Document, error)

	ListChatDocuments(ctx context.Context, chatID string) ([]models.Document, error)

	UpdateDocument(ctx context.Context, id string, req *UpdateDocumentRequest) (*models.Document, error)

	DeleteDocument(ctx context.Context, id string) error
}

// CreateGeneratedDocumentRequest records an exported artifact
type CreateGeneratedDocumentRequest struct {
	ProjectID string  `json:"project_id"`
	S3Key     string  `json:"s3_key"`
	S3URL     *string `json:"s3_url,omitempty"`
	PageCount int     `json:"page_count"`
}

// GeneratedDocumentService tracks artifacts produced from a project
type GeneratedDocumentService interface {
	CreateGeneratedDocument(ctx context.Context, req *CreateGeneratedDocumentRequest) (*models.GeneratedDocument, error)

	GetGeneratedDocument(ctx context.Context, id string) (*models.GeneratedDocument, error)

	// ListGeneratedDocuments returns a project's exports, newest first
	ListGeneratedDocuments(ctx context.Context, projectID string) ([]models.GeneratedDocument, error)

	DeleteGeneratedDocument(ctx context.Context, id string) error
}
