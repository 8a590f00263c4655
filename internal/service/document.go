package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nytron88/gdd-module-types/internal/domain"
	"github.com/nytron88/gdd-module-types/internal/domain/models"
	"github.com/nytron88/gdd-module-types/internal/domain/repositories"
	"github.com/nytron88/gdd-module-types/internal/domain/services"
)

// documentService implements the DocumentService interface
type documentService struct {
	docRepo repositories.DocumentRepository
	refs    services.ReferenceValidator
	logger  *slog.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(
	docRepo repositories.DocumentRepository,
	refs services.ReferenceValidator,
	logger *slog.Logger,
) services.DocumentService {
	return &documentService{
		docRepo: docRepo,
		refs:    refs,
		logger:  logger,
	}
}

// CreateDocument registers a document uploaded into a chat
func (s *documentService) CreateDocument(ctx context.Context, req *services.CreateDocumentRequest) (*models.Document, error) {
	doc, err := models.NewDocument(req.UserID, req.ProjectID, req.ChatID, req.Name, req.RelevanceScore, req.S3Key)
	if err != nil {
		return nil, err
	}

	if _, err := s.refs.RequireUser(ctx, "user_id", doc.UserID); err != nil {
		return nil, err
	}
	if _, err := s.refs.RequireProject(ctx, "project_id", doc.ProjectID); err != nil {
		return nil, err
	}
	chat, err := s.refs.RequireChat(ctx, "chat_id", doc.ChatID)
	if err != nil {
		return nil, err
	}
	if chat.ProjectID != doc.ProjectID {
		return nil, domain.NewFieldError("chat_id", fmt.Sprintf("chat %s belongs to project %s", chat.ID, chat.ProjectID))
	}

	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("document created",
		"id", doc.ID,
		"name", doc.Name,
		"project_id", doc.ProjectID,
		"chat_id", doc.ChatID,
		"relevance_score", doc.RelevanceScore,
	)

	return doc, nil
}

// GetDocument retrieves a document by ID
func (s *documentService) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	return s.docRepo.GetByID(ctx, strings.TrimSpace(id))
}

func (s *documentService) ListProjectDocuments(ctx context.Context, projectID string) ([]models.Document, error) {
	return s.docRepo.ListByProject(ctx, strings.TrimSpace(projectID))
}

func (s *documentService) ListChatDocuments(ctx context.Context, chatID string) ([]models.Document, error) {
	return s.docRepo.ListByChat(ctx, strings.TrimSpace(chatID))
}

// UpdateDocument renames a document or rescores its relevance
func (s *documentService) UpdateDocument(ctx context.Context, id string, req *services.UpdateDocumentRequest) (*models.Document, error) {
	doc, err := s.docRepo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if err := checkExpected("document", doc.ID, doc.UpdatedAt, req.ExpectedUpdatedAt); err != nil {
		return nil, err
	}

	prev := doc.UpdatedAt
	if req.Name != nil {
		doc.Name = strings.TrimSpace(*req.Name)
	}
	if req.RelevanceScore != nil {
		doc.RelevanceScore = *req.RelevanceScore
	}
	doc.Touch()
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	if err := s.docRepo.Update(ctx, doc, prev); err != nil {
		return nil, err
	}

	s.logger.Info("document updated",
		"id", doc.ID,
		"name", doc.Name,
		"relevance_score", doc.RelevanceScore,
	)

	return doc, nil
}

// DeleteDocument deletes a document record. Attachments naming it are kept.
func (s *documentService) DeleteDocument(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if err := s.docRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("document deleted",
		"id", id,
	)

	return nil
}
