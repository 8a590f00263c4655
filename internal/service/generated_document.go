package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/nytron88/gdd-module-types/internal/domain/models"
	"github.com/nytron88/gdd-module-types/internal/domain/repositories"
	"github.com/nytron88/gdd-module-types/internal/domain/services"
)

// generatedDocumentService implements the GeneratedDocumentService interface
type generatedDocumentService struct {
	genRepo repositories.GeneratedDocumentRepository
	refs    services.ReferenceValidator
	logger  *slog.Logger
}

// NewGeneratedDocumentService creates a new generated document service
func NewGeneratedDocumentService(
	genRepo repositories.GeneratedDocumentRepository,
	refs services.ReferenceValidator,
	logger *slog.Logger,
) services.GeneratedDocumentService {
	return &generatedDocumentService{
		genRepo: genRepo,
		refs:    refs,
		logger:  logger,
	}
}

// CreateGeneratedDocument records an export of a project
func (s *generatedDocumentService) CreateGeneratedDocument(ctx context.Context, req *services.CreateGeneratedDocumentRequest) (*models.GeneratedDocument, error) {
	doc, err := models.NewGeneratedDocument(req.ProjectID, req.S3Key, req.S3URL, req.PageCount)
	if err != nil {
		return nil, err
	}

	if _, err := s.refs.RequireProject(ctx, "project_id", doc.ProjectID); err != nil {
		return nil, err
	}

	if err := s.genRepo.Create(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("generated document recorded",
		"id", doc.ID,
		"project_id", doc.ProjectID,
		"page_count", doc.PageCount,
	)

	return doc, nil
}

func (s *generatedDocumentService) GetGeneratedDocument(ctx context.Context, id string) (*models.GeneratedDocument, error) {
	return s.genRepo.GetByID(ctx, strings.TrimSpace(id))
}

func (s *generatedDocumentService) ListGeneratedDocuments(ctx context.Context, projectID string) ([]models.GeneratedDocument, error) {
	return s.genRepo.ListByProject(ctx, strings.TrimSpace(projectID))
}

func (s *generatedDocumentService) DeleteGeneratedDocument(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if err := s.genRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("generated document deleted",
		"id", id,
	)

	return nil
}
