package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/nytron88/gdd-module-types/internal/domain"
	"github.com/nytron88/gdd-module-types/internal/domain/models"
	"github.com/nytron88/gdd-module-types/internal/domain/repositories"
	"github.com/nytron88/gdd-module-types/internal/domain/services"
)

// questionnaireService implements the QuestionnaireService interface
type questionnaireService struct {
	questionnaireRepo repositories.QuestionnaireRepository
	logger            *slog.Logger
}

// NewQuestionnaireService creates a new questionnaire service
func NewQuestionnaireService(questionnaireRepo repositories.QuestionnaireRepository, logger *slog.Logger) services.QuestionnaireService {
	return &questionnaireService{
		questionnaireRepo: questionnaireRepo,
		logger:            logger,
	}
}

func (s *questionnaireService) GetQuestionnaire(ctx context.Context, id string) (*models.QuestionnaireResponse, error) {
	return s.questionnaireRepo.GetByID(ctx, strings.TrimSpace(id))
}

func (s *questionnaireService) GetByProject(ctx context.Context, projectID string) (*models.QuestionnaireResponse, error) {
	return s.questionnaireRepo.GetByProject(ctx, strings.TrimSpace(projectID))
}

// UpdateAnswers merges newly answered questions into the draft
func (s *questionnaireService) UpdateAnswers(ctx context.Context, projectID string, req *services.UpdateQuestionnaireRequest) (*models.QuestionnaireResponse, error) {
	q, err := s.questionnaireRepo.GetByProject(ctx, strings.TrimSpace(projectID))
	if err != nil {
		return nil, err
	}
	if q.IsApproved() {
		return nil, domain.NewFieldError("status", "approved questionnaires cannot be edited")
	}
	if err := checkExpected("questionnaire", q.ID, q.UpdatedAt, req.ExpectedUpdatedAt); err != nil {
		return nil, err
	}

	prev := q.UpdatedAt
	if !q.Apply(&req.Answers) {
		return q, nil
	}

	q.Touch()
	if err := q.Validate(); err != nil {
		return nil, err
	}

	if err := s.questionnaireRepo.Update(ctx, q, prev); err != nil {
		return nil, err
	}

	s.logger.Info("questionnaire updated",
		"id", q.ID,
		"project_id", q.ProjectID,
	)

	return q, nil
}

// Approve signs the questionnaire off; approving twice is a no-op
func (s *questionnaireService) Approve(ctx context.Context, projectID string) (*models.QuestionnaireResponse, error) {
	q, err := s.questionnaireRepo.GetByProject(ctx, strings.TrimSpace(projectID))
	if err != nil {
		return nil, err
	}
	if q.IsApproved() {
		return q, nil
	}

	prev := q.UpdatedAt
	q.Status = models.QuestionnaireStatusApproved
	q.Touch()

	if err := s.questionnaireRepo.Update(ctx, q, prev); err != nil {
		return nil, err
	}

	s.logger.Info("questionnaire approved",
		"id", q.ID,
		"project_id", q.ProjectID,
	)

	return q, nil
}
