package services

import (
	"context"
	"time"

	"github.com/nytron88/gdd-module-types/internal/domain/models"
)

// UpdateQuestionnaireRequest carries newly answered questions
type UpdateQuestionnaireRequest struct {
	Answers           models.QuestionnaireAnswers `json:"answers"`
	ExpectedUpdatedAt *time.Time                  `json:"expected_updated_at,omitempty"`
}

// QuestionnaireService handles the intake questionnaire attached to each project
type QuestionnaireService interface {
	GetQuestionnaire(ctx context.Context, id string) (*models.QuestionnaireResponse, error)

	GetByProject(ctx context.Context, projectID string) (*models.QuestionnaireResponse, error)

	// UpdateAnswers applies a partial update. Approved questionnaires are read-only.
	UpdateAnswers(ctx context.Context, projectID string, req *UpdateQuestionnaireRequest) (*models.QuestionnaireResponse, error)

	// Approve moves the questionnaire from draft to approved
	Approve(ctx context.Context, projectID string) (*models.QuestionnaireResponse, error)
}
