package repositories

import (
	"context"
	"time"

	"github.com/nytron88/gdd-module-types/internal/domain/models"
)

// QuestionnaireRepository defines data access operations for questionnaire responses
type QuestionnaireRepository interface {
	// Create inserts a questionnaire response (inside the project's creation transaction)
	Create(ctx context.Context, q *models.QuestionnaireResponse) error

	GetByID(ctx context.Context, id string) (*models.QuestionnaireResponse, error)

	// GetByProject retrieves the questionnaire whose project_id matches
	GetByProject(ctx context.Context, projectID string) (*models.QuestionnaireResponse, error)

	// Update writes status and all answers if the stored updated_at still
	// equals prevUpdatedAt, otherwise returns a ConflictError
	Update(ctx context.Context, q *models.QuestionnaireResponse, prevUpdatedAt time.Time) error
}
