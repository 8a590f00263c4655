package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/nytron88/gdd-module-types/internal/domain"
	"github.com/nytron88/gdd-module-types/internal/domain/models"
	"github.com/nytron88/gdd-module-types/internal/domain/repositories"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresQuestionnaireRepository implements the QuestionnaireRepository interface
type PostgresQuestionnaireRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewQuestionnaireRepository creates a new questionnaire repository
func NewQuestionnaireRepository(config *RepositoryConfig) repositories.QuestionnaireRepository {
	return &PostgresQuestionnaireRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const questionnaireColumns = `id, project_id, status,
	issue_statement, who_is_affected, goals_outcomes, needs_addressed, partners,
	offerings, resources, income_model, costs_funding, timeline, budget_amount,
	key_milestones, risks_mitigations, target_population, stakeholders,
	created_at, updated_at`

func scanQuestionnaire(row scanner) (*models.QuestionnaireResponse, error) {
	var (
		q      models.QuestionnaireResponse
		status string
	)
	err := row.Scan(
		&q.ID,
		&q.ProjectID,
		&status,
		&q.IssueStatement,
		&q.WhoIsAffected,
		&q.GoalsOutcomes,
		&q.NeedsAddressed,
		&q.Partners,
		&q.Offerings,
		&q.Resources,
		&q.IncomeModel,
		&q.CostsFunding,
		&q.Timeline,
		&q.BudgetAmount,
		&q.KeyMilestones,
		&q.RisksMitigations,
		&q.TargetPopulation,
		&q.Stakeholders,
		&q.CreatedAt,
		&q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	q.Status = models.QuestionnaireStatus(status)
	q.CreatedAt = q.CreatedAt.UTC()
	q.UpdatedAt = q.UpdatedAt.UTC()
	return &q, nil
}

// answerArgs lists the answer columns in questionnaireColumns order
func answerArgs(q *models.QuestionnaireResponse) []any {
	return []any{
		q.IssueStatement,
		q.WhoIsAffected,
		q.GoalsOutcomes,
		q.NeedsAddressed,
		q.Partners,
		q.Offerings,
		q.Resources,
		q.IncomeModel,
		q.CostsFunding,
		q.Timeline,
		q.BudgetAmount,
		q.KeyMilestones,
		q.RisksMitigations,
		q.TargetPopulation,
		q.Stakeholders,
	}
}

// Create inserts a questionnaire response
func (r *PostgresQuestionnaireRepository) Create(ctx context.Context, q *models.QuestionnaireResponse) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`, r.tables.Questionnaires, questionnaireColumns)

	args := []any{q.ID, q.ProjectID, string(q.Status)}
	args = append(args, answerArgs(q)...)
	args = append(args, q.CreatedAt, q.UpdatedAt)

	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("create questionnaire: %w", r.tables.translate(err, "questionnaire", q.ID))
	}
	return nil
}

// GetByID retrieves a questionnaire response by ID
func (r *PostgresQuestionnaireRepository) GetByID(ctx context.Context, id string) (*models.QuestionnaireResponse, error) {
	if !isUUID(id) {
		return nil, &domain.NotFoundError{Entity: "questionnaire", ID: id}
	}
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, questionnaireColumns, r.tables.Questionnaires)

	q, err := scanQuestionnaire(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFoundOr(err, "get questionnaire", "questionnaire", id)
	}
	return q, nil
}

// GetByProject retrieves the questionnaire response belonging to a project
func (r *PostgresQuestionnaireRepository) GetByProject(ctx context.Context, projectID string) (*models.QuestionnaireResponse, error) {
	if !isUUID(projectID) {
		return nil, &domain.NotFoundError{Entity: "questionnaire", ID: projectID}
	}
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE project_id = $1`, questionnaireColumns, r.tables.Questionnaires)

	q, err := scanQuestionnaire(GetExecutor(ctx, r.pool).QueryRow(ctx, query, projectID))
	if err != nil {
		return nil, notFoundOr(err, "get questionnaire by project", "questionnaire", projectID)
	}
	return q, nil
}

// Update writes status and answers under optimistic concurrency
func (r *PostgresQuestionnaireRepository) Update(ctx context.Context, q *models.QuestionnaireResponse, prevUpdatedAt time.Time) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET status = $1,
		    issue_statement = $2, who_is_affected = $3, goals_outcomes = $4,
		    needs_addressed = $5, partners = $6, offerings = $7, resources = $8,
		    income_model = $9, costs_funding = $10, timeline = $11,
		    budget_amount = $12, key_milestones = $13, risks_mitigations = $14,
		    target_population = $15, stakeholders = $16,
		    updated_at = $17
		WHERE id = $18 AND updated_at = $19
	`, r.tables.Questionnaires)

	args := []any{string(q.Status)}
	args = append(args, answerArgs(q)...)
	args = append(args, q.UpdatedAt, q.ID, prevUpdatedAt)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update questionnaire: %w", r.tables.translate(err, "questionnaire", q.ID))
	}

	if result.RowsAffected() == 0 {
		return resolveStaleUpdate(ctx, executor, r.tables.Questionnaires, "questionnaire", q.ID)
	}
	return nil
}
