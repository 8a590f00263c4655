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

// PostgresProjectRepository implements the ProjectRepository interface
type PostgresProjectRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(config *RepositoryConfig) repositories.ProjectRepository {
	return &PostgresProjectRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const projectColumns = `id, owner_id, title, description, status, questionnaire_id, tags, created_at, updated_at`

func scanProject(row scanner) (*models.Project, error) {
	var (
		p      models.Project
		status string
	)
	err := row.Scan(
		&p.ID,
		&p.OwnerID,
		&p.Title,
		&p.Description,
		&status,
		&p.QuestionnaireID,
		&p.Tags,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Status = models.ProjectStatus(status)
	if len(p.Tags) == 0 {
		p.Tags = nil
	}
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return &p, nil
}

// Create inserts a project
func (r *PostgresProjectRepository) Create(ctx context.Context, project *models.Project) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, r.tables.Projects, projectColumns)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		project.ID,
		project.OwnerID,
		project.Title,
		project.Description,
		string(project.Status),
		project.QuestionnaireID,
		project.Tags,
		project.CreatedAt,
		project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create project: %w", r.tables.translate(err, "project", project.ID))
	}

	return nil
}

// GetByID retrieves a project by ID
func (r *PostgresProjectRepository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	if !isUUID(id) {
		return nil, &domain.NotFoundError{Entity: "project", ID: id}
	}
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, projectColumns, r.tables.Projects)

	project, err := scanProject(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFoundOr(err, "get project", "project", id)
	}
	return project, nil
}

// ListByOwner retrieves all projects for a user, ordered by updated_at DESC
func (r *PostgresProjectRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Project, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE owner_id = $1
		ORDER BY updated_at DESC, id
	`, projectColumns, r.tables.Projects)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, *project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}

	return projects, nil
}

// ListIDs returns every project id, oldest first
func (r *PostgresProjectRepository) ListIDs(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf(`SELECT id FROM %s ORDER BY created_at, id`, r.tables.Projects)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list project ids: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan project id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate project ids: %w", err)
	}

	return ids, nil
}

// Update writes the mutable project fields under optimistic concurrency
func (r *PostgresProjectRepository) Update(ctx context.Context, project *models.Project, prevUpdatedAt time.Time) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, description = $2, status = $3, tags = $4, updated_at = $5
		WHERE id = $6 AND updated_at = $7
	`, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		project.Title,
		project.Description,
		string(project.Status),
		project.Tags,
		project.UpdatedAt,
		project.ID,
		prevUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", r.tables.translate(err, "project", project.ID))
	}

	if result.RowsAffected() == 0 {
		return resolveStaleUpdate(ctx, executor, r.tables.Projects, "project", project.ID)
	}

	return nil
}

// Delete removes a project; chats, messages, documents, generated documents
// and the questionnaire cascade
func (r *PostgresProjectRepository) Delete(ctx context.Context, id string) error {
	return execDelete(ctx, GetExecutor(ctx, r.pool), r.tables.Projects, "project", id)
}
