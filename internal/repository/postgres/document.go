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

// PostgresDocumentRepository implements the DocumentRepository interface
type PostgresDocumentRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(config *RepositoryConfig) repositories.DocumentRepository {
	return &PostgresDocumentRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const documentColumns = `id, user_id, project_id, chat_id, name, relevance_score, s3_key, created_at, updated_at`

func scanDocument(row scanner) (*models.Document, error) {
	var d models.Document
	err := row.Scan(
		&d.ID,
		&d.UserID,
		&d.ProjectID,
		&d.ChatID,
		&d.Name,
		&d.RelevanceScore,
		&d.S3Key,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	d.CreatedAt = d.CreatedAt.UTC()
	d.UpdatedAt = d.UpdatedAt.UTC()
	return &d, nil
}

// Create inserts a document
func (r *PostgresDocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, r.tables.Documents, documentColumns)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		doc.ID,
		doc.UserID,
		doc.ProjectID,
		doc.ChatID,
		doc.Name,
		doc.RelevanceScore,
		doc.S3Key,
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create document: %w", r.tables.translate(err, "document", doc.ID))
	}
	return nil
}

// GetByID retrieves a document by ID
func (r *PostgresDocumentRepository) GetByID(ctx context.Context, id string) (*models.Document, error) {
	if !isUUID(id) {
		return nil, &domain.NotFoundError{Entity: "document", ID: id}
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, documentColumns, r.tables.Documents)

	doc, err := scanDocument(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFoundOr(err, "get document", "document", id)
	}
	return doc, nil
}

// GetByIDs retrieves the documents that exist among ids
func (r *PostgresDocumentRepository) GetByIDs(ctx context.Context, ids []string) ([]models.Document, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if isUUID(id) {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return []models.Document{}, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = ANY($1::uuid[])`, documentColumns, r.tables.Documents)
	return r.list(ctx, query, valid)
}

// ListByProject retrieves a project's documents, most relevant first
func (r *PostgresDocumentRepository) ListByProject(ctx context.Context, projectID string) ([]models.Document, error) {
	if !isUUID(projectID) {
		return []models.Document{}, nil
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE project_id = $1
		ORDER BY relevance_score DESC, created_at, id
	`, documentColumns, r.tables.Documents)
	return r.list(ctx, query, projectID)
}

// ListByChat retrieves a chat's documents, most relevant first
func (r *PostgresDocumentRepository) ListByChat(ctx context.Context, chatID string) ([]models.Document, error) {
	if !isUUID(chatID) {
		return []models.Document{}, nil
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE chat_id = $1
		ORDER BY relevance_score DESC, created_at, id
	`, documentColumns, r.tables.Documents)
	return r.list(ctx, query, chatID)
}

func (r *PostgresDocumentRepository) list(ctx context.Context, query string, args ...any) ([]models.Document, error) {
	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	docs := []models.Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}

	return docs, nil
}

// Update writes name and relevance under optimistic concurrency
func (r *PostgresDocumentRepository) Update(ctx context.Context, doc *models.Document, prevUpdatedAt time.Time) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, relevance_score = $2, updated_at = $3
		WHERE id = $4 AND updated_at = $5
	`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, doc.Name, doc.RelevanceScore, doc.UpdatedAt, doc.ID, prevUpdatedAt)
	if err != nil {
		return fmt.Errorf("update document: %w", r.tables.translate(err, "document", doc.ID))
	}

	if result.RowsAffected() == 0 {
		return resolveStaleUpdate(ctx, executor, r.tables.Documents, "document", doc.ID)
	}
	return nil
}

// Delete removes a document. Message attachments that referenced it are left
// in place (weak references) and show up in consistency reports.
func (r *PostgresDocumentRepository) Delete(ctx context.Context, id string) error {
	return execDelete(ctx, GetExecutor(ctx, r.pool), r.tables.Documents, "document", id)
}
