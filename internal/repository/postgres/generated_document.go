package postgres

import (
	"context"
	"fmt"

	"github.com/nytron88/gdd-module-types/internal/domain"
	"github.com/nytron88/gdd-module-types/internal/domain/models"
	"github.com/nytron88/gdd-module-types/internal/domain/repositories"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresGeneratedDocumentRepository implements the GeneratedDocumentRepository interface
type PostgresGeneratedDocumentRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewGeneratedDocumentRepository creates a new generated document repository
func NewGeneratedDocumentRepository(config *RepositoryConfig) repositories.GeneratedDocumentRepository {
	return &PostgresGeneratedDocumentRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const generatedDocumentColumns = `id, project_id, s3_key, s3_url, page_count, created_at`

func scanGeneratedDocument(row scanner) (*models.GeneratedDocument, error) {
	var g models.GeneratedDocument
	if err := row.Scan(&g.ID, &g.ProjectID, &g.S3Key, &g.S3URL, &g.PageCount, &g.CreatedAt); err != nil {
		return nil, err
	}
	g.CreatedAt = g.CreatedAt.UTC()
	return &g, nil
}

// Create inserts a generated document
func (r *PostgresGeneratedDocumentRepository) Create(ctx context.Context, doc *models.GeneratedDocument) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, r.tables.GeneratedDocuments, generatedDocumentColumns)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		doc.ID,
		doc.ProjectID,
		doc.S3Key,
		doc.S3URL,
		doc.PageCount,
		doc.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create generated document: %w", r.tables.translate(err, "generated_document", doc.ID))
	}
	return nil
}

// GetByID retrieves a generated document by ID
func (r *PostgresGeneratedDocumentRepository) GetByID(ctx context.Context, id string) (*models.GeneratedDocument, error) {
	if !isUUID(id) {
		return nil, &domain.NotFoundError{Entity: "generated_document", ID: id}
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, generatedDocumentColumns, r.tables.GeneratedDocuments)

	doc, err := scanGeneratedDocument(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFoundOr(err, "get generated document", "generated_document", id)
	}
	return doc, nil
}

// ListByProject retrieves a project's generated documents, newest first
func (r *PostgresGeneratedDocumentRepository) ListByProject(ctx context.Context, projectID string) ([]models.GeneratedDocument, error) {
	docs := []models.GeneratedDocument{}
	if !isUUID(projectID) {
		return docs, nil
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE project_id = $1
		ORDER BY created_at DESC, id
	`, generatedDocumentColumns, r.tables.GeneratedDocuments)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list generated documents: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		doc, err := scanGeneratedDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan generated document: %w", err)
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate generated documents: %w", err)
	}

	return docs, nil
}

// Delete removes a generated document record (the stored object is not touched)
func (r *PostgresGeneratedDocumentRepository) Delete(ctx context.Context, id string) error {
	return execDelete(ctx, GetExecutor(ctx, r.pool), r.tables.GeneratedDocuments, "generated_document", id)
}
