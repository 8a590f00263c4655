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

// PostgresChatRepository implements the ChatRepository interface
type PostgresChatRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewChatRepository creates a new chat repository
func NewChatRepository(config *RepositoryConfig) repositories.ChatRepository {
	return &PostgresChatRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const chatColumns = `id, project_id, user_id, title, created_at, updated_at`

func scanChat(row scanner) (*models.Chat, error) {
	var c models.Chat
	if err := row.Scan(&c.ID, &c.ProjectID, &c.UserID, &c.Title, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	return &c, nil
}

// Create inserts a chat
func (r *PostgresChatRepository) Create(ctx context.Context, chat *models.Chat) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, r.tables.Chats, chatColumns)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		chat.ID,
		chat.ProjectID,
		chat.UserID,
		chat.Title,
		chat.CreatedAt,
		chat.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create chat: %w", r.tables.translate(err, "chat", chat.ID))
	}
	return nil
}

// GetByID retrieves a chat by ID
func (r *PostgresChatRepository) GetByID(ctx context.Context, id string) (*models.Chat, error) {
	if !isUUID(id) {
		return nil, &domain.NotFoundError{Entity: "chat", ID: id}
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, chatColumns, r.tables.Chats)

	chat, err := scanChat(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFoundOr(err, "get chat", "chat", id)
	}
	return chat, nil
}

// ListByProject retrieves a project's chats, most recently active first
func (r *PostgresChatRepository) ListByProject(ctx context.Context, projectID string) ([]models.Chat, error) {
	chats := []models.Chat{}
	if !isUUID(projectID) {
		return chats, nil
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE project_id = $1
		ORDER BY updated_at DESC, id
	`, chatColumns, r.tables.Chats)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		chat, err := scanChat(rows)
		if err != nil {
			return nil, fmt.Errorf("scan chat: %w", err)
		}
		chats = append(chats, *chat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chats: %w", err)
	}

	return chats, nil
}

// Update writes the chat title under optimistic concurrency
func (r *PostgresChatRepository) Update(ctx context.Context, chat *models.Chat, prevUpdatedAt time.Time) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, updated_at = $2
		WHERE id = $3 AND updated_at = $4
	`, r.tables.Chats)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, chat.Title, chat.UpdatedAt, chat.ID, prevUpdatedAt)
	if err != nil {
		return fmt.Errorf("update chat: %w", r.tables.translate(err, "chat", chat.ID))
	}

	if result.RowsAffected() == 0 {
		return resolveStaleUpdate(ctx, executor, r.tables.Chats, "chat", chat.ID)
	}
	return nil
}

// Delete removes a chat; its messages and documents cascade
func (r *PostgresChatRepository) Delete(ctx context.Context, id string) error {
	return execDelete(ctx, GetExecutor(ctx, r.pool), r.tables.Chats, "chat", id)
}
