package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nytron88/gdd-module-types/internal/domain"
	"github.com/nytron88/gdd-module-types/internal/domain/models"
	"github.com/nytron88/gdd-module-types/internal/domain/repositories"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresMessageRepository implements the MessageRepository interface
type PostgresMessageRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(config *RepositoryConfig) repositories.MessageRepository {
	return &PostgresMessageRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const messageColumns = `id, chat_id, role, content, attachments, created_at`

func scanMessage(row scanner) (*models.Message, error) {
	var (
		m           models.Message
		role        string
		attachments []byte
	)
	if err := row.Scan(&m.ID, &m.ChatID, &role, &m.Content, &attachments, &m.CreatedAt); err != nil {
		return nil, err
	}

	m.Role = models.Role(role)
	if len(attachments) > 0 {
		if err := json.Unmarshal(attachments, &m.Attachments); err != nil {
			return nil, fmt.Errorf("decode attachments for message %s: %w", m.ID, err)
		}
		if len(m.Attachments) == 0 {
			m.Attachments = nil
		}
	}
	m.CreatedAt = m.CreatedAt.UTC()
	return &m, nil
}

// Append inserts a message
func (r *PostgresMessageRepository) Append(ctx context.Context, msg *models.Message) error {
	attachments, err := jsonParam(msg.Attachments)
	if err != nil {
		return fmt.Errorf("encode attachments: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, r.tables.Messages, messageColumns)

	_, err = GetExecutor(ctx, r.pool).Exec(ctx, query,
		msg.ID,
		msg.ChatID,
		string(msg.Role),
		msg.Content,
		attachments,
		msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append message: %w", r.tables.translate(err, "message", msg.ID))
	}
	return nil
}

// GetByID retrieves a message by ID
func (r *PostgresMessageRepository) GetByID(ctx context.Context, id string) (*models.Message, error) {
	if !isUUID(id) {
		return nil, &domain.NotFoundError{Entity: "message", ID: id}
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, messageColumns, r.tables.Messages)

	msg, err := scanMessage(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFoundOr(err, "get message", "message", id)
	}
	return msg, nil
}

// ListByChat retrieves a chat's messages in conversation order
func (r *PostgresMessageRepository) ListByChat(ctx context.Context, chatID string) ([]models.Message, error) {
	messages := []models.Message{}
	if !isUUID(chatID) {
		return messages, nil
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE chat_id = $1
		ORDER BY created_at, id
	`, messageColumns, r.tables.Messages)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, chatID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, *msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}

	return messages, nil
}

// LastCreatedAt returns the newest message timestamp in a chat (zero if empty)
func (r *PostgresMessageRepository) LastCreatedAt(ctx context.Context, chatID string) (time.Time, error) {
	if !isUUID(chatID) {
		return time.Time{}, nil
	}

	query := fmt.Sprintf(`SELECT MAX(created_at) FROM %s WHERE chat_id = $1`, r.tables.Messages)

	var last *time.Time
	if err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, chatID).Scan(&last); err != nil {
		return time.Time{}, fmt.Errorf("last message time: %w", err)
	}
	if last == nil {
		return time.Time{}, nil
	}
	return last.UTC(), nil
}
