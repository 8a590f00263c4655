package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nytron88/gdd-module-types/internal/domain/models"
	"github.com/nytron88/gdd-module-types/internal/domain/repositories"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresUserRepository implements the UserRepository interface
type PostgresUserRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(config *RepositoryConfig) repositories.UserRepository {
	return &PostgresUserRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

const userColumns = `id, email, name, age, country, language, interests, created_at, updated_at`

func scanUser(row scanner) (*models.User, error) {
	var (
		u         models.User
		interests []string
	)
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.Age,
		&u.Country,
		&u.Language,
		&interests,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	u.Interests = make([]models.Interest, len(interests))
	for i, s := range interests {
		u.Interests[i] = models.Interest(s)
	}
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return &u, nil
}

// Create inserts a new user
func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, r.tables.Users, userColumns)

	interests := textArray(user.Interests)
	if interests == nil {
		interests = []string{}
	}

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		user.Age,
		user.Country,
		user.Language,
		interests,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create user: %w", r.tables.translate(err, "user", user.ID))
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, userColumns, r.tables.Users)

	user, err := scanUser(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFoundOr(err, "get user", "user", id)
	}
	return user, nil
}

// GetByEmail retrieves a user by email
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE email = $1`, userColumns, r.tables.Users)

	user, err := scanUser(GetExecutor(ctx, r.pool).QueryRow(ctx, query, email))
	if err != nil {
		return nil, notFoundOr(err, "get user by email", "user", email)
	}
	return user, nil
}

// Update writes the mutable profile fields under optimistic concurrency
func (r *PostgresUserRepository) Update(ctx context.Context, user *models.User, prevUpdatedAt time.Time) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET email = $1, name = $2, age = $3, country = $4, language = $5,
		    interests = $6, updated_at = $7
		WHERE id = $8 AND updated_at = $9
	`, r.tables.Users)

	interests := textArray(user.Interests)
	if interests == nil {
		interests = []string{}
	}

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		user.Email,
		user.Name,
		user.Age,
		user.Country,
		user.Language,
		interests,
		user.UpdatedAt,
		user.ID,
		prevUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", r.tables.translate(err, "user", user.ID))
	}

	if result.RowsAffected() == 0 {
		return resolveStaleUpdate(ctx, executor, r.tables.Users, "user", user.ID)
	}

	r.logger.Debug("user row updated", "id", user.ID)
	return nil
}
