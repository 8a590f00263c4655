package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nytron88/gdd-module-types/internal/domain/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	maxPoolConns = 25
	minPoolConns = 5
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds environment-prefixed table names
type TableNames struct {
	Prefix             string
	Users              string
	Projects           string
	Questionnaires     string
	Chats              string
	Messages           string
	Documents          string
	GeneratedDocuments string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Prefix:             prefix,
		Users:              prefix + "users",
		Projects:           prefix + "projects",
		Questionnaires:     prefix + "questionnaire_responses",
		Chats:              prefix + "chats",
		Messages:           prefix + "messages",
		Documents:          prefix + "documents",
		GeneratedDocuments: prefix + "generated_documents",
	}
}

// All returns every table, children before parents (safe drop order)
func (t *TableNames) All() []string {
	return []string{
		t.Messages,
		t.Documents,
		t.GeneratedDocuments,
		t.Chats,
		t.Questionnaires,
		t.Projects,
		t.Users,
	}
}

// CreateConnectionPool creates a pgx pool and pings the database.
//
// PgBouncer in transaction pooling mode (port 6543 on hosted Postgres poolers)
// does not support prepared statements. When that port is detected and the
// connection string did not choose a mode explicitly, the pool switches to
// QueryExecModeCacheDescribe, which keeps the extended protocol (typed JSONB
// and array parameters) without creating named prepared statements.
// Set ?default_query_exec_mode=... in the URL to override.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = maxPoolConns
	config.MinConns = minPoolConns

	if config.ConnConfig.Port == 6543 && config.ConnConfig.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		slog.Debug("auto-configured cache_describe mode for PgBouncer compatibility", "port", 6543)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// GetExecutor returns the transaction carried by ctx, or the pool when there is none
func GetExecutor(ctx context.Context, pool *pgxpool.Pool) repositories.DBTX {
	if tx := repositories.TxFromContext(ctx); tx != nil {
		return tx
	}
	return pool
}
