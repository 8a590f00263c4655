package postgres

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

// SchemaSQL returns the DDL with the table prefix substituted
func (t *TableNames) SchemaSQL() string {
	return strings.ReplaceAll(schemaSQL, "${prefix}", t.Prefix)
}

// Migrate creates any missing tables, constraints and indexes. It is idempotent.
func Migrate(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	// no arguments: pgx sends this over the simple protocol, so the
	// multi-statement script (including the DO block) runs as one batch
	if _, err := pool.Exec(ctx, tables.SchemaSQL()); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// DropAll drops every table owned by this schema
func DropAll(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	for _, table := range tables.All() {
		if _, err := pool.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
	}
	return nil
}
