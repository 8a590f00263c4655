package main

import (
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/nytron88/gdd-module-types/internal/config"
	"github.com/nytron88/gdd-module-types/internal/repository/postgres"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}
	if cfg.IsProduction() {
		log.Fatal("refusing to drop tables in the prod environment")
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = db.Close() }() // Error ignored: script exiting

	// children first, so CASCADE only ever removes constraints
	tables := postgres.NewTableNames(cfg.TablePrefix).All()
	var stmts []string
	for _, table := range tables {
		stmts = append(stmts, fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE;", table))
	}

	if _, err := db.Exec(strings.Join(stmts, "\n")); err != nil {
		log.Fatalf("Failed to drop tables: %v", err)
	}

	fmt.Printf("All tables dropped successfully (prefix: %s)\n", cfg.TablePrefix)
}
