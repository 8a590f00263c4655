package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/nytron88/gdd-module-types/internal/config"
	"github.com/nytron88/gdd-module-types/internal/repository/memory"
	"github.com/nytron88/gdd-module-types/internal/repository/postgres"
	"github.com/nytron88/gdd-module-types/internal/seed"

	"github.com/joho/godotenv"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed data")
	fixturePath := flag.String("fixture", "", "Fixture YAML to seed (default: SEED_FIXTURE, else the embedded demo fixture)")
	check := flag.Bool("check", false, "Run the consistency pass over seeded projects and print the reports")
	dryRun := flag.Bool("dry-run", false, "Seed into an in-memory store instead of the database and print the consistency reports")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	cfg := config.Load()
	if *fixturePath == "" {
		*fixturePath = cfg.SeedFixture
	}

	// SAFETY: Prevent destructive operations in production
	if cfg.IsProduction() && *dropTables {
		log.Fatalf("🚫 BLOCKED: Cannot run destructive operations (--drop-tables) in production environment")
	}

	logger, closeLog, err := config.NewLogger(cfg, "seed")
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer func() { _ = closeLog() }()

	ctx := context.Background()

	if *dryRun {
		fixture, err := seed.LoadFixture(*fixturePath)
		if err != nil {
			log.Fatalf("Failed to load fixture: %v", err)
		}
		log.Println("🧪 Dry run: seeding into memory, the database is not touched")
		store := memory.NewStore()
		seeder := seed.NewSeeder(seed.NewServices(seed.MemoryRepositories(store), logger), logger)
		run(ctx, seeder, fixture, true)
		return
	}

	if cfg.DatabaseURL == "" {
		log.Fatalf("DATABASE_URL is required")
	}
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)
	log.Printf("🌱 Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)

	if *dropTables {
		log.Println("🗑️  Dropping all tables...")
		if err := postgres.DropAll(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
	}

	log.Println("📋 Ensuring database schema is up to date...")
	if err := postgres.Migrate(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}

	if *schemaOnly {
		log.Println("✅ Schema setup complete (schema-only mode)")
		return
	}

	fixture, err := seed.LoadFixture(*fixturePath)
	if err != nil {
		log.Fatalf("Failed to load fixture: %v", err)
	}

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	repos := seed.Repositories{
		Users:              postgres.NewUserRepository(repoConfig),
		Projects:           postgres.NewProjectRepository(repoConfig),
		Questionnaires:     postgres.NewQuestionnaireRepository(repoConfig),
		Chats:              postgres.NewChatRepository(repoConfig),
		Messages:           postgres.NewMessageRepository(repoConfig),
		Documents:          postgres.NewDocumentRepository(repoConfig),
		GeneratedDocuments: postgres.NewGeneratedDocumentRepository(repoConfig),
		Tx:                 postgres.NewTransactionManager(repoConfig),
	}
	seeder := seed.NewSeeder(seed.NewServices(repos, logger), logger)
	run(ctx, seeder, fixture, *check)
}

// run seeds fixture and, when check is set, prints the consistency reports as JSON
func run(ctx context.Context, seeder *seed.Seeder, fixture *seed.Fixture, check bool) {
	result, err := seeder.Seed(ctx, fixture)
	if err != nil {
		log.Fatalf("Failed to seed fixture: %v", err)
	}
	log.Printf("✅ Seeded %d users, %d projects, %d chats, %d documents, %d messages",
		len(result.Users), len(result.Projects), len(result.Chats), len(result.Documents), result.Messages)

	if !check {
		return
	}

	reports, err := seeder.Check(ctx, result)
	if err != nil {
		log.Fatalf("Consistency check failed: %v", err)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(reports); err != nil {
		log.Fatalf("Failed to write reports: %v", err)
	}
}
