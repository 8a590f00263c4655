package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/nytron88/gdd-module-types/internal/audit"
	"github.com/nytron88/gdd-module-types/internal/config"
	"github.com/nytron88/gdd-module-types/internal/repository/postgres"
	"github.com/nytron88/gdd-module-types/internal/service"

	"github.com/joho/godotenv"
)

func main() {
	once := flag.Bool("once", false, "Run a single audit, print the summary and exit")
	schedule := flag.String("schedule", "", "Cron spec with seconds field (default: AUDIT_SCHEDULE)")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	cfg := config.Load()
	if *schedule == "" {
		*schedule = cfg.AuditSchedule
	}
	if cfg.DatabaseURL == "" {
		log.Fatalf("DATABASE_URL is required")
	}

	logger, closeLog, err := config.NewLogger(cfg, "audit")
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer func() { _ = closeLog() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(cfg.TablePrefix),
		Logger: logger,
	}
	consistency := service.NewConsistencyService(
		postgres.NewProjectRepository(repoConfig),
		postgres.NewQuestionnaireRepository(repoConfig),
		postgres.NewChatRepository(repoConfig),
		postgres.NewMessageRepository(repoConfig),
		postgres.NewDocumentRepository(repoConfig),
		logger,
	)
	scheduler := audit.NewScheduler(consistency, logger, cfg.AuditTimeout)

	if *once {
		summary, err := scheduler.RunOnce(ctx)
		if err != nil {
			log.Fatalf("Audit failed: %v", err)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(summary); err != nil {
			log.Fatalf("Failed to write summary: %v", err)
		}
		log.Printf("Audited %d projects, %d findings", summary.Projects, summary.Findings)
		return
	}

	if err := scheduler.Schedule(*schedule); err != nil {
		log.Fatalf("%v", err)
	}
	scheduler.Start()
	log.Printf("🔎 Consistency audit scheduled (%s, prefix: %s)", *schedule, cfg.TablePrefix)

	<-ctx.Done()
	log.Println("Shutting down, waiting for a running audit to finish...")
	<-scheduler.Stop().Done()
}
