// Package audit runs the consistency pass over every project on a cron schedule.
package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nytron88/gdd-module-types/internal/config"
	"github.com/nytron88/gdd-module-types/internal/domain/services"

	"github.com/robfig/cron/v3"
)

// DefaultSchedule is the schedule used when AUDIT_SCHEDULE is unset
const DefaultSchedule = config.DefaultAuditSchedule

// Summary aggregates one audit run
type Summary struct {
	StartedAt time.Time                    `json:"started_at"`
	Duration  time.Duration                `json:"duration"`
	Projects  int                          `json:"projects"`
	Findings  int                          `json:"findings"`
	ByKind    map[services.FindingKind]int `json:"by_kind"`
	Reports   []*services.Report           `json:"reports"`
}

// Scheduler wraps a cron runner around ConsistencyService.CheckAll
type Scheduler struct {
	cron    *cron.Cron
	checker services.ConsistencyService
	logger  *slog.Logger
	timeout time.Duration
}

// NewScheduler creates a scheduler. A run still in progress when the next one
// is due causes that tick to be skipped. timeout <= 0 means no limit.
func NewScheduler(checker services.ConsistencyService, logger *slog.Logger, timeout time.Duration) *Scheduler {
	cl := cronLogger{logger: logger.With("component", "audit")}
	return &Scheduler{
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		checker: checker,
		logger:  logger,
		timeout: timeout,
	}
}

// Schedule registers the audit under a six-field cron spec
func (s *Scheduler) Schedule(spec string) error {
	_, err := s.cron.AddFunc(spec, func() {
		if _, err := s.RunOnce(context.Background()); err != nil {
			s.logger.Error("scheduled audit failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid audit schedule %q: %w", spec, err)
	}
	return nil
}

// Start runs the scheduler in its own goroutine
func (s *Scheduler) Start() {
	s.cron.Start()
	for _, e := range s.cron.Entries() {
		s.logger.Info("audit scheduled", "next", e.Next)
	}
}

// Stop stops scheduling new runs. The returned context is done once a run
// already in progress has finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// RunOnce performs a single audit immediately
func (s *Scheduler) RunOnce(ctx context.Context) (*Summary, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	started := time.Now()
	reports, err := s.checker.CheckAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("audit: %w", err)
	}

	summary := &Summary{
		StartedAt: started.UTC(),
		Duration:  time.Since(started),
		Projects:  len(reports),
		ByKind:    make(map[services.FindingKind]int),
		Reports:   reports,
	}
	for _, r := range reports {
		for _, f := range r.Findings {
			summary.Findings++
			summary.ByKind[f.Kind]++
			s.logger.Warn("dangling reference",
				"kind", f.Kind,
				"project_id", f.ProjectID,
				"chat_id", f.ChatID,
				"message_id", f.MessageID,
				"document_id", f.DocumentID,
				"questionnaire_id", f.QuestionnaireID,
			)
		}
	}

	return summary, nil
}

// cronLogger adapts slog to cron.Logger
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, append([]interface{}{"error", err}, keysAndValues...)...)
}
