package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nytron88/gdd-module-types/internal/domain"
	"github.com/nytron88/gdd-module-types/internal/domain/models"
	"github.com/nytron88/gdd-module-types/internal/domain/repositories"
	"github.com/nytron88/gdd-module-types/internal/domain/services"
)

// consistencyService implements the ConsistencyService interface
type consistencyService struct {
	projectRepo       repositories.ProjectRepository
	questionnaireRepo repositories.QuestionnaireRepository
	chatRepo          repositories.ChatRepository
	messageRepo       repositories.MessageRepository
	docRepo           repositories.DocumentRepository
	logger            *slog.Logger
}

// NewConsistencyService creates a new consistency checker
func NewConsistencyService(
	projectRepo repositories.ProjectRepository,
	questionnaireRepo repositories.QuestionnaireRepository,
	chatRepo repositories.ChatRepository,
	messageRepo repositories.MessageRepository,
	docRepo repositories.DocumentRepository,
	logger *slog.Logger,
) services.ConsistencyService {
	return &consistencyService{
		projectRepo:       projectRepo,
		questionnaireRepo: questionnaireRepo,
		chatRepo:          chatRepo,
		messageRepo:       messageRepo,
		docRepo:           docRepo,
		logger:            logger,
	}
}

// CheckChat inspects every attachment in one chat
func (s *consistencyService) CheckChat(ctx context.Context, chatID string) (*services.Report, error) {
	chat, err := s.chatRepo.GetByID(ctx, strings.TrimSpace(chatID))
	if err != nil {
		return nil, err
	}

	report := &services.Report{ProjectID: chat.ProjectID, Findings: []services.Finding{}}
	if err := s.checkChat(ctx, chat, report); err != nil {
		return nil, err
	}

	s.logReport(report, "chat_id", chat.ID)
	return report, nil
}

// CheckProject inspects the questionnaire link and every chat in a project
func (s *consistencyService) CheckProject(ctx context.Context, projectID string) (*services.Report, error) {
	project, err := s.projectRepo.GetByID(ctx, strings.TrimSpace(projectID))
	if err != nil {
		return nil, err
	}

	report := &services.Report{ProjectID: project.ID, Findings: []services.Finding{}}
	if err := s.checkQuestionnaire(ctx, project, report); err != nil {
		return nil, err
	}

	chats, err := s.chatRepo.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	for i := range chats {
		if err := s.checkChat(ctx, &chats[i], report); err != nil {
			return nil, err
		}
	}

	s.logReport(report, "project_id", project.ID)
	return report, nil
}

// CheckAll checks every project. A project deleted between listing and
// checking is skipped.
func (s *consistencyService) CheckAll(ctx context.Context) ([]*services.Report, error) {
	ids, err := s.projectRepo.ListIDs(ctx)
	if err != nil {
		return nil, err
	}

	reports := make([]*services.Report, 0, len(ids))
	findings := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		report, err := s.CheckProject(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("check project %s: %w", id, err)
		}
		findings += len(report.Findings)
		reports = append(reports, report)
	}

	s.logger.Info("consistency audit finished",
		"projects", len(reports),
		"findings", findings,
	)

	return reports, nil
}

func (s *consistencyService) checkQuestionnaire(ctx context.Context, project *models.Project, report *services.Report) error {
	q, err := s.questionnaireRepo.GetByID(ctx, project.QuestionnaireID)
	if errors.Is(err, domain.ErrNotFound) {
		report.Findings = append(report.Findings, services.Finding{
			Kind:            services.FindingMissingQuestionnaire,
			ProjectID:       project.ID,
			QuestionnaireID: project.QuestionnaireID,
			Detail:          "project references a questionnaire that does not exist",
		})
		return nil
	}
	if err != nil {
		return fmt.Errorf("load questionnaire: %w", err)
	}

	if q.ProjectID != project.ID {
		report.Findings = append(report.Findings, services.Finding{
			Kind:            services.FindingQuestionnaireMismatch,
			ProjectID:       project.ID,
			QuestionnaireID: q.ID,
			Detail:          fmt.Sprintf("questionnaire points at project %s", q.ProjectID),
		})
	}
	return nil
}

func (s *consistencyService) checkChat(ctx context.Context, chat *models.Chat, report *services.Report) error {
	messages, err := s.messageRepo.ListByChat(ctx, chat.ID)
	if err != nil {
		return err
	}
	report.ChatsChecked++
	report.MessagesChecked += len(messages)

	var ids []string
	seen := make(map[string]struct{})
	for i := range messages {
		for _, id := range messages[i].DocumentIDs() {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}
	if len(ids) == 0 {
		return nil
	}

	docs, err := s.docRepo.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	byID := make(map[string]*models.Document, len(docs))
	for i := range docs {
		byID[docs[i].ID] = &docs[i]
	}

	for i := range messages {
		msg := &messages[i]
		for _, id := range msg.DocumentIDs() {
			doc, ok := byID[id]
			switch {
			case !ok:
				report.Findings = append(report.Findings, services.Finding{
					Kind:       services.FindingMissingDocument,
					ProjectID:  chat.ProjectID,
					ChatID:     chat.ID,
					MessageID:  msg.ID,
					DocumentID: id,
					Detail:     "attachment references a document that does not exist",
				})
			case doc.ProjectID != chat.ProjectID:
				report.Findings = append(report.Findings, services.Finding{
					Kind:       services.FindingForeignDocument,
					ProjectID:  chat.ProjectID,
					ChatID:     chat.ID,
					MessageID:  msg.ID,
					DocumentID: id,
					Detail:     fmt.Sprintf("document belongs to project %s", doc.ProjectID),
				})
			}
		}
	}
	return nil
}

func (s *consistencyService) logReport(report *services.Report, scopeKey, scopeID string) {
	if report.OK() {
		s.logger.Debug("consistency check passed",
			scopeKey, scopeID,
			"chats", report.ChatsChecked,
			"messages", report.MessagesChecked,
		)
		return
	}
	s.logger.Warn("consistency check found dangling references",
		scopeKey, scopeID,
		"chats", report.ChatsChecked,
		"messages", report.MessagesChecked,
		"findings", len(report.Findings),
	)
}
