package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/nytron88/gdd-module-types/internal/domain"
	"github.com/nytron88/gdd-module-types/internal/domain/models"
	"github.com/nytron88/gdd-module-types/internal/domain/services"
)

// Services bundles the services the seeder writes through
type Services struct {
	Users              services.UserService
	Projects           services.ProjectService
	Questionnaires     services.QuestionnaireService
	Chats              services.ChatService
	Messages           services.MessageService
	Documents          services.DocumentService
	GeneratedDocuments services.GeneratedDocumentService
	Consistency        services.ConsistencyService
}

// Result maps fixture keys to the ids they were stored under
type Result struct {
	Users              map[string]string
	Projects           map[string]string
	Chats              map[string]string
	Documents          map[string]string
	Messages           int
	GeneratedDocuments int
}

// Seeder writes fixtures through the service layer so every domain rule applies
type Seeder struct {
	svc    Services
	logger *slog.Logger
}

// NewSeeder creates a new seeder
func NewSeeder(svc Services, logger *slog.Logger) *Seeder {
	return &Seeder{
		svc:    svc,
		logger: logger,
	}
}

// Seed stores a fixture. Users that already exist are reused; everything else
// is created fresh. Documents are created before any message so attachments
// can name documents from any project.
func (s *Seeder) Seed(ctx context.Context, f *Fixture) (*Result, error) {
	res := &Result{
		Users:     make(map[string]string),
		Projects:  make(map[string]string),
		Chats:     make(map[string]string),
		Documents: make(map[string]string),
	}

	for _, u := range f.Users {
		id, err := s.ensureUser(ctx, u)
		if err != nil {
			return nil, err
		}
		res.Users[u.Key] = id
	}

	for _, p := range f.Projects {
		if err := s.seedProject(ctx, p, res); err != nil {
			return nil, fmt.Errorf("project %q: %w", p.Key, err)
		}
	}

	for _, p := range f.Projects {
		for _, c := range p.Chats {
			if err := s.seedMessages(ctx, c, res); err != nil {
				return nil, fmt.Errorf("chat %q: %w", c.Key, err)
			}
		}
		for _, g := range p.GeneratedDocuments {
			_, err := s.svc.GeneratedDocuments.CreateGeneratedDocument(ctx, &services.CreateGeneratedDocumentRequest{
				ProjectID: res.Projects[p.Key],
				S3Key:     g.S3Key,
				S3URL:     g.S3URL,
				PageCount: g.PageCount,
			})
			if err != nil {
				return nil, fmt.Errorf("project %q generated document: %w", p.Key, err)
			}
			res.GeneratedDocuments++
		}
	}

	s.logger.Info("fixture seeded",
		"users", len(res.Users),
		"projects", len(res.Projects),
		"chats", len(res.Chats),
		"documents", len(res.Documents),
		"messages", res.Messages,
		"generated_documents", res.GeneratedDocuments,
	)

	return res, nil
}

// Check runs the consistency pass over every seeded project
func (s *Seeder) Check(ctx context.Context, res *Result) ([]*services.Report, error) {
	keys := make([]string, 0, len(res.Projects))
	for key := range res.Projects {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	reports := make([]*services.Report, 0, len(keys))
	for _, key := range keys {
		report, err := s.svc.Consistency.CheckProject(ctx, res.Projects[key])
		if err != nil {
			return nil, fmt.Errorf("check project %q: %w", key, err)
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func (s *Seeder) ensureUser(ctx context.Context, u FixtureUser) (string, error) {
	existing, err := s.svc.Users.GetUser(ctx, u.ID)
	if err == nil {
		s.logger.Debug("user already present", "id", existing.ID)
		return existing.ID, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return "", fmt.Errorf("user %q: %w", u.Key, err)
	}

	user, err := s.svc.Users.CreateUser(ctx, &services.CreateUserRequest{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Age:       u.Age,
		Country:   u.Country,
		Language:  u.Language,
		Interests: u.Interests,
	})
	if err != nil {
		return "", fmt.Errorf("user %q: %w", u.Key, err)
	}
	return user.ID, nil
}

func (s *Seeder) seedProject(ctx context.Context, p FixtureProject, res *Result) error {
	project, err := s.svc.Projects.CreateProject(ctx, &services.CreateProjectRequest{
		OwnerID:     res.Users[p.Owner],
		Title:       p.Title,
		Description: p.Description,
		Tags:        p.Tags,
	})
	if err != nil {
		return err
	}
	res.Projects[p.Key] = project.ID

	if _, err := s.svc.Questionnaires.UpdateAnswers(ctx, project.ID, &services.UpdateQuestionnaireRequest{
		Answers: p.Questionnaire.Answers,
	}); err != nil {
		return fmt.Errorf("questionnaire: %w", err)
	}
	if p.Questionnaire.Approved {
		if _, err := s.svc.Questionnaires.Approve(ctx, project.ID); err != nil {
			return fmt.Errorf("approve questionnaire: %w", err)
		}
	}

	for _, status := range statusPath(p.Status) {
		if _, err := s.svc.Projects.SetStatus(ctx, project.ID, status); err != nil {
			return fmt.Errorf("set status %s: %w", status, err)
		}
	}

	for _, c := range p.Chats {
		chat, err := s.svc.Chats.CreateChat(ctx, &services.CreateChatRequest{
			ProjectID: project.ID,
			UserID:    res.Users[c.User],
			Title:     c.Title,
		})
		if err != nil {
			return fmt.Errorf("chat %q: %w", c.Key, err)
		}
		res.Chats[c.Key] = chat.ID

		for _, d := range c.Documents {
			owner := d.User
			if owner == "" {
				owner = c.User
			}
			doc, err := s.svc.Documents.CreateDocument(ctx, &services.CreateDocumentRequest{
				UserID:         res.Users[owner],
				ProjectID:      project.ID,
				ChatID:         chat.ID,
				Name:           d.Name,
				RelevanceScore: d.RelevanceScore,
				S3Key:          d.S3Key,
			})
			if err != nil {
				return fmt.Errorf("document %q: %w", d.Key, err)
			}
			res.Documents[d.Key] = doc.ID
		}
	}

	return nil
}

func (s *Seeder) seedMessages(ctx context.Context, c FixtureChat, res *Result) error {
	for i, m := range c.Messages {
		attachments := make([]models.Attachment, 0, len(m.Attachments))
		for _, a := range m.Attachments {
			att := models.Attachment{DocumentID: a.DocumentID, S3Key: a.S3Key, MIME: a.MIME}
			if a.Document != "" {
				id := res.Documents[a.Document]
				att.DocumentID = &id
			}
			attachments = append(attachments, att)
		}

		_, err := s.svc.Messages.AppendMessage(ctx, &services.AppendMessageRequest{
			ChatID:      res.Chats[c.Key],
			Role:        models.Role(m.Role),
			Content:     m.Content,
			Attachments: attachments,
		})
		if err != nil {
			return fmt.Errorf("message %d: %w", i, err)
		}
		res.Messages++
	}
	return nil
}

// statusPath lists the transitions that take a new draft project to target
func statusPath(target models.ProjectStatus) []models.ProjectStatus {
	switch target {
	case models.ProjectStatusInProgress:
		return []models.ProjectStatus{models.ProjectStatusInProgress}
	case models.ProjectStatusReady:
		return []models.ProjectStatus{models.ProjectStatusInProgress, models.ProjectStatusReady}
	case models.ProjectStatusArchived:
		return []models.ProjectStatus{models.ProjectStatusArchived}
	default:
		return nil
	}
}
