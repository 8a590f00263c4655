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

// projectService implements the ProjectService interface
type projectService struct {
	projectRepo       repositories.ProjectRepository
	questionnaireRepo repositories.QuestionnaireRepository
	txManager         repositories.TransactionManager
	refs              services.ReferenceValidator
	logger            *slog.Logger
}

// NewProjectService creates a new project service
func NewProjectService(
	projectRepo repositories.ProjectRepository,
	questionnaireRepo repositories.QuestionnaireRepository,
	txManager repositories.TransactionManager,
	refs services.ReferenceValidator,
	logger *slog.Logger,
) services.ProjectService {
	return &projectService{
		projectRepo:       projectRepo,
		questionnaireRepo: questionnaireRepo,
		txManager:         txManager,
		refs:              refs,
		logger:            logger,
	}
}

// CreateProject creates a draft project and its questionnaire in one transaction
func (s *projectService) CreateProject(ctx context.Context, req *services.CreateProjectRequest) (*models.Project, error) {
	project, questionnaire, err := models.NewProject(req.OwnerID, req.Title, req.Description, req.Tags)
	if err != nil {
		return nil, err
	}

	err = s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if _, err := s.refs.RequireUser(ctx, "owner_id", project.OwnerID); err != nil {
			return err
		}
		if err := s.projectRepo.Create(ctx, project); err != nil {
			return err
		}
		return s.questionnaireRepo.Create(ctx, questionnaire)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("project created",
		"id", project.ID,
		"title", project.Title,
		"owner_id", project.OwnerID,
		"questionnaire_id", project.QuestionnaireID,
	)

	return project, nil
}

// GetProject retrieves a project by ID
func (s *projectService) GetProject(ctx context.Context, id string) (*models.Project, error) {
	return s.projectRepo.GetByID(ctx, strings.TrimSpace(id))
}

// ListProjects retrieves all projects for an owner
func (s *projectService) ListProjects(ctx context.Context, ownerID string) ([]models.Project, error) {
	return s.projectRepo.ListByOwner(ctx, strings.TrimSpace(ownerID))
}

// UpdateProject updates title, description and tags
func (s *projectService) UpdateProject(ctx context.Context, id string, req *services.UpdateProjectRequest) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if err := checkExpected("project", project.ID, project.UpdatedAt, req.ExpectedUpdatedAt); err != nil {
		return nil, err
	}
	prev := project.UpdatedAt

	if req.Title != nil {
		project.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		project.Description = nil
		if d := strings.TrimSpace(*req.Description); d != "" {
			project.Description = &d
		}
	}
	if req.Tags != nil {
		project.Tags = nil
		for _, tag := range *req.Tags {
			if t := strings.TrimSpace(tag); t != "" {
				project.Tags = append(project.Tags, t)
			}
		}
	}

	project.Touch()
	if err := project.Validate(); err != nil {
		return nil, err
	}

	if err := s.projectRepo.Update(ctx, project, prev); err != nil {
		return nil, err
	}

	s.logger.Info("project updated",
		"id", project.ID,
		"title", project.Title,
	)

	return project, nil
}

// SetStatus moves a project to status, enforcing the lifecycle
func (s *projectService) SetStatus(ctx context.Context, id string, status models.ProjectStatus) (*models.Project, error) {
	if !status.IsValid() {
		return nil, domain.NewFieldError("status", fmt.Sprintf("%q is not one of draft, in_progress, ready, archived", status))
	}

	var project *models.Project
	var from models.ProjectStatus
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		p, err := s.projectRepo.GetByID(ctx, strings.TrimSpace(id))
		if err != nil {
			return err
		}
		project, from = p, p.Status

		if p.Status == status {
			return nil
		}
		if !p.Status.CanTransitionTo(status) {
			return domain.NewFieldError("status", fmt.Sprintf("cannot move from %s to %s", p.Status, status))
		}
		if p.Status == models.ProjectStatusDraft {
			if err := s.requireQuestionnaire(ctx, p); err != nil {
				return err
			}
		}

		prev := p.UpdatedAt
		p.Status = status
		p.Touch()
		return s.projectRepo.Update(ctx, p, prev)
	})
	if err != nil {
		return nil, err
	}

	if from != status {
		s.logger.Info("project status changed",
			"id", project.ID,
			"from", from,
			"to", status,
		)
	}

	return project, nil
}

// requireQuestionnaire checks the project's questionnaire exists and points back at it
func (s *projectService) requireQuestionnaire(ctx context.Context, p *models.Project) error {
	q, err := s.questionnaireRepo.GetByID(ctx, p.QuestionnaireID)
	if errors.Is(err, domain.ErrNotFound) {
		return &domain.ReferentialError{Field: "questionnaire_id", Entity: "questionnaire", ID: p.QuestionnaireID}
	}
	if err != nil {
		return fmt.Errorf("load questionnaire: %w", err)
	}
	if q.ProjectID != p.ID {
		return domain.NewFieldError("questionnaire_id", fmt.Sprintf("questionnaire %s belongs to project %s", q.ID, q.ProjectID))
	}
	return nil
}

// DeleteProject deletes a project and everything scoped to it
func (s *projectService) DeleteProject(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if err := s.projectRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("project deleted",
		"id", id,
	)

	return nil
}
