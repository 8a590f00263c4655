package models

import (
	"strings"
	"time"

	"github.com/nytron88/gdd-module-types/internal/config"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Project is a user's piece of work. Every project owns exactly one
// QuestionnaireResponse, referenced by QuestionnaireID.
type Project struct {
	ID              string        `json:"id" db:"id"`
	OwnerID         string        `json:"owner_id" db:"owner_id"`
	Title           string        `json:"title" db:"title"`
	Description     *string       `json:"description,omitempty" db:"description"`
	Status          ProjectStatus `json:"status" db:"status"`
	QuestionnaireID string        `json:"questionnaire_id" db:"questionnaire_id"`
	Tags            []string      `json:"tags,omitempty" db:"tags"`
	CreatedAt       time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at" db:"updated_at"`
}

// NewProject builds a draft project together with its draft questionnaire.
// The two records reference each other and must be persisted together.
func NewProject(ownerID, title string, description *string, tags []string) (*Project, *QuestionnaireResponse, error) {
	now := Now()
	p := &Project{
		ID:              NewID(),
		OwnerID:         strings.TrimSpace(ownerID),
		Title:           strings.TrimSpace(title),
		Description:     optionalString(description),
		Status:          ProjectStatusDraft,
		QuestionnaireID: NewID(),
		Tags:            trimmed(tags),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	q := &QuestionnaireResponse{
		ID:        p.QuestionnaireID,
		ProjectID: p.ID,
		Status:    QuestionnaireStatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := p.Validate(); err != nil {
		return nil, nil, err
	}
	if err := q.Validate(); err != nil {
		return nil, nil, err
	}
	return p, q, nil
}

// Touch advances UpdatedAt; call on every successful mutation
func (p *Project) Touch() {
	p.UpdatedAt = NextTimestamp(p.UpdatedAt)
}

func (p *Project) Validate() error {
	return toDomainError(validation.ValidateStruct(p,
		validation.Field(&p.ID, validation.Required, is.UUID),
		validation.Field(&p.OwnerID, validation.Required, notBlank, validation.Length(1, config.MaxExternalIDLength)),
		validation.Field(&p.Title, validation.Required, notBlank, validation.Length(1, config.MaxProjectTitleLength)),
		validation.Field(&p.Description, notBlank, validation.Length(0, config.MaxDescriptionLength)),
		validation.Field(&p.Status, validation.Required, validation.In(projectStatusValues()...).Error("must be one of draft, in_progress, ready, archived")),
		validation.Field(&p.QuestionnaireID, validation.Required, is.UUID),
		validation.Field(&p.Tags,
			validation.Each(validation.Required, notBlank, validation.Length(1, config.MaxTagLength)),
			validation.By(uniqueStrings[string]),
		),
		validation.Field(&p.CreatedAt, validation.Required),
		validation.Field(&p.UpdatedAt, validation.Required, validation.By(notBefore(p.CreatedAt))),
	))
}
