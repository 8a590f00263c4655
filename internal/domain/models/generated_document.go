package models

import (
	"strings"
	"time"

	"github.com/nytron88/gdd-module-types/internal/config"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// GeneratedDocument is an artifact (assumed PDF) produced from a project's
// state. A project accumulates one per export; they are never edited.
type GeneratedDocument struct {
	ID        string    `json:"id" db:"id"`
	ProjectID string    `json:"project_id" db:"project_id"`
	S3Key     string    `json:"s3_key" db:"s3_key"`
	S3URL     *string   `json:"s3_url,omitempty" db:"s3_url"`
	PageCount int       `json:"page_count" db:"page_count"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// NewGeneratedDocument builds a validated generated document
func NewGeneratedDocument(projectID, s3Key string, s3URL *string, pageCount int) (*GeneratedDocument, error) {
	g := &GeneratedDocument{
		ID:        NewID(),
		ProjectID: strings.TrimSpace(projectID),
		S3Key:     strings.TrimSpace(s3Key),
		S3URL:     optionalString(s3URL),
		PageCount: pageCount,
		CreatedAt: Now(),
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *GeneratedDocument) Validate() error {
	return toDomainError(validation.ValidateStruct(g,
		validation.Field(&g.ID, validation.Required, is.UUID),
		validation.Field(&g.ProjectID, validation.Required, is.UUID),
		validation.Field(&g.S3Key, validation.Required, notBlank, validation.Length(1, config.MaxStorageKeyLength)),
		validation.Field(&g.S3URL, is.RequestURL, validation.Length(0, config.MaxStorageURLLength)),
		validation.Field(&g.PageCount, validation.Required, validation.Min(1)),
		validation.Field(&g.CreatedAt, validation.Required),
	))
}
