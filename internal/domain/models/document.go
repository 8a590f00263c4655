package models

import (
	"strings"
	"time"

	"github.com/nytron88/gdd-module-types/internal/config"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Relevance score bounds. Scores are normalised; 1.0 is most relevant to the project.
const (
	MinRelevanceScore = 0.0
	MaxRelevanceScore = 1.0
)

// Document is a reference file (assumed PDF) uploaded into one chat of one
// project. The binary lives in object storage under S3Key.
type Document struct {
	ID             string    `json:"id" db:"id"`
	UserID         string    `json:"user_id" db:"user_id"`
	ProjectID      string    `json:"project_id" db:"project_id"`
	ChatID         string    `json:"chat_id" db:"chat_id"`
	Name           string    `json:"name" db:"name"`
	RelevanceScore float64   `json:"relevance_score" db:"relevance_score"`
	S3Key          string    `json:"s3_key" db:"s3_key"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// NewDocument builds a validated document
func NewDocument(userID, projectID, chatID, name string, relevance float64, s3Key string) (*Document, error) {
	now := Now()
	d := &Document{
		ID:             NewID(),
		UserID:         strings.TrimSpace(userID),
		ProjectID:      strings.TrimSpace(projectID),
		ChatID:         strings.TrimSpace(chatID),
		Name:           strings.TrimSpace(name),
		RelevanceScore: relevance,
		S3Key:          strings.TrimSpace(s3Key),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Touch advances UpdatedAt; call on every successful mutation
func (d *Document) Touch() {
	d.UpdatedAt = NextTimestamp(d.UpdatedAt)
}

func (d *Document) Validate() error {
	return toDomainError(validation.ValidateStruct(d,
		validation.Field(&d.ID, validation.Required, is.UUID),
		validation.Field(&d.UserID, validation.Required, notBlank, validation.Length(1, config.MaxExternalIDLength)),
		validation.Field(&d.ProjectID, validation.Required, is.UUID),
		validation.Field(&d.ChatID, validation.Required, is.UUID),
		validation.Field(&d.Name, validation.Required, notBlank, validation.Length(1, config.MaxDocumentNameLength)),
		validation.Field(&d.RelevanceScore, finite, validation.Min(MinRelevanceScore), validation.Max(MaxRelevanceScore)),
		validation.Field(&d.S3Key, validation.Required, notBlank, validation.Length(1, config.MaxStorageKeyLength)),
		validation.Field(&d.CreatedAt, validation.Required),
		validation.Field(&d.UpdatedAt, validation.Required, validation.By(notBefore(d.CreatedAt))),
	))
}
