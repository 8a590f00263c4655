package models

import (
	"strings"
	"time"

	"github.com/nytron88/gdd-module-types/internal/config"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Chat is one conversation thread inside a project
type Chat struct {
	ID        string    `json:"id" db:"id"`
	ProjectID string    `json:"project_id" db:"project_id"`
	UserID    string    `json:"user_id" db:"user_id"` // who started it
	Title     *string   `json:"title,omitempty" db:"title"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NewChat builds a validated chat
func NewChat(projectID, userID string, title *string) (*Chat, error) {
	now := Now()
	c := &Chat{
		ID:        NewID(),
		ProjectID: strings.TrimSpace(projectID),
		UserID:    strings.TrimSpace(userID),
		Title:     optionalString(title),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Touch advances UpdatedAt; call on every successful mutation
func (c *Chat) Touch() {
	c.UpdatedAt = NextTimestamp(c.UpdatedAt)
}

func (c *Chat) Validate() error {
	return toDomainError(validation.ValidateStruct(c,
		validation.Field(&c.ID, validation.Required, is.UUID),
		validation.Field(&c.ProjectID, validation.Required, is.UUID),
		validation.Field(&c.UserID, validation.Required, notBlank, validation.Length(1, config.MaxExternalIDLength)),
		validation.Field(&c.Title, notBlank, validation.Length(0, config.MaxChatTitleLength)),
		validation.Field(&c.CreatedAt, validation.Required),
		validation.Field(&c.UpdatedAt, validation.Required, validation.By(notBefore(c.CreatedAt))),
	))
}
