package models

import (
	"errors"
	"strings"
	"time"

	"github.com/nytron88/gdd-module-types/internal/config"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Attachment is a weak reference carried on a message: a document id, a raw
// object-storage key, or both. Neither is checked against stored records.
type Attachment struct {
	DocumentID *string `json:"document_id,omitempty"`
	S3Key      *string `json:"s3_key,omitempty"`
	MIME       *string `json:"mime,omitempty"`
}

// Message is one entry in a chat. Messages are append-only and ordered by CreatedAt.
type Message struct {
	ID          string       `json:"id" db:"id"`
	ChatID      string       `json:"chat_id" db:"chat_id"`
	Role        Role         `json:"role" db:"role"`
	Content     string       `json:"content" db:"content"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	Attachments []Attachment `json:"attachments,omitempty" db:"attachments"`
}

// NewMessage builds a validated message
func NewMessage(chatID string, role Role, content string, attachments []Attachment) (*Message, error) {
	m := &Message{
		ID:          NewID(),
		ChatID:      strings.TrimSpace(chatID),
		Role:        role,
		Content:     content,
		CreatedAt:   Now(),
		Attachments: normalizeAttachments(attachments),
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// DocumentIDs returns the document ids referenced by the message's attachments
func (m *Message) DocumentIDs() []string {
	var ids []string
	for _, a := range m.Attachments {
		if a.DocumentID != nil {
			ids = append(ids, *a.DocumentID)
		}
	}
	return ids
}

func (m *Message) Validate() error {
	return toDomainError(validation.ValidateStruct(m,
		validation.Field(&m.ID, validation.Required, is.UUID),
		validation.Field(&m.ChatID, validation.Required, is.UUID),
		validation.Field(&m.Role, validation.Required, validation.In(roleValues()...).Error("must be one of user, assistant, system")),
		// content may be empty only when the message carries attachments
		validation.Field(&m.Content,
			validation.When(len(m.Attachments) == 0, validation.Required, notBlank),
			validation.Length(0, config.MaxMessageContentLength),
		),
		validation.Field(&m.CreatedAt, validation.Required),
		validation.Field(&m.Attachments,
			validation.Length(0, config.MaxAttachmentsPerMessage),
			validation.Each(validation.By(validateAttachment)),
		),
	))
}

func validateAttachment(value interface{}) error {
	a, ok := value.(Attachment)
	if !ok {
		return errors.New("must be an attachment")
	}
	return validation.ValidateStruct(&a,
		validation.Field(&a.DocumentID,
			validation.When(a.S3Key == nil, validation.Required.Error("document_id or s3_key is required")),
			is.UUID,
		),
		validation.Field(&a.S3Key, notBlank, validation.Length(0, config.MaxStorageKeyLength)),
		validation.Field(&a.MIME, notBlank, validation.Length(0, 255)),
	)
}

// normalizeAttachments drops blank optional values so absent is the only
// "no value" state, and returns nil for an empty list.
func normalizeAttachments(in []Attachment) []Attachment {
	if len(in) == 0 {
		return nil
	}
	out := make([]Attachment, len(in))
	for i, a := range in {
		out[i] = Attachment{
			DocumentID: optionalString(a.DocumentID),
			S3Key:      optionalString(a.S3Key),
			MIME:       optionalString(a.MIME),
		}
	}
	return out
}
