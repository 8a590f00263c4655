package services

import "context"

// FindingKind classifies a consistency finding
type FindingKind string

const (
	// attachment names a document id with no stored document
	FindingMissingDocument FindingKind = "missing_document"
	// attachment names a document stored under a different project
	FindingForeignDocument FindingKind = "foreign_document"
	// project's questionnaire_id does not resolve
	FindingMissingQuestionnaire FindingKind = "missing_questionnaire"
	// questionnaire exists but its project_id points elsewhere
	FindingQuestionnaireMismatch FindingKind = "questionnaire_mismatch"
)

// Finding is one dangling or inconsistent reference
type Finding struct {
	Kind            FindingKind `json:"kind"`
	ProjectID       string      `json:"project_id"`
	ChatID          string      `json:"chat_id,omitempty"`
	MessageID       string      `json:"message_id,omitempty"`
	DocumentID      string      `json:"document_id,omitempty"`
	QuestionnaireID string      `json:"questionnaire_id,omitempty"`
	Detail          string      `json:"detail"`
}

// Report summarizes a consistency pass
type Report struct {
	ProjectID       string    `json:"project_id"`
	ChatsChecked    int       `json:"chats_checked"`
	MessagesChecked int       `json:"messages_checked"`
	Findings        []Finding `json:"findings"`
}

// OK reports whether the pass found nothing
func (r *Report) OK() bool { return len(r.Findings) == 0 }

// ConsistencyService flags weak references that no longer (or never did)
// resolve. It only reads; findings never block writes.
type ConsistencyService interface {
	CheckChat(ctx context.Context, chatID string) (*Report, error)
	CheckProject(ctx context.Context, projectID string) (*Report, error)

	// CheckAll runs CheckProject over every stored project
	CheckAll(ctx context.Context) ([]*Report, error)
}
