package service

import (
	"io"
	"log/slog"

	"github.com/nytron88/gdd-module-types/internal/domain/services"
	"github.com/nytron88/gdd-module-types/internal/repository/memory"
)

// testEnv wires every service onto one in-memory store
type testEnv struct {
	store         *memory.Store
	users         services.UserService
	projects      services.ProjectService
	questionnaire services.QuestionnaireService
	chats         services.ChatService
	messages      services.MessageService
	documents     services.DocumentService
	generated     services.GeneratedDocumentService
	consistency   services.ConsistencyService
}

func newTestEnv() *testEnv {
	store := memory.NewStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	userRepo := store.Users()
	projectRepo := store.Projects()
	questionnaireRepo := store.Questionnaires()
	chatRepo := store.Chats()
	messageRepo := store.Messages()
	docRepo := store.Documents()
	tx := store.TransactionManager()
	refs := NewReferenceValidator(userRepo, projectRepo, chatRepo)

	return &testEnv{
		store:         store,
		users:         NewUserService(userRepo, logger),
		projects:      NewProjectService(projectRepo, questionnaireRepo, tx, refs, logger),
		questionnaire: NewQuestionnaireService(questionnaireRepo, logger),
		chats:         NewChatService(chatRepo, refs, logger),
		messages:      NewMessageService(messageRepo, tx, refs, logger),
		documents:     NewDocumentService(docRepo, refs, logger),
		generated:     NewGeneratedDocumentService(store.GeneratedDocuments(), refs, logger),
		consistency:   NewConsistencyService(projectRepo, questionnaireRepo, chatRepo, messageRepo, docRepo, logger),
	}
}

// tables returns a copy of the stored rows
func (e *testEnv) tables() memory.Tables {
	return e.store.Snapshot()
}

// deleteQuestionnaire removes a questionnaire behind the services' back
func (e *testEnv) deleteQuestionnaire(id string) {
	e.store.Modify(func(t *memory.Tables) { delete(t.Questionnaires, id) })
}

// repointQuestionnaire makes a questionnaire claim a different project
func (e *testEnv) repointQuestionnaire(id, projectID string) {
	e.store.Modify(func(t *memory.Tables) {
		q := t.Questionnaires[id]
		q.ProjectID = projectID
		t.Questionnaires[id] = q
	})
}
