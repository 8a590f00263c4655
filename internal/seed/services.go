package seed

import (
	"log/slog"

	"github.com/nytron88/gdd-module-types/internal/domain/repositories"
	"github.com/nytron88/gdd-module-types/internal/repository/memory"
	"github.com/nytron88/gdd-module-types/internal/service"
)

// Repositories bundles the storage the seeding services run on
type Repositories struct {
	Users              repositories.UserRepository
	Projects           repositories.ProjectRepository
	Questionnaires     repositories.QuestionnaireRepository
	Chats              repositories.ChatRepository
	Messages           repositories.MessageRepository
	Documents          repositories.DocumentRepository
	GeneratedDocuments repositories.GeneratedDocumentRepository
	Tx                 repositories.TransactionManager
}

// NewServices builds every service the seeder needs on top of repos
func NewServices(repos Repositories, logger *slog.Logger) Services {
	refs := service.NewReferenceValidator(repos.Users, repos.Projects, repos.Chats)
	return Services{
		Users:              service.NewUserService(repos.Users, logger),
		Projects:           service.NewProjectService(repos.Projects, repos.Questionnaires, repos.Tx, refs, logger),
		Questionnaires:     service.NewQuestionnaireService(repos.Questionnaires, logger),
		Chats:              service.NewChatService(repos.Chats, refs, logger),
		Messages:           service.NewMessageService(repos.Messages, repos.Tx, refs, logger),
		Documents:          service.NewDocumentService(repos.Documents, refs, logger),
		GeneratedDocuments: service.NewGeneratedDocumentService(repos.GeneratedDocuments, refs, logger),
		Consistency: service.NewConsistencyService(
			repos.Projects, repos.Questionnaires, repos.Chats, repos.Messages, repos.Documents, logger,
		),
	}
}

// MemoryRepositories exposes an in-memory store as Repositories
func MemoryRepositories(store *memory.Store) Repositories {
	return Repositories{
		Users:              store.Users(),
		Projects:           store.Projects(),
		Questionnaires:     store.Questionnaires(),
		Chats:              store.Chats(),
		Messages:           store.Messages(),
		Documents:          store.Documents(),
		GeneratedDocuments: store.GeneratedDocuments(),
		Tx:                 store.TransactionManager(),
	}
}
