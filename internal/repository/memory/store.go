// Package memory is an in-memory implementation of the repository contracts.
// It backs dry-run seeding and the service tests. Foreign keys are not
// enforced here; the services check them before writing.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/nytron88/gdd-module-types/internal/domain"
	"github.com/nytron88/gdd-module-types/internal/domain/models"
	"github.com/nytron88/gdd-module-types/internal/domain/repositories"
)

// Tables is the raw content of a Store, keyed by primary key
type Tables struct {
	Users              map[string]models.User
	Projects           map[string]models.Project
	Questionnaires     map[string]models.QuestionnaireResponse
	Chats              map[string]models.Chat
	Messages           map[string]models.Message
	Documents          map[string]models.Document
	GeneratedDocuments map[string]models.GeneratedDocument
}

func newTables() Tables {
	return Tables{
		Users:              make(map[string]models.User),
		Projects:           make(map[string]models.Project),
		Questionnaires:     make(map[string]models.QuestionnaireResponse),
		Chats:              make(map[string]models.Chat),
		Messages:           make(map[string]models.Message),
		Documents:          make(map[string]models.Document),
		GeneratedDocuments: make(map[string]models.GeneratedDocument),
	}
}

func (t *Tables) clone() Tables {
	return Tables{
		Users:              maps.Clone(t.Users),
		Projects:           maps.Clone(t.Projects),
		Questionnaires:     maps.Clone(t.Questionnaires),
		Chats:              maps.Clone(t.Chats),
		Messages:           maps.Clone(t.Messages),
		Documents:          maps.Clone(t.Documents),
		GeneratedDocuments: maps.Clone(t.GeneratedDocuments),
	}
}

// Store holds every table behind one mutex
type Store struct {
	mu   sync.Mutex
	data Tables
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{data: newTables()}
}

// Modify runs fn with exclusive access to the raw tables. Changes made by fn
// bypass every check, which makes it the way to stage damaged data.
func (s *Store) Modify(fn func(t *Tables)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.data)
}

// Snapshot returns a copy of the tables
func (s *Store) Snapshot() Tables {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.clone()
}

type txKey struct{}

// ExecTx runs fn. When fn fails, the tables are restored to their state when
// the outermost transaction began. Transactions are not isolated from each other.
func (s *Store) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	before := s.Snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.mu.Lock()
		s.data = before
		s.mu.Unlock()
		return err
	}
	return nil
}

// TransactionManager returns the store as a repositories.TransactionManager
func (s *Store) TransactionManager() repositories.TransactionManager { return s }

func notFound(resource, id string) error {
	return &domain.NotFoundError{Entity: resource, ID: id}
}

func duplicate(msg, resource, id string) error {
	return &domain.ConflictError{Message: msg, ResourceType: resource, ResourceID: id}
}

func stale(resource, id string) error {
	return &domain.ConflictError{
		Message:      resource + " " + id + " was modified concurrently; re-fetch and retry",
		ResourceType: resource,
		ResourceID:   id,
	}
}
