package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/nytron88/gdd-module-types/internal/domain/models"
	"github.com/nytron88/gdd-module-types/internal/domain/repositories"
)

// Users returns the user repository
func (s *Store) Users() repositories.UserRepository { return userRepo{s} }

// Projects returns the project repository. Delete cascades like the
// ON DELETE CASCADE foreign keys in schema.sql.
func (s *Store) Projects() repositories.ProjectRepository { return projectRepo{s} }

// Questionnaires returns the questionnaire repository
func (s *Store) Questionnaires() repositories.QuestionnaireRepository {
	return questionnaireRepo{s}
}

// Chats returns the chat repository
func (s *Store) Chats() repositories.ChatRepository { return chatRepo{s} }

// Messages returns the message repository
func (s *Store) Messages() repositories.MessageRepository { return messageRepo{s} }

// Documents returns the document repository
func (s *Store) Documents() repositories.DocumentRepository { return documentRepo{s} }

// GeneratedDocuments returns the generated document repository
func (s *Store) GeneratedDocuments() repositories.GeneratedDocumentRepository {
	return generatedRepo{s}
}

// newestFirst orders by a timestamp descending, then id
func newestFirst(a, b time.Time, idA, idB string) bool {
	if a.Equal(b) {
		return idA < idB
	}
	return a.After(b)
}

// oldestFirst orders by a timestamp ascending, then id
func oldestFirst(a, b time.Time, idA, idB string) bool {
	if a.Equal(b) {
		return idA < idB
	}
	return a.Before(b)
}

// users

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.Users[u.ID]; ok {
		return duplicate("user "+u.ID+" already exists", "user", u.ID)
	}
	for _, other := range r.s.data.Users {
		if other.Email == u.Email {
			return duplicate("user with this email already exists", "user", u.ID)
		}
	}
	r.s.data.Users[u.ID] = *u
	return nil
}

func (r userRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.data.Users[id]
	if !ok {
		return nil, notFound("user", id)
	}
	return &u, nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	email = strings.ToLower(email)
	for _, u := range r.s.data.Users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, notFound("user", email)
}

func (r userRepo) Update(_ context.Context, u *models.User, prev time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.data.Users[u.ID]
	if !ok {
		return notFound("user", u.ID)
	}
	if !stored.UpdatedAt.Equal(prev) {
		return stale("user", u.ID)
	}
	for id, other := range r.s.data.Users {
		if id != u.ID && other.Email == u.Email {
			return duplicate("user with this email already exists", "user", u.ID)
		}
	}
	r.s.data.Users[u.ID] = *u
	return nil
}

// projects

type projectRepo struct{ s *Store }

func (r projectRepo) Create(_ context.Context, p *models.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.Projects[p.ID]; ok {
		return duplicate("project "+p.ID+" already exists", "project", p.ID)
	}
	r.s.data.Projects[p.ID] = *p
	return nil
}

func (r projectRepo) GetByID(_ context.Context, id string) (*models.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.data.Projects[id]
	if !ok {
		return nil, notFound("project", id)
	}
	return &p, nil
}

func (r projectRepo) ListByOwner(_ context.Context, ownerID string) ([]models.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.Project{}
	for _, p := range r.s.data.Projects {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return newestFirst(out[i].UpdatedAt, out[j].UpdatedAt, out[i].ID, out[j].ID)
	})
	return out, nil
}

func (r projectRepo) ListIDs(_ context.Context) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	projects := make([]models.Project, 0, len(r.s.data.Projects))
	for _, p := range r.s.data.Projects {
		projects = append(projects, p)
	}
	sort.Slice(projects, func(i, j int) bool {
		return oldestFirst(projects[i].CreatedAt, projects[j].CreatedAt, projects[i].ID, projects[j].ID)
	})
	ids := make([]string, len(projects))
	for i, p := range projects {
		ids[i] = p.ID
	}
	return ids, nil
}

func (r projectRepo) Update(_ context.Context, p *models.Project, prev time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.data.Projects[p.ID]
	if !ok {
		return notFound("project", p.ID)
	}
	if !stored.UpdatedAt.Equal(prev) {
		return stale("project", p.ID)
	}
	r.s.data.Projects[p.ID] = *p
	return nil
}

func (r projectRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.Projects[id]; !ok {
		return notFound("project", id)
	}
	delete(r.s.data.Projects, id)
	for qid, q := range r.s.data.Questionnaires {
		if q.ProjectID == id {
			delete(r.s.data.Questionnaires, qid)
		}
	}
	for cid, c := range r.s.data.Chats {
		if c.ProjectID == id {
			r.s.deleteChatLocked(cid)
		}
	}
	for gid, g := range r.s.data.GeneratedDocuments {
		if g.ProjectID == id {
			delete(r.s.data.GeneratedDocuments, gid)
		}
	}
	return nil
}

func (s *Store) deleteChatLocked(chatID string) {
	delete(s.data.Chats, chatID)
	for mid, m := range s.data.Messages {
		if m.ChatID == chatID {
			delete(s.data.Messages, mid)
		}
	}
	for did, d := range s.data.Documents {
		if d.ChatID == chatID {
			delete(s.data.Documents, did)
		}
	}
}

// questionnaires

type questionnaireRepo struct{ s *Store }

func (r questionnaireRepo) Create(_ context.Context, q *models.QuestionnaireResponse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.Questionnaires[q.ID]; ok {
		return duplicate("questionnaire "+q.ID+" already exists", "questionnaire", q.ID)
	}
	for _, other := range r.s.data.Questionnaires {
		if other.ProjectID == q.ProjectID {
			return duplicate("questionnaire with this project_id already exists", "questionnaire", q.ID)
		}
	}
	r.s.data.Questionnaires[q.ID] = *q
	return nil
}

func (r questionnaireRepo) GetByID(_ context.Context, id string) (*models.QuestionnaireResponse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q, ok := r.s.data.Questionnaires[id]
	if !ok {
		return nil, notFound("questionnaire", id)
	}
	return &q, nil
}

func (r questionnaireRepo) GetByProject(_ context.Context, projectID string) (*models.QuestionnaireResponse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, q := range r.s.data.Questionnaires {
		if q.ProjectID == projectID {
			return &q, nil
		}
	}
	return nil, notFound("questionnaire", projectID)
}

func (r questionnaireRepo) Update(_ context.Context, q *models.QuestionnaireResponse, prev time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.data.Questionnaires[q.ID]
	if !ok {
		return notFound("questionnaire", q.ID)
	}
	if !stored.UpdatedAt.Equal(prev) {
		return stale("questionnaire", q.ID)
	}
	r.s.data.Questionnaires[q.ID] = *q
	return nil
}

// chats

type chatRepo struct{ s *Store }

func (r chatRepo) Create(_ context.Context, c *models.Chat) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.Chats[c.ID]; ok {
		return duplicate("chat "+c.ID+" already exists", "chat", c.ID)
	}
	r.s.data.Chats[c.ID] = *c
	return nil
}

func (r chatRepo) GetByID(_ context.Context, id string) (*models.Chat, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.data.Chats[id]
	if !ok {
		return nil, notFound("chat", id)
	}
	return &c, nil
}

func (r chatRepo) ListByProject(_ context.Context, projectID string) ([]models.Chat, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.Chat{}
	for _, c := range r.s.data.Chats {
		if c.ProjectID == projectID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return newestFirst(out[i].UpdatedAt, out[j].UpdatedAt, out[i].ID, out[j].ID)
	})
	return out, nil
}

func (r chatRepo) Update(_ context.Context, c *models.Chat, prev time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.data.Chats[c.ID]
	if !ok {
		return notFound("chat", c.ID)
	}
	if !stored.UpdatedAt.Equal(prev) {
		return stale("chat", c.ID)
	}
	r.s.data.Chats[c.ID] = *c
	return nil
}

func (r chatRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.Chats[id]; !ok {
		return notFound("chat", id)
	}
	r.s.deleteChatLocked(id)
	return nil
}

// messages

type messageRepo struct{ s *Store }

func (r messageRepo) Append(_ context.Context, m *models.Message) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.Messages[m.ID]; ok {
		return duplicate("message "+m.ID+" already exists", "message", m.ID)
	}
	r.s.data.Messages[m.ID] = *m
	return nil
}

func (r messageRepo) GetByID(_ context.Context, id string) (*models.Message, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.data.Messages[id]
	if !ok {
		return nil, notFound("message", id)
	}
	return &m, nil
}

func (r messageRepo) ListByChat(_ context.Context, chatID string) ([]models.Message, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.Message{}
	for _, m := range r.s.data.Messages {
		if m.ChatID == chatID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return oldestFirst(out[i].CreatedAt, out[j].CreatedAt, out[i].ID, out[j].ID)
	})
	return out, nil
}

func (r messageRepo) LastCreatedAt(_ context.Context, chatID string) (time.Time, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var last time.Time
	for _, m := range r.s.data.Messages {
		if m.ChatID == chatID && m.CreatedAt.After(last) {
			last = m.CreatedAt
		}
	}
	return last, nil
}

// documents

type documentRepo struct{ s *Store }

func (r documentRepo) Create(_ context.Context, d *models.Document) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.Documents[d.ID]; ok {
		return duplicate("document "+d.ID+" already exists", "document", d.ID)
	}
	r.s.data.Documents[d.ID] = *d
	return nil
}

func (r documentRepo) GetByID(_ context.Context, id string) (*models.Document, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.data.Documents[id]
	if !ok {
		return nil, notFound("document", id)
	}
	return &d, nil
}

func (r documentRepo) GetByIDs(_ context.Context, ids []string) ([]models.Document, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.Document{}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if d, ok := r.s.data.Documents[id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, d)
		}
	}
	return out, nil
}

func (r documentRepo) list(match func(models.Document) bool) []models.Document {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.Document{}
	for _, d := range r.s.data.Documents {
		if match(d) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RelevanceScore != out[j].RelevanceScore {
			return out[i].RelevanceScore > out[j].RelevanceScore
		}
		return oldestFirst(out[i].CreatedAt, out[j].CreatedAt, out[i].ID, out[j].ID)
	})
	return out
}

func (r documentRepo) ListByProject(_ context.Context, projectID string) ([]models.Document, error) {
	return r.list(func(d models.Document) bool { return d.ProjectID == projectID }), nil
}

func (r documentRepo) ListByChat(_ context.Context, chatID string) ([]models.Document, error) {
	return r.list(func(d models.Document) bool { return d.ChatID == chatID }), nil
}

func (r documentRepo) Update(_ context.Context, d *models.Document, prev time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.data.Documents[d.ID]
	if !ok {
		return notFound("document", d.ID)
	}
	if !stored.UpdatedAt.Equal(prev) {
		return stale("document", d.ID)
	}
	r.s.data.Documents[d.ID] = *d
	return nil
}

func (r documentRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.Documents[id]; !ok {
		return notFound("document", id)
	}
	delete(r.s.data.Documents, id)
	return nil
}

// generated documents

type generatedRepo struct{ s *Store }

func (r generatedRepo) Create(_ context.Context, g *models.GeneratedDocument) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.GeneratedDocuments[g.ID]; ok {
		return duplicate("generated document "+g.ID+" already exists", "generated_document", g.ID)
	}
	r.s.data.GeneratedDocuments[g.ID] = *g
	return nil
}

func (r generatedRepo) GetByID(_ context.Context, id string) (*models.GeneratedDocument, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g, ok := r.s.data.GeneratedDocuments[id]
	if !ok {
		return nil, notFound("generated_document", id)
	}
	return &g, nil
}

func (r generatedRepo) ListByProject(_ context.Context, projectID string) ([]models.GeneratedDocument, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.GeneratedDocument{}
	for _, g := range r.s.data.GeneratedDocuments {
		if g.ProjectID == projectID {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return newestFirst(out[i].CreatedAt, out[j].CreatedAt, out[i].ID, out[j].ID)
	})
	return out, nil
}

func (r generatedRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.GeneratedDocuments[id]; !ok {
		return notFound("generated_document", id)
	}
	delete(r.s.data.GeneratedDocuments, id)
	return nil
}
