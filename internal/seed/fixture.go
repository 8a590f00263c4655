package seed

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/nytron88/gdd-module-types/internal/domain/models"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures/*.yaml
var fixtureFiles embed.FS

// DefaultFixture names the embedded fixture used when no path is given
const DefaultFixture = "fixtures/demo.yaml"

// Fixture is a seed data set. Records refer to each other by fixture-local
// keys, which the seeder maps to generated ids.
type Fixture struct {
	Users    []FixtureUser    `yaml:"users"`
	Projects []FixtureProject `yaml:"projects"`
}

type FixtureUser struct {
	Key       string            `yaml:"key"`
	ID        string            `yaml:"id"` // identity provider subject
	Email     string            `yaml:"email"`
	Name      string            `yaml:"name"`
	Age       int               `yaml:"age"`
	Country   string            `yaml:"country"`
	Language  string            `yaml:"language"`
	Interests []models.Interest `yaml:"interests"`
}

type FixtureProject struct {
	Key                string                     `yaml:"key"`
	Owner              string                     `yaml:"owner"` // user key
	Title              string                     `yaml:"title"`
	Description        *string                    `yaml:"description"`
	Tags               []string                   `yaml:"tags"`
	Status             models.ProjectStatus       `yaml:"status"` // target status, reached through the lifecycle
	Questionnaire      FixtureQuestionnaire       `yaml:"questionnaire"`
	Chats              []FixtureChat              `yaml:"chats"`
	GeneratedDocuments []FixtureGeneratedDocument `yaml:"generated_documents"`
}

type FixtureQuestionnaire struct {
	Approved bool                        `yaml:"approved"`
	Answers  models.QuestionnaireAnswers `yaml:"answers"`
}

type FixtureChat struct {
	Key       string            `yaml:"key"`
	User      string            `yaml:"user"` // user key
	Title     *string           `yaml:"title"`
	Documents []FixtureDocument `yaml:"documents"`
	Messages  []FixtureMessage  `yaml:"messages"`
}

type FixtureDocument struct {
	Key            string  `yaml:"key"`
	User           string  `yaml:"user"` // user key
	Name           string  `yaml:"name"`
	RelevanceScore float64 `yaml:"relevance_score"`
	S3Key          string  `yaml:"s3_key"`
}

type FixtureMessage struct {
	Role        string              `yaml:"role"` // legacy names are normalised on load
	Content     string              `yaml:"content"`
	Attachments []FixtureAttachment `yaml:"attachments"`
}

// FixtureAttachment references a fixture document by key, or carries a raw
// document id / storage key. A bare string is shorthand for {document: key}.
type FixtureAttachment struct {
	Document   string  `yaml:"document"`
	DocumentID *string `yaml:"document_id"`
	S3Key      *string `yaml:"s3_key"`
	MIME       *string `yaml:"mime"`
}

// UnmarshalYAML accepts either the mapping form or a bare document key
func (a *FixtureAttachment) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		a.Document = node.Value
		return nil
	}
	type plain FixtureAttachment
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*a = FixtureAttachment(p)
	return nil
}

type FixtureGeneratedDocument struct {
	S3Key     string  `yaml:"s3_key"`
	S3URL     *string `yaml:"s3_url"`
	PageCount int     `yaml:"page_count"`
}

// LoadFixture reads a fixture from path, or the embedded default when path is empty
func LoadFixture(path string) (*Fixture, error) {
	var (
		data []byte
		err  error
	)
	if path == "" {
		path = DefaultFixture
		data, err = fixtureFiles.ReadFile(path)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	f, err := ParseFixture(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// ParseFixture decodes and checks a fixture. Unknown keys are rejected and
// every key reference must resolve within the fixture.
func ParseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("fixture is empty")
		}
		return nil, fmt.Errorf("failed to unmarshal fixture: %w", err)
	}
	if err := f.resolve(); err != nil {
		return nil, err
	}
	return &f, nil
}

// resolve normalises message roles and checks that keys are unique and that
// every reference names a declared key
func (f *Fixture) resolve() error {
	users := make(map[string]bool, len(f.Users))
	for _, u := range f.Users {
		if u.Key == "" {
			return fmt.Errorf("user %q: key is required", u.Email)
		}
		if users[u.Key] {
			return fmt.Errorf("duplicate user key %q", u.Key)
		}
		users[u.Key] = true
	}

	projects := make(map[string]bool, len(f.Projects))
	chats := make(map[string]bool)
	docs := make(map[string]bool)
	for _, p := range f.Projects {
		if p.Key == "" || projects[p.Key] {
			return fmt.Errorf("project %q: key missing or duplicated", p.Key)
		}
		projects[p.Key] = true
		if !users[p.Owner] {
			return fmt.Errorf("project %q: unknown owner %q", p.Key, p.Owner)
		}
		if p.Status != "" && !p.Status.IsValid() {
			return fmt.Errorf("project %q: unknown status %q", p.Key, p.Status)
		}

		for _, c := range p.Chats {
			if c.Key == "" || chats[c.Key] {
				return fmt.Errorf("chat %q: key missing or duplicated", c.Key)
			}
			chats[c.Key] = true
			if !users[c.User] {
				return fmt.Errorf("chat %q: unknown user %q", c.Key, c.User)
			}
			for _, d := range c.Documents {
				if d.Key == "" || docs[d.Key] {
					return fmt.Errorf("document %q: key missing or duplicated", d.Key)
				}
				docs[d.Key] = true
				if d.User != "" && !users[d.User] {
					return fmt.Errorf("document %q: unknown user %q", d.Key, d.User)
				}
			}
		}
	}

	// attachments may point at documents of any project, so check them last
	for pi := range f.Projects {
		for ci := range f.Projects[pi].Chats {
			chat := &f.Projects[pi].Chats[ci]
			for mi := range chat.Messages {
				msg := &chat.Messages[mi]
				role, err := models.ParseRole(msg.Role)
				if err != nil {
					return fmt.Errorf("chat %q message %d: %w", chat.Key, mi, err)
				}
				msg.Role = string(role)

				for _, a := range msg.Attachments {
					if a.Document != "" && !docs[a.Document] {
						return fmt.Errorf("chat %q message %d: unknown document %q", chat.Key, mi, a.Document)
					}
				}
			}
		}
	}

	return nil
}
