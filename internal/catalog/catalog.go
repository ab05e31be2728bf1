package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/splax/hostrix/internal/domain"
)

//go:embed projects.yaml
var defaultFixture []byte

// ErrNotFound indicates a project id is not part of the catalog.
var ErrNotFound = errors.New("catalog: project not found")

var (
	errMissingID   = errors.New("project id is required")
	errMissingName = errors.New("project name is required")
)

type fixture struct {
	Projects []fixtureProject `yaml:"projects"`
}

type fixtureProject struct {
	ID           string    `yaml:"id"`
	Name         string    `yaml:"name"`
	URL          string    `yaml:"url"`
	Status       string    `yaml:"status"`
	Type         string    `yaml:"type"`
	LastDeployed time.Time `yaml:"last_deployed"`
	Environment  string    `yaml:"environment"`
}

// Catalog is a read-only list of mock projects.
type Catalog struct {
	projects []domain.Project
	byID     map[string]int
}

// Default returns the embedded mock projects. Entries without a
// last_deployed timestamp are stamped with now.
func Default(now time.Time) (*Catalog, error) {
	return Parse(defaultFixture, now)
}

// Load reads projects from a YAML file, falling back to the embedded
// fixture when path is empty.
func Load(path string, now time.Time) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default(now)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mock projects: %w", err)
	}
	return Parse(data, now)
}

// Parse decodes a YAML fixture document.
func Parse(data []byte, now time.Time) (*Catalog, error) {
	var doc fixture
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode mock projects: %w", err)
	}
	c := &Catalog{
		projects: make([]domain.Project, 0, len(doc.Projects)),
		byID:     make(map[string]int, len(doc.Projects)),
	}
	for i, item := range doc.Projects {
		project, err := item.toDomain(now)
		if err != nil {
			return nil, fmt.Errorf("project %d: %w", i, err)
		}
		if _, dup := c.byID[project.ID]; dup {
			return nil, fmt.Errorf("project %d: duplicate id %q", i, project.ID)
		}
		c.byID[project.ID] = len(c.projects)
		c.projects = append(c.projects, project)
	}
	return c, nil
}

func (p fixtureProject) toDomain(now time.Time) (domain.Project, error) {
	id := strings.TrimSpace(p.ID)
	if id == "" {
		return domain.Project{}, errMissingID
	}
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return domain.Project{}, errMissingName
	}
	status, err := domain.ParseProjectStatus(p.Status)
	if err != nil {
		return domain.Project{}, err
	}
	typ, err := domain.ParseProjectType(p.Type)
	if err != nil {
		return domain.Project{}, err
	}
	deployed := p.LastDeployed
	if deployed.IsZero() {
		deployed = now
	}
	return domain.Project{
		ID:           id,
		Name:         name,
		URL:          strings.TrimSpace(p.URL),
		Status:       status,
		Type:         typ,
		LastDeployed: deployed.UTC(),
		Environment:  strings.TrimSpace(p.Environment),
	}, nil
}

// List returns a copy of all projects in fixture order.
func (c *Catalog) List() []domain.Project {
	return append([]domain.Project(nil), c.projects...)
}

// Get returns a project by id.
func (c *Catalog) Get(id string) (domain.Project, error) {
	idx, ok := c.byID[strings.TrimSpace(id)]
	if !ok {
		return domain.Project{}, ErrNotFound
	}
	return c.projects[idx], nil
}

// Len reports the number of projects.
func (c *Catalog) Len() int {
	return len(c.projects)
}
