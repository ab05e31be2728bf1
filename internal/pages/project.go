package pages

import (
	"net/url"
	"strings"

	"github.com/splax/hostrix/internal/domain"
)

// NewProject is the "create project" form.
type NewProject struct {
	Name    string
	RepoURL string
	Type    domain.ProjectType
}

// NewProjectFromValues reads a posted form. An unknown type is an error.
func NewProjectFromValues(v url.Values) (*NewProject, error) {
	p := &NewProject{
		Name:    strings.TrimSpace(v.Get("name")),
		RepoURL: strings.TrimSpace(v.Get("repo_url")),
		Type:    domain.TypeStatic,
	}
	if raw := v.Get("type"); strings.TrimSpace(raw) != "" {
		typ, err := domain.ParseProjectType(raw)
		if err != nil {
			return nil, err
		}
		p.Type = typ
	}
	return p, nil
}

// Submit returns the deploy form of the new project.
// TODO: create the project through the project service once it exists.
func (p *NewProject) Submit() string {
	name := p.Name
	if name == "" {
		name = defaultProjectName
	}
	return routeDeploy + url.PathEscape(name)
}

// ProjectDetail is the management view of a live project.
type ProjectDetail struct {
	Project domain.Project
}

// DeployRoute redeploys the project.
func (p ProjectDetail) DeployRoute() string {
	return routeDeploy + url.PathEscape(p.Project.ID)
}
