package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splax/hostrix/internal/domain"
)

var fixedNow = time.Date(2025, time.March, 3, 9, 30, 0, 0, time.UTC)

func TestDefaultCatalogMatchesMockProjects(t *testing.T) {
	c, err := Default(fixedNow)
	require.NoError(t, err)
	require.Equal(t, 3, c.Len())

	projects := c.List()
	assert.Equal(t, "Portfolio Website", projects[0].Name)
	assert.Equal(t, domain.StatusDeployed, projects[0].Status)
	assert.Equal(t, domain.TypeStatic, projects[0].Type)
	assert.Equal(t, "E-commerce API", projects[1].Name)
	assert.Equal(t, domain.StatusPending, projects[1].Status)
	assert.Equal(t, "Blog CMS", projects[2].Name)
	assert.Equal(t, domain.TypeHybrid, projects[2].Type)
	assert.Equal(t, "https://cms.example.com", projects[2].URL)
	for _, p := range projects {
		assert.Equal(t, fixedNow, p.LastDeployed)
	}
}

func TestListReturnsCopy(t *testing.T) {
	c, err := Default(fixedNow)
	require.NoError(t, err)

	projects := c.List()
	projects[0].Name = "mutated"
	assert.Equal(t, "Portfolio Website", c.List()[0].Name)
}

func TestGet(t *testing.T) {
	c, err := Default(fixedNow)
	require.NoError(t, err)

	p, err := c.Get("3")
	require.NoError(t, err)
	assert.Equal(t, "Blog CMS", p.Name)

	_, err = c.Get("42")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestParseRejectsBadFixtures(t *testing.T) {
	cases := map[string]string{
		"missing id":   "projects:\n  - name: a\n    status: deployed\n    type: static\n",
		"bad status":   "projects:\n  - id: a\n    name: a\n    status: building\n    type: static\n",
		"bad type":     "projects:\n  - id: a\n    name: a\n    status: failed\n    type: edge\n",
		"duplicate id": "projects:\n  - {id: a, name: a, status: failed, type: static}\n  - {id: a, name: b, status: failed, type: static}\n",
		"not yaml":     "projects: [",
	}
	for name, doc := range cases {
		_, err := Parse([]byte(doc), fixedNow)
		assert.Error(t, err, name)
	}
}

func TestLoadFromFileKeepsTimestamps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.yaml")
	doc := "projects:\n  - id: x\n    name: Docs\n    url: https://docs.example.com\n    status: deployed\n    type: static\n    last_deployed: 2024-12-01T10:00:00Z\n    environment: Preview\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	c, err := Load(path, fixedNow)
	require.NoError(t, err)
	p, err := c.Get("x")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.December, 1, 10, 0, 0, 0, time.UTC), p.LastDeployed)
	assert.Equal(t, "Preview", p.Environment)
}

func TestLoadEmptyPathUsesDefault(t *testing.T) {
	c, err := Load("  ", fixedNow)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), fixedNow)
	assert.Error(t, err)
}
