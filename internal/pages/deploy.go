package pages

import (
	"errors"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/splax/hostrix/internal/domain"
)

const (
	defaultProjectName    = "Project"
	defaultBuildCommand   = "npm run build"
	defaultRunCommand     = "npm run dev"
	defaultInstallCommand = "npm install"
)

var (
	// ErrUnknownEnvVar is returned when an env var id is not on the form.
	ErrUnknownEnvVar = errors.New("environment variable not found")
	// ErrEnvVarIndex is returned for an index outside the env var list.
	ErrEnvVarIndex = errors.New("environment variable index out of range")
)

// DeployConfig is the deployment configuration form for one project.
type DeployConfig struct {
	ProjectName       string
	EnvVars           []domain.EnvVar
	BuildCommand      string
	RunCommand        string
	InstallCommand    string
	NotifyOnDeploy    bool
	NotificationEmail string
	Deploying         bool

	newID func() string
}

// NewDeployConfig returns an empty form for the named project.
func NewDeployConfig(projectName string) *DeployConfig {
	name := projectName
	if name == "" {
		name = defaultProjectName
	}
	return &DeployConfig{ProjectName: name, newID: uuid.NewString}
}

// DeployConfigFromValues restores the form from a post. Env var rows come
// as parallel env_id/env_key/env_value lists; rows missing an id get one.
func DeployConfigFromValues(projectName string, v url.Values) *DeployConfig {
	d := NewDeployConfig(projectName)
	ids, keys, values := v["env_id"], v["env_key"], v["env_value"]
	rows := max(len(ids), len(keys), len(values))
	seen := make(map[string]struct{}, rows)
	for i := 0; i < rows; i++ {
		id := strings.TrimSpace(at(ids, i))
		if _, dup := seen[id]; id == "" || dup {
			id = d.newID()
		}
		seen[id] = struct{}{}
		d.EnvVars = append(d.EnvVars, domain.EnvVar{ID: id, Key: at(keys, i), Value: at(values, i)})
	}
	d.BuildCommand = v.Get("build_command")
	d.RunCommand = v.Get("run_command")
	d.InstallCommand = v.Get("install_command")
	d.NotifyOnDeploy = v.Get("notify") == "on" || v.Get("notify") == "true"
	d.NotificationEmail = strings.TrimSpace(v.Get("notification_email"))
	return d
}

func at(list []string, i int) string {
	if i < len(list) {
		return list[i]
	}
	return ""
}

// AddEnvVar appends an empty row and returns its id.
func (d *DeployConfig) AddEnvVar() string {
	id := d.newID()
	d.EnvVars = append(d.EnvVars, domain.EnvVar{ID: id})
	return id
}

// RemoveEnvVar deletes the row with the given id. Remaining rows keep
// their order.
func (d *DeployConfig) RemoveEnvVar(id string) error {
	idx := d.indexOf(id)
	if idx < 0 {
		return ErrUnknownEnvVar
	}
	return d.RemoveEnvVarAt(idx)
}

// RemoveEnvVarAt deletes row i and shifts the rest left.
func (d *DeployConfig) RemoveEnvVarAt(i int) error {
	if i < 0 || i >= len(d.EnvVars) {
		return ErrEnvVarIndex
	}
	next := make([]domain.EnvVar, 0, len(d.EnvVars)-1)
	next = append(next, d.EnvVars[:i]...)
	d.EnvVars = append(next, d.EnvVars[i+1:]...)
	return nil
}

// UpdateEnvVar replaces the key and value of a row.
func (d *DeployConfig) UpdateEnvVar(id, key, value string) error {
	idx := d.indexOf(id)
	if idx < 0 {
		return ErrUnknownEnvVar
	}
	d.EnvVars[idx].Key = key
	d.EnvVars[idx].Value = value
	return nil
}

func (d *DeployConfig) indexOf(id string) int {
	for i, env := range d.EnvVars {
		if env.ID == id {
			return i
		}
	}
	return -1
}

// Submit marks the form as deploying and returns the route to show next.
// TODO: hand the configuration to the build service once it exists.
func (d *DeployConfig) Submit() string {
	d.Deploying = true
	return routeDashboard
}

// Cancel returns the route to show when the form is abandoned.
func (d *DeployConfig) Cancel() string {
	return routeDashboard
}

// Summary is the read-only "Deployment Summary" panel.
type Summary struct {
	Build       string
	Run         string
	Install     string
	EnvVars     []MaskedEnvVar
	NotifyEmail string
}

// MaskedEnvVar is an env var with its value hidden.
type MaskedEnvVar struct {
	Key  string
	Mask string
}

// Summary projects the current form state.
func (d *DeployConfig) Summary() Summary {
	s := Summary{
		Build:   orDefault(d.BuildCommand, defaultBuildCommand),
		Run:     orDefault(d.RunCommand, defaultRunCommand),
		Install: orDefault(d.InstallCommand, defaultInstallCommand),
	}
	for _, env := range d.EnvVars {
		s.EnvVars = append(s.EnvVars, MaskedEnvVar{Key: env.Key, Mask: Mask(env.Value)})
	}
	if d.NotifyOnDeploy && d.NotificationEmail != "" {
		s.NotifyEmail = d.NotificationEmail
	}
	return s
}

// Mask returns one asterisk per character of value.
func Mask(value string) string {
	return strings.Repeat("*", utf8.RuneCountInString(value))
}

// Placeholders for the command inputs.
func (d *DeployConfig) Placeholders() map[string]string {
	return map[string]string{
		"build":   defaultBuildCommand,
		"run":     defaultRunCommand,
		"install": defaultInstallCommand,
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
