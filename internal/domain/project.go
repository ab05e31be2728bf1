package domain

import (
	"errors"
	"strings"
	"time"
)

// ProjectStatus is the last known deployment outcome of a project.
type ProjectStatus string

const (
	StatusDeployed ProjectStatus = "deployed"
	StatusPending  ProjectStatus = "pending"
	StatusFailed   ProjectStatus = "failed"
)

// ProjectType describes how a project is served.
type ProjectType string

const (
	TypeStatic     ProjectType = "static"
	TypeServerless ProjectType = "serverless"
	TypeHybrid     ProjectType = "hybrid"
)

var (
	// ErrInvalidStatus indicates a status outside the known set.
	ErrInvalidStatus = errors.New("project status must be deployed, pending or failed")
	// ErrInvalidType indicates a project type outside the known set.
	ErrInvalidType = errors.New("project type must be static, serverless or hybrid")
)

// Project describes a deployable unit shown on the dashboard.
type Project struct {
	ID           string
	Name         string
	URL          string
	Status       ProjectStatus
	Type         ProjectType
	LastDeployed time.Time
	Environment  string
}

// Deployed reports whether the project currently has a live deployment.
func (p Project) Deployed() bool {
	return p.Status == StatusDeployed
}

// ParseProjectStatus normalizes and validates a status string.
func ParseProjectStatus(raw string) (ProjectStatus, error) {
	status := ProjectStatus(strings.ToLower(strings.TrimSpace(raw)))
	switch status {
	case StatusDeployed, StatusPending, StatusFailed:
		return status, nil
	}
	return "", ErrInvalidStatus
}

// Label is the badge text for the status.
func (s ProjectStatus) Label() string {
	switch s {
	case StatusDeployed:
		return "Deployed"
	case StatusPending:
		return "Pending"
	default:
		return "Failed"
	}
}

// Tone is the badge color for the status.
func (s ProjectStatus) Tone() string {
	switch s {
	case StatusDeployed:
		return "green"
	case StatusPending:
		return "amber"
	default:
		return "red"
	}
}

// ParseProjectType normalizes and validates a project type string.
func ParseProjectType(raw string) (ProjectType, error) {
	typ := ProjectType(strings.ToLower(strings.TrimSpace(raw)))
	switch typ {
	case TypeStatic, TypeServerless, TypeHybrid:
		return typ, nil
	}
	return "", ErrInvalidType
}

// ProjectTypes lists every project type in display order.
func ProjectTypes() []ProjectType {
	return []ProjectType{TypeStatic, TypeServerless, TypeHybrid}
}
