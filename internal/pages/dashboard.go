// Package pages holds per-request page state. Each handler builds a fresh
// value from the request, so nothing is shared between requests or pages.
package pages

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/splax/hostrix/internal/domain"
)

const (
	routeProject    = "/project/"
	routeDeploy     = "/deploy/"
	routeNewProject = "/project/new"
	routeDashboard  = "/dashboard"
)

// Dashboard is the project overview with its type tab and search box.
type Dashboard struct {
	projects []domain.Project
	Filter   domain.TypeFilter
	Query    string
}

// NewDashboard builds the overview over a fixed project list.
func NewDashboard(projects []domain.Project, filter domain.TypeFilter, query string) *Dashboard {
	if filter == "" {
		filter = domain.FilterAll
	}
	return &Dashboard{projects: projects, Filter: filter, Query: query}
}

// DashboardFromQuery reads ?type= and ?q=. Unknown types are rejected.
func DashboardFromQuery(projects []domain.Project, q url.Values) (*Dashboard, error) {
	filter, err := domain.ParseTypeFilter(q.Get("type"))
	if err != nil {
		return nil, err
	}
	return NewDashboard(projects, filter, q.Get("q")), nil
}

// Visible returns the projects passing both the type tab and the search
// query, in source order.
func (d *Dashboard) Visible() []domain.Project {
	needle := strings.ToLower(d.Query)
	out := make([]domain.Project, 0, len(d.projects))
	for _, p := range d.projects {
		if !d.Filter.Matches(p.Type) {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.URL), needle) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// CountLabel is the caption under the page heading.
func (d *Dashboard) CountLabel() string {
	return strconv.Itoa(len(d.Visible())) + " active deployments"
}

// ActionRoute is where a project's card button leads: the management view
// for live projects, the deploy form for everything else.
func ActionRoute(p domain.Project) string {
	if p.Deployed() {
		return routeProject + url.PathEscape(p.ID)
	}
	return routeDeploy + url.PathEscape(p.ID)
}

// ActionLabel is the card button caption.
func ActionLabel(p domain.Project) string {
	if p.Deployed() {
		return "Manage"
	}
	return "Deploy"
}

// NewProjectRoute is the target of the "New Project" button.
func (d *Dashboard) NewProjectRoute() string {
	return routeNewProject
}

// TabRoute is the dashboard URL with the given tab selected and the
// current query kept.
func (d *Dashboard) TabRoute(f domain.TypeFilter) string {
	v := url.Values{}
	if f != domain.FilterAll {
		v.Set("type", string(f))
	}
	if d.Query != "" {
		v.Set("q", d.Query)
	}
	if len(v) == 0 {
		return routeDashboard
	}
	return routeDashboard + "?" + v.Encode()
}
