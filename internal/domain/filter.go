package domain

import (
	"errors"
	"strings"
)

// TypeFilter selects which project types the dashboard shows.
type TypeFilter string

const (
	FilterAll        TypeFilter = "all"
	FilterStatic     TypeFilter = TypeFilter(TypeStatic)
	FilterServerless TypeFilter = TypeFilter(TypeServerless)
	FilterHybrid     TypeFilter = TypeFilter(TypeHybrid)
)

// ErrInvalidTypeFilter is returned for filter values outside the closed set.
var ErrInvalidTypeFilter = errors.New("type filter must be all, static, serverless or hybrid")

// ParseTypeFilter validates a filter value. An empty value selects all.
func ParseTypeFilter(raw string) (TypeFilter, error) {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return FilterAll, nil
	}
	filter := TypeFilter(trimmed)
	switch filter {
	case FilterAll, FilterStatic, FilterServerless, FilterHybrid:
		return filter, nil
	}
	return "", ErrInvalidTypeFilter
}

// Matches reports whether a project of the given type passes the filter.
func (f TypeFilter) Matches(t ProjectType) bool {
	return f == FilterAll || ProjectType(f) == t
}

// Label is the tab caption.
func (f TypeFilter) Label() string {
	switch f {
	case FilterStatic:
		return "Static"
	case FilterServerless:
		return "Serverless"
	case FilterHybrid:
		return "Hybrid"
	default:
		return "All"
	}
}

// TypeFilters lists the tabs in display order.
func TypeFilters() []TypeFilter {
	return []TypeFilter{FilterAll, FilterStatic, FilterServerless, FilterHybrid}
}
