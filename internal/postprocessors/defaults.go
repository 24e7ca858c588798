package postprocessors

import (
	"regexp"
	"strings"

	"github.com/materials-advisor/advisor/internal/core/ports/driven"
)

// Built-in cleaner names.
const (
	CollapseWhitespace = "collapse_whitespace"
	StripPageMarkers   = "strip_page_markers"
	Trim               = "trim"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	pageMarker    = regexp.MustCompile(`(?i)page \d+`)
)

// RegisterDefaults registers all built-in cleaners with the registry.
func RegisterDefaults(r *Registry) {
	r.Register(CollapseWhitespace, func() driven.TextCleaner {
		return cleanerFunc{CollapseWhitespace, func(s string) string { return whitespaceRun.ReplaceAllString(s, " ") }}
	})
	r.Register(StripPageMarkers, func() driven.TextCleaner {
		return cleanerFunc{StripPageMarkers, func(s string) string { return pageMarker.ReplaceAllString(s, "") }}
	})
	r.Register(Trim, func() driven.TextCleaner {
		return cleanerFunc{Trim, strings.TrimSpace}
	})
}

// DefaultRegistry returns a registry with the built-in cleaners.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}

// cleanerFunc adapts a plain function to driven.TextCleaner.
type cleanerFunc struct {
	name string
	fn   func(string) string
}

func (c cleanerFunc) Name() string             { return c.name }
func (c cleanerFunc) Clean(text string) string { return c.fn(text) }
