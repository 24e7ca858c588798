package postprocessors

import (
	"fmt"
	"sort"

	"github.com/materials-advisor/advisor/internal/core/domain"
	"github.com/materials-advisor/advisor/internal/core/ports/driven"
)

// BuilderFunc creates a TextCleaner.
type BuilderFunc func() driven.TextCleaner

// Registry maps cleaner names to their builders.
// It allows pipelines to be assembled from configuration.
type Registry struct {
	builders map[string]BuilderFunc
}

// NewRegistry creates a new cleaner registry.
func NewRegistry() *Registry {
	return &Registry{
		builders: make(map[string]BuilderFunc),
	}
}

// Register adds a cleaner builder to the registry.
// Name should be unique and match the cleaner's Name() return value.
func (r *Registry) Register(name string, builder BuilderFunc) {
	r.builders[name] = builder
}

// Build creates a cleaner by name.
func (r *Registry) Build(name string) (driven.TextCleaner, error) {
	builder, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown cleaner %q", domain.ErrInvalidConfig, name)
	}
	return builder(), nil
}

// BuildPipeline creates a pipeline running the named cleaners in order.
func (r *Registry) BuildPipeline(names []string) (*Pipeline, error) {
	p := NewPipeline()
	for _, name := range names {
		c, err := r.Build(name)
		if err != nil {
			return nil, err
		}
		p.Add(c)
	}
	return p, nil
}

// Has returns true if a cleaner with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.builders[name]
	return ok
}

// Names returns all registered cleaner names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
