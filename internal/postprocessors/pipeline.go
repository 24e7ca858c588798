// Package postprocessors provides text processing applied to extracted documents.
package postprocessors

import (
	"strings"

	"github.com/materials-advisor/advisor/internal/core/ports/driven"
)

// Ensure Pipeline implements the interface.
var _ driven.TextCleaner = (*Pipeline)(nil)

// Pipeline chains multiple TextCleaners and runs them in order.
// A Pipeline is itself a TextCleaner.
type Pipeline struct {
	cleaners []driven.TextCleaner
}

// NewPipeline creates a new cleaning pipeline with the given cleaners.
// Cleaners are executed in the order provided.
func NewPipeline(cleaners ...driven.TextCleaner) *Pipeline {
	return &Pipeline{
		cleaners: cleaners,
	}
}

// Name returns the step names joined with "+".
func (p *Pipeline) Name() string {
	names := make([]string, len(p.cleaners))
	for i, c := range p.cleaners {
		names[i] = c.Name()
	}
	return strings.Join(names, "+")
}

// Clean runs the text through all cleaners in order.
func (p *Pipeline) Clean(text string) string {
	for _, c := range p.cleaners {
		text = c.Clean(text)
	}
	return text
}

// Add appends a cleaner to the pipeline.
func (p *Pipeline) Add(cleaner driven.TextCleaner) {
	p.cleaners = append(p.cleaners, cleaner)
}

// Len returns the number of cleaners in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.cleaners)
}
