package normalisers

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/materials-advisor/advisor/internal/core/domain"
	"github.com/materials-advisor/advisor/internal/core/ports/driven"
	"github.com/materials-advisor/advisor/internal/normalisers/markdown"
	"github.com/materials-advisor/advisor/internal/normalisers/pdf"
	"github.com/materials-advisor/advisor/internal/normalisers/plaintext"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry dispatches files to normalisers by extension.
type Registry struct {
	mu          sync.RWMutex
	byExtension map[string][]driven.Normaliser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byExtension: make(map[string][]driven.Normaliser)}
}

// Default returns a registry holding the text, Markdown and PDF normalisers.
// extractor selects which PDF normaliser is registered.
func Default(extractor domain.Extractor) *Registry {
	r := NewRegistry()
	r.Register(plaintext.New())
	r.Register(markdown.New())
	if extractor == domain.ExtractorPDFToText {
		r.Register(pdf.New())
	} else {
		r.Register(pdf.NewNative())
	}
	return r
}

// Register adds a normaliser for each of its extensions. Normalisers for the
// same extension are kept in descending priority, earlier registrations first on ties.
func (r *Registry) Register(n driven.Normaliser) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ext := range n.SupportedExtensions() {
		ext = strings.ToLower(ext)
		list := append(r.byExtension[ext], n)
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Priority() > list[j].Priority()
		})
		r.byExtension[ext] = list
	}
}

// Normalise extracts path with the highest priority normaliser for its extension.
func (r *Registry) Normalise(ctx context.Context, path string) (*domain.Document, error) {
	n, ok := r.lookup(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, filepath.Base(path))
	}
	return n.Normalise(ctx, path)
}

// For returns the normaliser that would handle path.
func (r *Registry) For(path string) (driven.Normaliser, bool) {
	return r.lookup(path)
}

// SupportedExtensions returns every registered extension, sorted.
func (r *Registry) SupportedExtensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exts := make([]string, 0, len(r.byExtension))
	for ext := range r.byExtension {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

func (r *Registry) lookup(path string) (driven.Normaliser, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := r.byExtension[strings.ToLower(filepath.Ext(path))]
	if len(list) == 0 {
		return nil, false
	}
	return list[0], true
}
