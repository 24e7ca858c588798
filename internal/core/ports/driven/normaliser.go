package driven

import (
	"context"

	"github.com/materials-advisor/advisor/internal/core/domain"
)

// Normaliser turns a knowledge file on disk into a document.
// Each normaliser handles specific file extensions (e.g., .pdf, .md).
type Normaliser interface {
	// Name identifies the normaliser in logs.
	Name() string

	// SupportedExtensions returns lowercase extensions including the dot.
	SupportedExtensions() []string

	// Priority returns the selection priority (higher = preferred).
	// Format-specific normalisers should return 50-89.
	// Fallback normalisers should return 1-9.
	Priority() int

	// Normalise extracts the file's text. The document source is the file's base name.
	Normalise(ctx context.Context, path string) (*domain.Document, error)
}
