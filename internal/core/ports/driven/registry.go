package driven

import (
	"context"

	"github.com/materials-advisor/advisor/internal/core/domain"
)

// NormaliserRegistry selects the appropriate normaliser for a file.
// It maintains a priority-ordered list of normalisers and dispatches
// on file extension.
type NormaliserRegistry interface {
	// Normalise extracts a file using the best matching normaliser.
	Normalise(ctx context.Context, path string) (*domain.Document, error)

	// Register adds a normaliser to the registry.
	Register(normaliser Normaliser)

	// SupportedExtensions returns all extensions that can be normalised.
	SupportedExtensions() []string
}
