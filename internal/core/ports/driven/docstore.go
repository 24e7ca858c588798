package driven

import (
	"context"

	"github.com/materials-advisor/advisor/internal/core/domain"
)

// DocumentStore persists the corpus as an ordered collection of documents.
// Backed by a flat JSON file; there is no index.
type DocumentStore interface {
	// Load reads every document in stored order.
	// A missing or malformed backing file is an error; callers decide how to degrade.
	Load(ctx context.Context) ([]domain.Document, error)

	// Save replaces the stored collection.
	Save(ctx context.Context, docs []domain.Document) error

	// Location describes where the corpus lives, for logs and diagnostics.
	Location() string
}
