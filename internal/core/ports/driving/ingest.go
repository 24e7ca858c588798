package driving

import (
	"context"

	"github.com/materials-advisor/advisor/internal/core/domain"
)

// IngestService builds the corpus file from the knowledge directory.
type IngestService interface {
	// Ingest extracts every supported file and replaces the corpus.
	// Files that fail extraction are skipped and reported.
	Ingest(ctx context.Context) (*domain.IngestReport, error)

	// Watch re-runs Ingest after changes to the knowledge directory until ctx is cancelled.
	// Each completed run is passed to onRun.
	Watch(ctx context.Context, onRun func(*domain.IngestReport, error)) error
}
