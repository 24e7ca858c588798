package driven

import (
	"context"

	"github.com/materials-advisor/advisor/internal/core/domain"
)

// FileSource enumerates and watches the knowledge directory.
type FileSource interface {
	// Root returns the directory being read.
	Root() string

	// List returns the paths of regular, non-hidden files with one of the
	// given extensions, sorted by name. An empty extension list matches every file.
	List(ctx context.Context, extensions []string) ([]string, error)

	// Watch streams changes until ctx is cancelled or Close is called.
	Watch(ctx context.Context) (<-chan domain.FileChange, error)

	// Close stops any active watch.
	Close() error
}
