package driven

import "github.com/materials-advisor/advisor/internal/core/domain"

// Chunker splits a document into overlapping, whitespace-normalised windows.
// Implementations validate their parameters at construction, so chunking itself cannot fail.
type Chunker interface {
	// Name returns the chunker name for logging.
	Name() string

	// Chunk returns the document's chunks in text order.
	Chunk(doc domain.Document) []domain.Chunk
}

// TextCleaner removes extraction artefacts from document text before it is stored.
// Cleaners are chained in a pipeline (e.g., whitespace collapsing, page marker removal).
type TextCleaner interface {
	// Name returns the cleaner name for logging and configuration.
	Name() string

	// Clean returns the cleaned text.
	Clean(text string) string
}
