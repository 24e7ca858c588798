package driving

import (
	"context"

	"github.com/materials-advisor/advisor/internal/core/domain"
)

// RetrievalService selects reference snippets for a query.
type RetrievalService interface {
	// Retrieve returns at most limit snippets ordered by descending score.
	// A limit of zero or less uses the configured default. Retrieval never fails:
	// an empty corpus or a query without usable tokens yields no snippets.
	Retrieve(ctx context.Context, query string, limit int) []domain.ScoredSnippet

	// Corpus reports the state of the underlying corpus.
	Corpus(ctx context.Context) domain.CorpusLoad
}
