package services

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/materials-advisor/advisor/internal/core/domain"
	"github.com/materials-advisor/advisor/internal/core/ports/driven"
	"github.com/materials-advisor/advisor/internal/core/ports/driving"
	"github.com/materials-advisor/advisor/internal/logger"
)

// Ensure RetrievalService implements the interface.
var _ driving.RetrievalService = (*RetrievalService)(nil)

// minTokenLen drops short query words such as "a", "of" and "is".
const minTokenLen = 3

var tokenSeparator = regexp.MustCompile(`[^a-z0-9]+`)

// RetrievalService scores every chunk of every document by how many distinct
// query tokens it contains and returns the best, deduplicated snippets.
type RetrievalService struct {
	corpus      *CorpusCache
	chunker     driven.Chunker
	maxSnippets int
}

// NewRetrievalService creates a retrieval service.
// maxSnippets is the default limit used when Retrieve is called with limit <= 0.
func NewRetrievalService(corpus *CorpusCache, chunker driven.Chunker, maxSnippets int) (*RetrievalService, error) {
	if corpus == nil || chunker == nil {
		return nil, fmt.Errorf("%w: retrieval needs a corpus and a chunker", domain.ErrInvalidInput)
	}
	if maxSnippets <= 0 {
		return nil, fmt.Errorf("%w: max snippets must be positive, got %d", domain.ErrInvalidConfig, maxSnippets)
	}
	return &RetrievalService{
		corpus:      corpus,
		chunker:     chunker,
		maxSnippets: maxSnippets,
	}, nil
}

// Corpus reports the state of the underlying corpus.
func (s *RetrievalService) Corpus(ctx context.Context) domain.CorpusLoad {
	return s.corpus.Load(ctx)
}

// Retrieve returns at most limit snippets ordered by descending score.
// Equal scores keep corpus order, then chunk order.
func (s *RetrievalService) Retrieve(ctx context.Context, query string, limit int) []domain.ScoredSnippet {
	logger.Section("Retrieval")

	if limit <= 0 {
		limit = s.maxSnippets
	}

	tokens := Tokenize(query)
	logger.Debug("Query tokens: %v", tokens)
	if len(tokens) == 0 {
		logger.Debug("No usable tokens, skipping retrieval")
		return []domain.ScoredSnippet{}
	}

	load := s.corpus.Load(ctx)
	if load.IsEmpty() {
		logger.Debug("Corpus empty (%v), skipping retrieval", load.Reason)
		return []domain.ScoredSnippet{}
	}

	pool := s.score(load.Documents, tokens)
	logger.Debug("Candidates with positive score: %d", len(pool))

	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].Score > pool[j].Score
	})

	out := selectTop(pool, limit)
	logger.Info("Retrieved %d snippets (limit %d)", len(out), limit)
	return out
}

// score builds the candidate pool in corpus order, dropping chunks that match no token.
func (s *RetrievalService) score(docs []domain.Document, tokens []string) []domain.ScoredSnippet {
	var pool []domain.ScoredSnippet
	for _, doc := range docs {
		for _, chunk := range s.chunker.Chunk(doc) {
			lower := strings.ToLower(chunk.Text)
			score := 0
			for _, t := range tokens {
				if strings.Contains(lower, t) {
					score++
				}
			}
			if score == 0 {
				continue
			}
			pool = append(pool, domain.ScoredSnippet{
				Score:  score,
				Source: chunk.Source,
				Text:   chunk.Text,
			})
		}
	}
	return pool
}

// selectTop walks the sorted pool, skipping repeated dedup keys, until limit snippets are kept.
func selectTop(pool []domain.ScoredSnippet, limit int) []domain.ScoredSnippet {
	out := make([]domain.ScoredSnippet, 0, min(limit, len(pool)))
	seen := make(map[string]struct{}, len(pool))

	for _, candidate := range pool {
		if len(out) >= limit {
			break
		}
		key := candidate.DedupKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, candidate)
	}
	return out
}

// Tokenize lowercases the query, splits it on anything outside [a-z0-9] and
// returns the distinct tokens of at least three characters in first-seen order.
func Tokenize(query string) []string {
	parts := tokenSeparator.Split(strings.ToLower(query), -1)

	tokens := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		if len(p) < minTokenLen {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		tokens = append(tokens, p)
	}
	return tokens
}
