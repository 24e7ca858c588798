package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/materials-advisor/advisor/internal/core/domain"
	"github.com/materials-advisor/advisor/internal/core/ports/driven"
	"github.com/materials-advisor/advisor/internal/logger"
)

// CorpusCache loads the corpus at most once and serves the same result for
// the rest of its lifetime. Concurrent first calls share a single load.
type CorpusCache struct {
	store driven.DocumentStore
	once  sync.Once
	load  domain.CorpusLoad
}

// NewCorpusCache creates a cache over store. Nothing is read until the first Load.
func NewCorpusCache(store driven.DocumentStore) *CorpusCache {
	return &CorpusCache{store: store}
}

// Load returns the cached corpus, reading it on first use.
// Read or parse failures produce a CorpusEmpty result, never an error.
func (c *CorpusCache) Load(ctx context.Context) domain.CorpusLoad {
	c.once.Do(func() {
		c.load = c.read(ctx)
	})
	return c.load
}

func (c *CorpusCache) read(ctx context.Context) domain.CorpusLoad {
	location := c.store.Location()

	docs, err := c.store.Load(ctx)
	if err != nil {
		logger.Warn("Corpus %s unavailable, continuing without reference material: %v", location, err)
		return domain.CorpusLoad{
			State:  domain.CorpusEmpty,
			Reason: fmt.Errorf("%w: %w", domain.ErrCorpusUnavailable, err),
		}
	}

	if len(docs) == 0 {
		logger.Info("Corpus %s contains no documents", location)
		return domain.CorpusLoad{
			State:  domain.CorpusEmpty,
			Reason: fmt.Errorf("%w: %s contains no documents", domain.ErrCorpusUnavailable, location),
		}
	}

	logger.Info("Loaded %d documents from %s", len(docs), location)
	return domain.CorpusLoad{
		State:     domain.CorpusLoaded,
		Documents: docs,
	}
}
