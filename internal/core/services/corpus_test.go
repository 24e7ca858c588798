package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/materials-advisor/advisor/internal/adapters/driven/storage/memory"
	"github.com/materials-advisor/advisor/internal/core/domain"
)

func TestCorpusCache_Load_Loaded(t *testing.T) {
	store := memory.NewDocumentStore(
		domain.Document{Source: "a.pdf", Text: "rogers laminate"},
		domain.Document{Source: "b.pdf", Text: "isola prepreg"},
	)
	cache := NewCorpusCache(store)

	load := cache.Load(context.Background())

	assert.Equal(t, domain.CorpusLoaded, load.State)
	assert.False(t, load.IsEmpty())
	assert.NoError(t, load.Reason)
	require.Len(t, load.Documents, 2)
	assert.Equal(t, "a.pdf", load.Documents[0].Source)
}

func TestCorpusCache_Load_ReadsOnce(t *testing.T) {
	store := memory.NewDocumentStore(domain.Document{Source: "a.pdf", Text: "text"})
	cache := NewCorpusCache(store)
	ctx := context.Background()

	first := cache.Load(ctx)
	_ = store.Save(ctx, nil)
	second := cache.Load(ctx)

	assert.Equal(t, 1, store.Loads())
	assert.Equal(t, first, second)
	assert.Equal(t, domain.CorpusLoaded, second.State)
}

func TestCorpusCache_Load_ConcurrentFirstAccess(t *testing.T) {
	store := memory.NewDocumentStore(domain.Document{Source: "a.pdf", Text: "text"})
	cache := NewCorpusCache(store)

	var wg sync.WaitGroup
	results := make([]domain.CorpusLoad, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = cache.Load(context.Background())
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, store.Loads())
	for _, r := range results {
		assert.Equal(t, domain.CorpusLoaded, r.State)
		assert.Len(t, r.Documents, 1)
	}
}

func TestCorpusCache_Load_FailureIsEmpty(t *testing.T) {
	store := memory.NewDocumentStore()
	store.FailLoads(errors.New("disk on fire"))
	cache := NewCorpusCache(store)

	load := cache.Load(context.Background())

	assert.True(t, load.IsEmpty())
	assert.Empty(t, load.Documents)
	assert.ErrorIs(t, load.Reason, domain.ErrCorpusUnavailable)
	assert.Contains(t, load.Reason.Error(), "disk on fire")
}

func TestCorpusCache_Load_FailureIsNotRetried(t *testing.T) {
	store := memory.NewDocumentStore(domain.Document{Source: "a.pdf", Text: "text"})
	store.FailLoads(errors.New("missing"))
	cache := NewCorpusCache(store)
	ctx := context.Background()

	_ = cache.Load(ctx)
	store.FailLoads(nil)
	load := cache.Load(ctx)

	assert.True(t, load.IsEmpty())
	assert.Equal(t, 1, store.Loads())
}

func TestCorpusCache_Load_NoDocumentsIsEmpty(t *testing.T) {
	cache := NewCorpusCache(memory.NewDocumentStore())

	load := cache.Load(context.Background())

	assert.Equal(t, domain.CorpusEmpty, load.State)
	assert.ErrorIs(t, load.Reason, domain.ErrCorpusUnavailable)
}
