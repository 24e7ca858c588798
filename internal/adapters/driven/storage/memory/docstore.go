package memory

import (
	"context"
	"sync"

	"github.com/materials-advisor/advisor/internal/core/domain"
	"github.com/materials-advisor/advisor/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
type DocumentStore struct {
	mu        sync.RWMutex
	documents []domain.Document
	loadErr   error
	loads     int
}

// NewDocumentStore creates a new in-memory document store holding docs in order.
func NewDocumentStore(docs ...domain.Document) *DocumentStore {
	return &DocumentStore{
		documents: append([]domain.Document(nil), docs...),
	}
}

// Load returns a copy of the stored documents, or the configured failure.
func (s *DocumentStore) Load(_ context.Context) ([]domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads++
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return append([]domain.Document(nil), s.documents...), nil
}

// Save replaces the stored documents.
func (s *DocumentStore) Save(_ context.Context, docs []domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents = append([]domain.Document(nil), docs...)
	return nil
}

// Location returns a fixed marker for the in-memory store.
func (s *DocumentStore) Location() string {
	return ":memory:"
}

// FailLoads makes subsequent loads return err. Pass nil to restore normal behaviour.
func (s *DocumentStore) FailLoads(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadErr = err
}

// Loads reports how many times Load has been called.
func (s *DocumentStore) Loads() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loads
}
