package services

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"

	"github.com/materials-advisor/advisor/internal/core/domain"
	"github.com/materials-advisor/advisor/internal/core/ports/driven"
)

// mockLLM records the conversations it receives.
type mockLLM struct {
	mu       sync.Mutex
	reply    string
	err      error
	received [][]driven.ChatMessage
	opts     []driven.ChatOptions
}

func (m *mockLLM) Chat(_ context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.received = append(m.received, messages)
	m.opts = append(m.opts, opts)
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

func (m *mockLLM) ModelName() string            { return "mock-model" }
func (m *mockLLM) Ping(_ context.Context) error { return nil }
func (m *mockLLM) Close() error                 { return nil }

// mockTokenCounter counts one token per message.
type mockTokenCounter struct{}

func (mockTokenCounter) Count(messages []driven.ChatMessage) int { return len(messages) }
func (mockTokenCounter) Encoding() string                        { return "mock" }

// mockPromptStore serves prompts from a map.
type mockPromptStore struct {
	prompts map[string]string
}

func (m *mockPromptStore) Load(name string) (string, error) {
	p, ok := m.prompts[name]
	if !ok {
		return "", errors.New("prompt not found")
	}
	return p, nil
}

func (m *mockPromptStore) Reload() {}

// mockRetrieval returns fixed snippets and records queries.
type mockRetrieval struct {
	snippets []domain.ScoredSnippet
	queries  []string
}

func (m *mockRetrieval) Retrieve(_ context.Context, query string, _ int) []domain.ScoredSnippet {
	m.queries = append(m.queries, query)
	return m.snippets
}

func (m *mockRetrieval) Corpus(_ context.Context) domain.CorpusLoad {
	return domain.CorpusLoad{State: domain.CorpusLoaded}
}

// mockFileSource lists fixed paths and replays changes from a channel.
type mockFileSource struct {
	mu      sync.Mutex
	paths   []string
	listErr error
	changes chan domain.FileChange
	closed  bool
}

func (m *mockFileSource) Root() string { return "knowledge" }

func (m *mockFileSource) List(_ context.Context, _ []string) ([]string, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.paths, nil
}

func (m *mockFileSource) Watch(_ context.Context) (<-chan domain.FileChange, error) {
	if m.changes == nil {
		return nil, errors.New("watch not supported")
	}
	return m.changes, nil
}

func (m *mockFileSource) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockFileSource) isClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// mockRegistry extracts text from an in-memory map keyed by path.
type mockRegistry struct {
	texts map[string]string
}

func (m *mockRegistry) Normalise(_ context.Context, path string) (*domain.Document, error) {
	text, ok := m.texts[path]
	if !ok {
		return nil, domain.ErrUnsupportedType
	}
	return &domain.Document{Source: filepath.Base(path), Text: text}, nil
}

func (m *mockRegistry) Register(_ driven.Normaliser) {}

func (m *mockRegistry) SupportedExtensions() []string {
	return []string{".pdf", ".txt"}
}

// upperCleaner is a TextCleaner that uppercases text.
type upperCleaner struct{}

func (upperCleaner) Name() string             { return "upper" }
func (upperCleaner) Clean(text string) string { return strings.ToUpper(text) }
