// Package jsonfile stores the corpus as a single pretty-printed JSON array of
// {"source", "text"} records.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/materials-advisor/advisor/internal/core/domain"
	"github.com/materials-advisor/advisor/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore reads and writes the corpus file.
type DocumentStore struct {
	path string
}

// NewDocumentStore creates a store backed by the file at path.
// The constructor does not touch the filesystem.
func NewDocumentStore(path string) *DocumentStore {
	return &DocumentStore{path: path}
}

// Load reads and parses the corpus file.
func (s *DocumentStore) Load(_ context.Context) ([]domain.Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}

	var docs []domain.Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("parse corpus %s: %w", s.path, err)
	}
	return docs, nil
}

// Save writes docs with two-space indentation. The file is replaced
// atomically so a concurrent reader never sees a partial corpus.
func (s *DocumentStore) Save(_ context.Context, docs []domain.Document) error {
	if docs == nil {
		docs = []domain.Document{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(docs); err != nil {
		return fmt.Errorf("encode corpus: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create corpus directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".docs-*.json")
	if err != nil {
		return fmt.Errorf("create temp corpus: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("write corpus: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close corpus: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("chmod corpus: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace corpus: %w", err)
	}
	return nil
}

// Location returns the corpus file path.
func (s *DocumentStore) Location() string {
	return s.path
}
