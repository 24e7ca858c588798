package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/materials-advisor/advisor/internal/core/domain"
)

func TestDocumentStore_Load(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "docs.json")
	content := `[
  {"source": "laminate.pdf", "text": "Low loss laminate for 5G"},
  {"source": "prepreg.pdf", "text": "High Tg prepreg"}
]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	docs, err := NewDocumentStore(path).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []domain.Document{
		{Source: "laminate.pdf", Text: "Low loss laminate for 5G"},
		{Source: "prepreg.pdf", Text: "High Tg prepreg"},
	}, docs)
}

func TestDocumentStore_Load_Missing(t *testing.T) {
	store := NewDocumentStore(filepath.Join(t.TempDir(), "nope.json"))

	_, err := store.Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDocumentStore_Load_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docs.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not": "an array"`), 0644))

	_, err := NewDocumentStore(path).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse corpus")
}

func TestDocumentStore_SaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "knowledge", "docs.json")
	store := NewDocumentStore(path)
	ctx := context.Background()

	docs := []domain.Document{
		{Source: "a.pdf", Text: "Dk < 3.5 & Df > 0.002"},
		{Source: "b.pdf", Text: "second"},
	}
	require.NoError(t, store.Save(ctx, docs))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "[\n  {\n    \"source\": \"a.pdf\""))
	assert.Contains(t, string(raw), "Dk < 3.5 & Df > 0.002")

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, docs, loaded)
	assert.Equal(t, path, store.Location())
}

func TestDocumentStore_SaveEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docs.json")
	store := NewDocumentStore(path)

	require.NoError(t, store.Save(context.Background(), nil))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(raw))
}

func TestDocumentStore_SaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewDocumentStore(filepath.Join(dir, "docs.json"))

	require.NoError(t, store.Save(context.Background(), []domain.Document{{Source: "a", Text: "b"}}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "docs.json", entries[0].Name())
}
