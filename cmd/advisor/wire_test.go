package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/materials-advisor/advisor/internal/core/domain"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "advisor.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestBootstrap_BuildsServices(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	corpus := filepath.Join(dir, "docs.json")
	require.NoError(t, os.WriteFile(corpus, []byte(
		`[{"source":"isola.pdf","text":"Isola 370HR laminate for lead-free assembly"}]`), 0600))

	path := writeConfig(t, dir, `
[corpus]
path = "`+filepath.ToSlash(corpus)+`"

[retrieval]
chunk_size = 100
chunk_overlap = 20
max_snippets = 3

[llm]
provider = "openai"
api_key_env = "ADVISOR_TEST_UNSET_KEY"
`)

	svc, err := bootstrap(path)
	require.NoError(t, err)
	require.NotNil(t, svc.Retrieval)
	require.NotNil(t, svc.Advisor)
	require.NotNil(t, svc.NewIngest)
	assert.Equal(t, path, svc.Settings.Path())
	assert.Equal(t, 100, svc.Config.Retrieval.ChunkSize)

	snippets := svc.Retrieval.Retrieve(context.Background(), "370HR laminate", 3)
	require.Len(t, snippets, 1)
	assert.Equal(t, 2, snippets[0].Score)

	_, err = svc.Advisor.Respond(context.Background(), domain.AdviceRequest{
		Messages: []domain.Message{{Role: domain.RoleUser, Content: "laminate?"}},
	})
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)

	assert.NoError(t, svc.Close())
}

func TestBootstrap_InvalidSettingsKeepsSettingsService(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeConfig(t, t.TempDir(), `
[retrieval]
chunk_size = 100
chunk_overlap = 100
`)

	svc, err := bootstrap(path)

	require.NoError(t, err)
	assert.NotNil(t, svc.Settings)
	assert.Nil(t, svc.Retrieval)
	assert.Nil(t, svc.Advisor)
	assert.ErrorIs(t, svc.Settings.Validate(), domain.ErrInvalidChunking)
}

func TestIngestFactory_WritesCorpus(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"),
		[]byte("Page 1\nRogers   RO4350B\n\nlow loss"), 0600))
	out := filepath.Join(t.TempDir(), "docs.json")

	newIngest := ingestFactory(domain.DefaultSettings().Ingest)
	svc, err := newIngest(dir, out)
	require.NoError(t, err)

	report, err := svc.Ingest(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, report.Documents)
	assert.FileExists(t, out)
}

func TestIngestFactory_RequiresPaths(t *testing.T) {
	newIngest := ingestFactory(domain.DefaultSettings().Ingest)

	_, err := newIngest("", "out.json")

	assert.Error(t, err)
}

func TestIngestFactory_UnknownCleaner(t *testing.T) {
	newIngest := ingestFactory(domain.IngestSettings{
		Extractor: domain.ExtractorNative,
		Cleaners:  []string{"no_such_cleaner"},
	})

	_, err := newIngest(t.TempDir(), "out.json")

	assert.Error(t, err)
}
