package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/materials-advisor/advisor/internal/adapters/driven/storage/memory"
	"github.com/materials-advisor/advisor/internal/core/domain"
)

func noEnv(string) (string, bool) { return "", false }

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())
	service.SetEnvLookup(noEnv)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), *settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("server.addr", ":8080")
	_ = store.Set("server.rate_limit", 2.5)
	_ = store.Set("server.request_timeout_secs", 30)
	_ = store.Set("corpus.path", "/data/docs.json")
	_ = store.Set("retrieval.chunk_size", 800)
	_ = store.Set("retrieval.chunk_overlap", 100)
	_ = store.Set("retrieval.max_snippets", 3)
	_ = store.Set("llm.model", "gpt-4.1")
	_ = store.Set("llm.timeout_secs", 45)
	_ = store.Set("ingest.extractor", "pdftotext")
	_ = store.Set("ingest.cleaners", []any{"trim"})
	_ = store.Set("log.verbose", true)

	service := NewSettingsService(store)
	service.SetEnvLookup(noEnv)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, ":8080", settings.Server.Addr)
	assert.InDelta(t, 2.5, settings.Server.RateLimit, 0.0001)
	assert.Equal(t, 30*time.Second, settings.Server.RequestTimeout)
	assert.Equal(t, "/data/docs.json", settings.Corpus.Path)
	assert.Equal(t, domain.RetrievalSettings{ChunkSize: 800, ChunkOverlap: 100, MaxSnippets: 3}, settings.Retrieval)
	assert.Equal(t, "gpt-4.1", settings.LLM.Model)
	assert.Equal(t, 45*time.Second, settings.LLM.Timeout)
	assert.Equal(t, domain.ExtractorPDFToText, settings.Ingest.Extractor)
	assert.Equal(t, []string{"trim"}, settings.Ingest.Cleaners)
	assert.True(t, settings.Log.Verbose)
}

func TestSettingsService_Get_ProviderDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("llm.provider", "anthropic")

	service := NewSettingsService(store)
	service.SetEnvLookup(func(key string) (string, bool) {
		if key == "ANTHROPIC_API_KEY" {
			return "sk-ant-test", true
		}
		return "", false
	})

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderAnthropic, settings.LLM.Provider)
	assert.Equal(t, domain.DefaultLLMModels()[domain.AIProviderAnthropic], settings.LLM.Model)
	assert.Equal(t, "ANTHROPIC_API_KEY", settings.LLM.APIKeyEnv)
	assert.Equal(t, "sk-ant-test", settings.LLM.APIKey)
	assert.True(t, settings.LLM.IsConfigured())
}

func TestSettingsService_Get_OllamaNeedsNoKey(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("llm.provider", "ollama")
	_ = store.Set("llm.base_url", "http://gpu-box:11434")

	service := NewSettingsService(store)
	service.SetEnvLookup(noEnv)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, "llama3.2", settings.LLM.Model)
	assert.Empty(t, settings.LLM.APIKeyEnv)
	assert.Equal(t, "http://gpu-box:11434", settings.LLM.BaseURL)
	assert.True(t, settings.LLM.IsConfigured())
}

func TestSettingsService_Save_RoundTrip(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)
	service.SetEnvLookup(func(string) (string, bool) { return "sk-secret", true })

	settings := domain.DefaultSettings()
	settings.Server.Addr = ":9000"
	settings.Retrieval.MaxSnippets = 10
	settings.LLM.APIKey = "sk-secret"
	settings.LLM.Timeout = 90 * time.Second
	settings.Ingest.Cleaners = []string{"trim", "collapse_whitespace"}

	require.NoError(t, service.Save(&settings))

	got, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, settings, *got)

	for _, key := range []string{"llm.api_key", "llm.apikey"} {
		_, exists := store.Get(key)
		assert.False(t, exists)
	}
}

func TestSettingsService_Validate(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)
	service.SetEnvLookup(noEnv)

	require.NoError(t, service.Validate())

	_ = store.Set("retrieval.chunk_overlap", 1200)
	assert.ErrorIs(t, service.Validate(), domain.ErrInvalidChunking)

	_ = store.Set("retrieval.chunk_overlap", 100)
	_ = store.Set("llm.provider", "watson")
	assert.ErrorIs(t, service.Validate(), domain.ErrInvalidConfig)
}

func TestSettingsService_PathAndDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	assert.Equal(t, ":memory:", service.Path())
	assert.Equal(t, domain.DefaultSettings(), service.GetDefaults())
}
