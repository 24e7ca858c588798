package services

import (
	"fmt"
	"os"
	"time"

	"github.com/materials-advisor/advisor/internal/core/domain"
	"github.com/materials-advisor/advisor/internal/core/ports/driven"
	"github.com/materials-advisor/advisor/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyServerAddr      = "server.addr"
	keyServerRateLimit = "server.rate_limit"
	keyServerBurst     = "server.burst"
	keyServerTimeout   = "server.request_timeout_secs"
	keyCorpusPath      = "corpus.path"
	keyKnowledgeDir    = "corpus.knowledge_dir"
	keyChunkSize       = "retrieval.chunk_size"
	keyChunkOverlap    = "retrieval.chunk_overlap"
	keyMaxSnippets     = "retrieval.max_snippets"
	keyLLMProvider     = "llm.provider"
	keyLLMModel        = "llm.model"
	keyLLMBaseURL      = "llm.base_url"
	keyLLMAPIKeyEnv    = "llm.api_key_env"
	keyLLMTimeout      = "llm.timeout_secs"
	keyLLMTokenBudget  = "llm.token_budget"
	keyLLMRateLimit    = "llm.rate_limit"
	keyIngestExtractor = "ingest.extractor"
	keyIngestCleaners  = "ingest.cleaners"
	keyLogVerbose      = "log.verbose"
)

// SettingsService reads typed settings from a ConfigStore.
type SettingsService struct {
	configStore driven.ConfigStore
	lookupEnv   func(string) (string, bool)
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		lookupEnv:   os.LookupEnv,
	}
}

// SetEnvLookup replaces the environment lookup used to resolve API keys.
func (s *SettingsService) SetEnvLookup(fn func(string) (string, bool)) {
	if fn != nil {
		s.lookupEnv = fn
	}
}

// Get retrieves current settings. Keys absent from the store keep their defaults.
// Unknown enum values are kept as is so Validate can report them.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	provider := domain.AIProvider(s.getString(keyLLMProvider, defaults.LLM.Provider.String()))
	model := defaults.LLM.Model
	apiKeyEnv := defaults.LLM.APIKeyEnv
	if provider != defaults.LLM.Provider {
		model = domain.DefaultLLMModels()[provider]
		apiKeyEnv = provider.DefaultAPIKeyEnv()
	}

	settings := &domain.Settings{
		Server: domain.ServerSettings{
			Addr:           s.getString(keyServerAddr, defaults.Server.Addr),
			RateLimit:      s.getFloat(keyServerRateLimit, defaults.Server.RateLimit),
			Burst:          s.getInt(keyServerBurst, defaults.Server.Burst),
			RequestTimeout: s.getSeconds(keyServerTimeout, defaults.Server.RequestTimeout),
		},
		Corpus: domain.CorpusSettings{
			Path:         s.getString(keyCorpusPath, defaults.Corpus.Path),
			KnowledgeDir: s.getString(keyKnowledgeDir, defaults.Corpus.KnowledgeDir),
		},
		Retrieval: domain.RetrievalSettings{
			ChunkSize:    s.getInt(keyChunkSize, defaults.Retrieval.ChunkSize),
			ChunkOverlap: s.getInt(keyChunkOverlap, defaults.Retrieval.ChunkOverlap),
			MaxSnippets:  s.getInt(keyMaxSnippets, defaults.Retrieval.MaxSnippets),
		},
		LLM: domain.LLMSettings{
			Provider:    provider,
			Model:       s.getString(keyLLMModel, model),
			BaseURL:     s.configStore.GetString(keyLLMBaseURL), // No default - empty uses the provider's endpoint
			APIKeyEnv:   s.getString(keyLLMAPIKeyEnv, apiKeyEnv),
			Timeout:     s.getSeconds(keyLLMTimeout, defaults.LLM.Timeout),
			TokenBudget: s.getInt(keyLLMTokenBudget, defaults.LLM.TokenBudget),
			RateLimit:   s.getFloat(keyLLMRateLimit, defaults.LLM.RateLimit),
		},
		Ingest: domain.IngestSettings{
			Extractor: domain.Extractor(s.getString(keyIngestExtractor, defaults.Ingest.Extractor.String())),
			Cleaners:  s.getStringSlice(keyIngestCleaners, defaults.Ingest.Cleaners),
		},
		Log: domain.LogSettings{
			Verbose: s.getBool(keyLogVerbose, defaults.Log.Verbose),
		},
	}

	if settings.LLM.APIKeyEnv != "" {
		if key, ok := s.lookupEnv(settings.LLM.APIKeyEnv); ok {
			settings.LLM.APIKey = key
		}
	}

	return settings, nil
}

// Save persists settings. The resolved API key is never written.
func (s *SettingsService) Save(settings *domain.Settings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyServerAddr, settings.Server.Addr},
		{keyServerRateLimit, settings.Server.RateLimit},
		{keyServerBurst, settings.Server.Burst},
		{keyServerTimeout, int(settings.Server.RequestTimeout / time.Second)},
		{keyCorpusPath, settings.Corpus.Path},
		{keyKnowledgeDir, settings.Corpus.KnowledgeDir},
		{keyChunkSize, settings.Retrieval.ChunkSize},
		{keyChunkOverlap, settings.Retrieval.ChunkOverlap},
		{keyMaxSnippets, settings.Retrieval.MaxSnippets},
		{keyLLMProvider, settings.LLM.Provider.String()},
		{keyLLMModel, settings.LLM.Model},
		{keyLLMBaseURL, settings.LLM.BaseURL},
		{keyLLMAPIKeyEnv, settings.LLM.APIKeyEnv},
		{keyLLMTimeout, int(settings.LLM.Timeout / time.Second)},
		{keyLLMTokenBudget, settings.LLM.TokenBudget},
		{keyLLMRateLimit, settings.LLM.RateLimit},
		{keyIngestExtractor, settings.Ingest.Extractor.String()},
		{keyIngestCleaners, settings.Ingest.Cleaners},
		{keyLogVerbose, settings.Log.Verbose},
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Validate checks the current settings.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return settings.Validate()
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

// Path returns the backing configuration file.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getSeconds(key string, defaultVal time.Duration) time.Duration {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return time.Duration(s.configStore.GetInt(key)) * time.Second
}

func (s *SettingsService) getStringSlice(key string, defaultVal []string) []string {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetStringSlice(key)
}
