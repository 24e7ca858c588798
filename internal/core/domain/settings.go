package domain

import (
	"fmt"
	"time"
)

const unknownDescription = "Unknown"

// Default retrieval parameters.
const (
	DefaultChunkSize    = 1200
	DefaultChunkOverlap = 200
	DefaultMaxSnippets  = 6
)

// AIProvider identifies an LLM service provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	default:
		return unknownDescription
	}
}

// DefaultAPIKeyEnv returns the environment variable conventionally holding
// the provider's API key.
func (p AIProvider) DefaultAPIKeyEnv() string {
	switch p {
	case AIProviderOpenAI:
		return "OPENAI_API_KEY"
	case AIProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	default:
		return ""
	}
}

// Extractor selects how PDF text is extracted during ingestion.
type Extractor string

// Available extractors.
const (
	// ExtractorNative reads PDFs in-process.
	ExtractorNative Extractor = "native"

	// ExtractorPDFToText shells out to poppler's pdftotext.
	ExtractorPDFToText Extractor = "pdftotext"
)

// IsValid returns true if the extractor is recognised.
func (e Extractor) IsValid() bool {
	return e == ExtractorNative || e == ExtractorPDFToText
}

// String returns the string representation.
func (e Extractor) String() string {
	return string(e)
}

// ServerSettings configures the HTTP API.
type ServerSettings struct {
	// Addr is the listen address, e.g. ":3000".
	Addr string

	// RateLimit is the sustained request rate per second. Zero disables limiting.
	RateLimit float64

	// Burst is the number of requests allowed above the sustained rate.
	Burst int

	// RequestTimeout bounds the handling of one request, LLM call included.
	RequestTimeout time.Duration
}

// CorpusSettings locates the document collection.
type CorpusSettings struct {
	// Path is the JSON corpus file.
	Path string

	// KnowledgeDir holds the source PDFs and text files for ingestion.
	KnowledgeDir string
}

// RetrievalSettings configures chunking and snippet selection.
type RetrievalSettings struct {
	ChunkSize    int
	ChunkOverlap int
	MaxSnippets  int
}

// Validate checks the chunking parameters describe a terminating window.
func (r RetrievalSettings) Validate() error {
	if r.ChunkSize <= 0 || r.ChunkOverlap < 0 || r.ChunkOverlap >= r.ChunkSize {
		return fmt.Errorf("%w: size=%d overlap=%d", ErrInvalidChunking, r.ChunkSize, r.ChunkOverlap)
	}
	if r.MaxSnippets <= 0 {
		return fmt.Errorf("%w: max_snippets must be positive, got %d", ErrInvalidConfig, r.MaxSnippets)
	}
	return nil
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint. Empty uses the provider default.
	BaseURL string

	// APIKeyEnv names the environment variable holding the API key.
	APIKeyEnv string

	// APIKey is resolved from APIKeyEnv at load time and never persisted.
	APIKey string

	// Timeout bounds a single completion call.
	Timeout time.Duration

	// TokenBudget logs a warning when an assembled prompt exceeds it. Zero disables the check.
	TokenBudget int

	// RateLimit caps outgoing completion calls per second. Zero disables throttling.
	RateLimit float64
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// IngestSettings configures the offline ingestion step.
type IngestSettings struct {
	Extractor Extractor

	// Cleaners names the text clean-up steps applied to extracted text, in order.
	Cleaners []string
}

// DefaultIngestCleaners returns the clean-up steps applied when none are configured.
func DefaultIngestCleaners() []string {
	return []string{"collapse_whitespace", "strip_page_markers", "trim"}
}

// LogSettings configures logging.
type LogSettings struct {
	Verbose bool
}

// Settings holds all application settings.
type Settings struct {
	Server    ServerSettings
	Corpus    CorpusSettings
	Retrieval RetrievalSettings
	LLM       LLMSettings
	Ingest    IngestSettings
	Log       LogSettings
}

// Validate checks every section and returns the first problem found.
func (s *Settings) Validate() error {
	if err := s.Retrieval.Validate(); err != nil {
		return err
	}
	if !s.LLM.Provider.IsValid() {
		return fmt.Errorf("%w: unknown llm provider %q", ErrInvalidConfig, s.LLM.Provider)
	}
	if !s.Ingest.Extractor.IsValid() {
		return fmt.Errorf("%w: unknown extractor %q", ErrInvalidConfig, s.Ingest.Extractor)
	}
	if s.Server.RateLimit < 0 || s.Server.Burst < 0 {
		return fmt.Errorf("%w: rate limit and burst must not be negative", ErrInvalidConfig)
	}
	if s.LLM.RateLimit < 0 {
		return fmt.Errorf("%w: llm rate limit must not be negative", ErrInvalidConfig)
	}
	if s.Corpus.Path == "" {
		return fmt.Errorf("%w: corpus path is required", ErrInvalidConfig)
	}
	return nil
}

// DefaultSettings returns settings with sensible defaults.
func DefaultSettings() Settings {
	return Settings{
		Server: ServerSettings{
			Addr:           ":3000",
			RateLimit:      5,
			Burst:          10,
			RequestTimeout: 120 * time.Second,
		},
		Corpus: CorpusSettings{
			Path:         "knowledge/docs.json",
			KnowledgeDir: "knowledge",
		},
		Retrieval: RetrievalSettings{
			ChunkSize:    DefaultChunkSize,
			ChunkOverlap: DefaultChunkOverlap,
			MaxSnippets:  DefaultMaxSnippets,
		},
		LLM: LLMSettings{
			Provider:    AIProviderOpenAI,
			Model:       DefaultLLMModels()[AIProviderOpenAI],
			APIKeyEnv:   AIProviderOpenAI.DefaultAPIKeyEnv(),
			Timeout:     120 * time.Second,
			TokenBudget: 100000,
			RateLimit:   2,
		},
		Ingest: IngestSettings{
			Extractor: ExtractorNative,
			Cleaners:  DefaultIngestCleaners(),
		},
	}
}

// AllLLMProviders returns providers that support LLM operations.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderAnthropic,
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "llama3.2",
		AIProviderOpenAI:    "gpt-5.2",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
	}
}
