package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidChunking indicates degenerate chunker parameters.
	// The window step (size - overlap) must be positive.
	ErrInvalidChunking = errors.New("invalid chunking parameters")

	// ErrInvalidConfig indicates a configuration value is out of range or unknown.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrCorpusUnavailable indicates the corpus file could not be read or parsed.
	// Retrieval never returns it; it is carried as the reason of an empty CorpusLoad.
	ErrCorpusUnavailable = errors.New("corpus unavailable")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrExtractorUnavailable indicates the configured text extractor cannot run.
	ErrExtractorUnavailable = errors.New("text extractor unavailable")

	// ErrUnsupportedType indicates a file type no extractor handles.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrRateLimited indicates the caller exceeded the request rate.
	ErrRateLimited = errors.New("rate limited")
)
