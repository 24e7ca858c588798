package driven

import "context"

// LLMService sends an assembled conversation to a language model.
// This is an optional service - when nil, retrieval still works but
// advice requests fail with domain.ErrLLMUnavailable.
//
// Implementations include:
//   - OpenAI (Responses API)
//   - Anthropic (Messages API)
//   - Ollama (local models)
type LLMService interface {
	// Chat conducts a multi-turn conversation and returns the model's reply.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error)

	// ModelName returns the name of the LLM model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	// Role is one of "system", "developer", "user", or "assistant".
	// Providers without a developer role fold it into their system instructions.
	Role string

	// Content is the message text.
	Content string
}

// ChatOptions configures chat behaviour.
type ChatOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}
