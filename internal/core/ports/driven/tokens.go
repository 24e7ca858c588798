package driven

// TokenCounter estimates how many model tokens a prompt will consume.
type TokenCounter interface {
	// Count returns the estimated token count of the messages, including per-message overhead.
	Count(messages []ChatMessage) int

	// Encoding names the tokenizer in use.
	Encoding() string
}
