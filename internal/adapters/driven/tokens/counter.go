// Package tokens estimates prompt sizes for LLM requests.
package tokens

import (
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"

	"github.com/materials-advisor/advisor/internal/core/ports/driven"
	"github.com/materials-advisor/advisor/internal/logger"
)

// Ensure Counter implements the interface.
var _ driven.TokenCounter = (*Counter)(nil)

const (
	// FallbackEncoding is used when the model has no known encoding.
	FallbackEncoding = "cl100k_base"

	// ApproxEncoding names the character-based estimate used when no BPE table can be loaded.
	ApproxEncoding = "approx"

	// Per-message and reply-priming overheads of the chat format.
	tokensPerMessage = 4
	tokensPerReply   = 3

	charsPerToken = 4
)

// Counter counts tokens the way chat models bill them.
type Counter struct {
	encoding string
	encode   func(string) int
}

// NewCounter returns a BPE counter for model, falling back to cl100k_base
// when the model is unknown to tiktoken.
func NewCounter(model string) (*Counter, error) {
	enc, err := tiktoken.EncodingForModel(model)
	name := model
	if err != nil {
		enc, err = tiktoken.GetEncoding(FallbackEncoding)
		name = FallbackEncoding
	}
	if err != nil {
		return nil, fmt.Errorf("load tokenizer: %w", err)
	}

	return &Counter{
		encoding: name,
		encode: func(text string) int {
			return len(enc.Encode(text, nil, nil))
		},
	}, nil
}

// NewEstimator returns a counter that assumes four characters per token.
func NewEstimator() *Counter {
	return &Counter{
		encoding: ApproxEncoding,
		encode: func(text string) int {
			return (utf8.RuneCountInString(text) + charsPerToken - 1) / charsPerToken
		},
	}
}

// New returns a BPE counter for model, or the estimator when the tokenizer
// tables cannot be loaded (they are fetched on first use).
func New(model string) *Counter {
	c, err := NewCounter(model)
	if err != nil {
		logger.Warn("Token counting falls back to estimates: %v", err)
		return NewEstimator()
	}
	return c
}

// Count returns the prompt size of messages including chat format overhead.
func (c *Counter) Count(messages []driven.ChatMessage) int {
	if len(messages) == 0 {
		return 0
	}
	total := tokensPerReply
	for _, m := range messages {
		total += tokensPerMessage + c.encode(m.Role) + c.encode(m.Content)
	}
	return total
}

// Encoding names the tokenizer in use.
func (c *Counter) Encoding() string {
	return c.encoding
}

// Lazy defers loading the tokenizer until the first count, so commands that
// never call a model do not fetch BPE tables.
type Lazy struct {
	model string
	build func(model string) *Counter

	once    sync.Once
	counter *Counter
}

// Ensure Lazy implements the interface.
var _ driven.TokenCounter = (*Lazy)(nil)

// NewLazy returns a counter for model that is built by New on first use.
func NewLazy(model string) *Lazy {
	return &Lazy{model: model, build: New}
}

// Count returns the prompt size of messages including chat format overhead.
func (l *Lazy) Count(messages []driven.ChatMessage) int {
	return l.get().Count(messages)
}

// Encoding names the tokenizer in use.
func (l *Lazy) Encoding() string {
	return l.get().Encoding()
}

func (l *Lazy) get() *Counter {
	l.once.Do(func() {
		l.counter = l.build(l.model)
	})
	return l.counter
}
