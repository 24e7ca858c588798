// Package ratelimit throttles calls to an LLM service.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/materials-advisor/advisor/internal/core/domain"
	"github.com/materials-advisor/advisor/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// DefaultBackoff is how long calls are held back after the provider reports rate limiting.
const DefaultBackoff = 30 * time.Second

// Config holds rate limiting configuration.
type Config struct {
	// RequestsPerSecond is the sustained rate limit. Zero or less disables the token bucket.
	RequestsPerSecond float64

	// BurstSize is the maximum burst size.
	BurstSize int

	// Backoff is the pause after a rate limit error (default: 30s).
	Backoff time.Duration
}

// LLMService wraps another LLMService with a token bucket and a backoff
// window that opens whenever the wrapped service reports domain.ErrRateLimited.
type LLMService struct {
	next    driven.LLMService
	limiter *rate.Limiter
	backoff time.Duration

	mu      sync.Mutex
	retryAt time.Time
	now     func() time.Time
}

// Wrap returns next throttled according to cfg.
func Wrap(next driven.LLMService, cfg Config) *LLMService {
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.BurstSize
	if burst <= 0 {
		burst = 1
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = DefaultBackoff
	}

	return &LLMService{
		next:    next,
		limiter: rate.NewLimiter(limit, burst),
		backoff: cfg.Backoff,
		now:     time.Now,
	}
}

// Chat waits for the backoff window and a token, then forwards the call.
func (s *LLMService) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	if err := s.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	text, err := s.next.Chat(ctx, messages, opts)
	if errors.Is(err, domain.ErrRateLimited) {
		s.RecordRateLimitError()
	}
	return text, err
}

// Wait blocks until a call can be made without exceeding the rate limit.
// It also respects any backoff window set by RecordRateLimitError.
func (s *LLMService) Wait(ctx context.Context) error {
	s.mu.Lock()
	retryAt := s.retryAt
	s.mu.Unlock()

	if wait := retryAt.Sub(s.now()); wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	return s.limiter.Wait(ctx)
}

// RecordRateLimitError opens the backoff window.
func (s *LLMService) RecordRateLimitError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.retryAt = s.now().Add(s.backoff)
}

// ModelName returns the wrapped model name.
func (s *LLMService) ModelName() string {
	return s.next.ModelName()
}

// Ping forwards to the wrapped service without consuming a token.
func (s *LLMService) Ping(ctx context.Context) error {
	return s.next.Ping(ctx)
}

// Close closes the wrapped service.
func (s *LLMService) Close() error {
	return s.next.Close()
}
