package ratelimit

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/materials-advisor/advisor/internal/core/domain"
	"github.com/materials-advisor/advisor/internal/core/ports/driven"
)

type stubLLM struct {
	calls int
	err   error
}

func (s *stubLLM) Chat(_ context.Context, _ []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return "ok", nil
}

func (s *stubLLM) ModelName() string            { return "stub" }
func (s *stubLLM) Ping(_ context.Context) error { return nil }
func (s *stubLLM) Close() error                 { return nil }

func TestWrap_ForwardsCalls(t *testing.T) {
	next := &stubLLM{}
	svc := Wrap(next, Config{RequestsPerSecond: 100, BurstSize: 5})

	text, err := svc.Chat(context.Background(), nil, driven.ChatOptions{})

	require.NoError(t, err)
	assert.Equal(t, "ok", text)
	assert.Equal(t, 1, next.calls)
	assert.Equal(t, "stub", svc.ModelName())
	assert.NoError(t, svc.Ping(context.Background()))
	assert.NoError(t, svc.Close())
}

func TestWrap_UnlimitedByDefault(t *testing.T) {
	next := &stubLLM{}
	svc := Wrap(next, Config{})

	for i := 0; i < 50; i++ {
		_, err := svc.Chat(context.Background(), nil, driven.ChatOptions{})
		require.NoError(t, err)
	}
	assert.Equal(t, 50, next.calls)
}

func TestLLMService_Wait_RespectsContext(t *testing.T) {
	svc := Wrap(&stubLLM{}, Config{RequestsPerSecond: 0.001, BurstSize: 1})
	require.NoError(t, svc.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.Error(t, svc.Wait(ctx))
}

func TestLLMService_RateLimitErrorOpensBackoff(t *testing.T) {
	next := &stubLLM{err: fmt.Errorf("provider: %w", domain.ErrRateLimited)}
	svc := Wrap(next, Config{Backoff: time.Hour})

	_, err := svc.Chat(context.Background(), nil, driven.ChatOptions{})
	require.ErrorIs(t, err, domain.ErrRateLimited)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = svc.Chat(ctx, nil, driven.ChatOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, next.calls)
}

func TestLLMService_BackoffExpires(t *testing.T) {
	next := &stubLLM{}
	svc := Wrap(next, Config{Backoff: time.Minute})
	base := time.Now()
	svc.now = func() time.Time { return base }
	svc.RecordRateLimitError()

	svc.now = func() time.Time { return base.Add(2 * time.Minute) }
	_, err := svc.Chat(context.Background(), nil, driven.ChatOptions{})

	require.NoError(t, err)
	assert.Equal(t, 1, next.calls)
}
