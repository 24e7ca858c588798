// Package ai provides factory functions for creating LLM service adapters.
package ai

import (
	"context"
	"fmt"
	"math"
	"time"

	anthropicllm "github.com/materials-advisor/advisor/internal/adapters/driven/llm/anthropic"
	ollamallm "github.com/materials-advisor/advisor/internal/adapters/driven/llm/ollama"
	openaillm "github.com/materials-advisor/advisor/internal/adapters/driven/llm/openai"
	"github.com/materials-advisor/advisor/internal/adapters/driven/llm/ratelimit"
	"github.com/materials-advisor/advisor/internal/core/domain"
	"github.com/materials-advisor/advisor/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// ValidateLLMConfig creates a service from settings and pings it.
func ValidateLLMConfig(ctx context.Context, settings *domain.LLMSettings) error {
	if settings == nil || !settings.IsConfigured() {
		return fmt.Errorf("%w: provider %q is not configured", domain.ErrLLMUnavailable, providerOf(settings))
	}

	svc, err := CreateLLMService(settings)
	if err != nil {
		return err
	}
	defer svc.Close()

	return ping(ctx, svc)
}

// CreateLLMService creates the LLM service for the configured provider,
// throttled by settings.RateLimit. Returns nil if the provider is not configured.
func CreateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	var (
		svc driven.LLMService
		err error
	)
	switch settings.Provider {
	case domain.AIProviderOllama:
		svc = createOllamaLLM(settings)
	case domain.AIProviderOpenAI:
		svc, err = createOpenAILLM(settings)
	case domain.AIProviderAnthropic:
		svc, err = createAnthropicLLM(settings)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", settings.Provider)
	}
	if err != nil {
		return nil, err
	}

	if settings.RateLimit > 0 {
		svc = ratelimit.Wrap(svc, ratelimit.Config{
			RequestsPerSecond: settings.RateLimit,
			BurstSize:         int(math.Ceil(settings.RateLimit)),
		})
	}
	return svc, nil
}

func ping(ctx context.Context, svc driven.LLMService) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return svc.Ping(ctx)
}

func providerOf(settings *domain.LLMSettings) domain.AIProvider {
	if settings == nil {
		return ""
	}
	return settings.Provider
}

func createOllamaLLM(settings *domain.LLMSettings) driven.LLMService {
	return ollamallm.NewLLMService(ollamallm.LLMConfig{
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
		Timeout: settings.Timeout,
	})
}

func createOpenAILLM(settings *domain.LLMSettings) (driven.LLMService, error) {
	return openaillm.NewLLMService(openaillm.LLMConfig{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
		Timeout: settings.Timeout,
	})
}

func createAnthropicLLM(settings *domain.LLMSettings) (driven.LLMService, error) {
	return anthropicllm.NewLLMService(anthropicllm.Config{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
		Timeout: settings.Timeout,
	})
}
