package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/materials-advisor/advisor/internal/adapters/driven/llm/ratelimit"
	"github.com/materials-advisor/advisor/internal/core/domain"
)

func TestCreateLLMService(t *testing.T) {
	tests := []struct {
		name     string
		settings *domain.LLMSettings
		wantNil  bool
		wantErr  bool
	}{
		{"nil settings", nil, true, false},
		{"openai without key", &domain.LLMSettings{Provider: domain.AIProviderOpenAI}, true, false},
		{"openai with key", &domain.LLMSettings{Provider: domain.AIProviderOpenAI, APIKey: "sk", Model: "gpt-5.2"}, false, false},
		{"anthropic with key", &domain.LLMSettings{Provider: domain.AIProviderAnthropic, APIKey: "sk"}, false, false},
		{"ollama", &domain.LLMSettings{Provider: domain.AIProviderOllama, Model: "llama3.2"}, false, false},
		{"unknown provider", &domain.LLMSettings{Provider: "watson"}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateLLMService(tt.settings)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, svc)
			} else {
				require.NotNil(t, svc)
				assert.NoError(t, svc.Close())
			}
		})
	}
}

func TestCreateLLMService_ModelName(t *testing.T) {
	svc, err := CreateLLMService(&domain.LLMSettings{Provider: domain.AIProviderOllama, Model: "mistral"})

	require.NoError(t, err)
	assert.Equal(t, "mistral", svc.ModelName())
}

func TestCreateLLMService_Throttled(t *testing.T) {
	svc, err := CreateLLMService(&domain.LLMSettings{Provider: domain.AIProviderOllama, RateLimit: 2})

	require.NoError(t, err)
	_, ok := svc.(*ratelimit.LLMService)
	assert.True(t, ok)
}

func TestCreateLLMService_Unthrottled(t *testing.T) {
	svc, err := CreateLLMService(&domain.LLMSettings{Provider: domain.AIProviderOllama})

	require.NoError(t, err)
	_, ok := svc.(*ratelimit.LLMService)
	assert.False(t, ok)
}

func TestValidateLLMConfig(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"models":[]}`))
	}))
	defer server.Close()

	err := ValidateLLMConfig(context.Background(), &domain.LLMSettings{
		Provider: domain.AIProviderOllama,
		BaseURL:  server.URL,
	})
	assert.NoError(t, err)

	err = ValidateLLMConfig(context.Background(), &domain.LLMSettings{Provider: domain.AIProviderAnthropic})
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)

	err = ValidateLLMConfig(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
}
