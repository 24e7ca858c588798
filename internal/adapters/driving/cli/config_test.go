package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/materials-advisor/advisor/internal/core/domain"
)

func TestConfigShow(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.settings.settings.LLM.APIKey = "sk-1234567890abcdef"

	out, err := execute(t, "", "config", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "File: /tmp/advisor.toml")
	assert.Contains(t, out, "Address: :3000")
	assert.Contains(t, out, "Chunk size: 1200")
	assert.Contains(t, out, "Provider: OpenAI (cloud)")
	assert.Contains(t, out, "API Key: sk-1...cdef (from OPENAI_API_KEY)")
	assert.NotContains(t, out, "sk-1234567890abcdef")
	assert.Contains(t, out, "Configuration is valid.")
}

func TestConfigShow_MissingKeyAndInvalid(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.settings.settings.Retrieval.ChunkOverlap = 5000

	out, err := execute(t, "", "config")

	require.NoError(t, err)
	assert.Contains(t, out, "API Key: (not set, export OPENAI_API_KEY)")
	assert.Contains(t, out, "Status: not configured")
	assert.Contains(t, out, "Warning:")
}

func TestConfigCheck(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	pinged := false
	checkLLM = func(context.Context) error {
		pinged = true
		return nil
	}

	out, err := execute(t, "", "config", "check")

	require.NoError(t, err)
	assert.True(t, pinged)
	assert.Contains(t, out, "Validating configuration... OK")
	assert.Contains(t, out, "Reaching OpenAI (cloud)")
}

func TestConfigCheck_LLMUnreachable(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	checkLLM = func(context.Context) error { return errors.New("connection refused") }

	out, err := execute(t, "", "config", "check")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Contains(t, out, "FAILED")
}

func TestConfigCheck_InvalidConfig(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.settings.settings.LLM.Provider = "bogus"

	_, err := execute(t, "", "config", "check")

	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestConfigInit_Defaults(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.settings.path = filepath.Join(t.TempDir(), "advisor.toml")

	out, err := execute(t, "", "config", "init", "--defaults")

	require.NoError(t, err)
	require.NotNil(t, ts.settings.saved)
	assert.Equal(t, domain.DefaultSettings().LLM.Provider, ts.settings.saved.LLM.Provider)
	assert.Contains(t, out, "Wrote "+ts.settings.path)
	assert.Contains(t, out, "Set OPENAI_API_KEY")
}

func TestConfigInit_Interactive(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.settings.path = filepath.Join(t.TempDir(), "advisor.toml")

	_, err := execute(t, "1\nllama3.1\n", "config", "init")

	require.NoError(t, err)
	require.NotNil(t, ts.settings.saved)
	assert.Equal(t, domain.AIProviderOllama, ts.settings.saved.LLM.Provider)
	assert.Equal(t, "llama3.1", ts.settings.saved.LLM.Model)
	assert.Empty(t, ts.settings.saved.LLM.APIKeyEnv)
}

func TestConfigInit_ExistingFile(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.settings.path = filepath.Join(t.TempDir(), "advisor.toml")
	require.NoError(t, os.WriteFile(ts.settings.path, []byte(""), 0600))

	_, err := execute(t, "", "config", "init", "--defaults")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
	assert.Nil(t, ts.settings.saved)

	_, err = execute(t, "", "config", "init", "--defaults", "--force")
	require.NoError(t, err)
	assert.NotNil(t, ts.settings.saved)
}

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Short key",
			input:    "abc123",
			expected: "****",
		},
		{
			name:     "Exactly 8 chars",
			input:    "12345678",
			expected: "****",
		},
		{
			name:     "Long key",
			input:    "sk-1234567890abcdef",
			expected: "sk-1...cdef",
		},
		{
			name:     "Very long key",
			input:    "sk-proj-1234567890abcdefghijklmnop",
			expected: "sk-p...mnop",
		},
		{
			name:     "Empty key",
			input:    "",
			expected: "****",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := maskAPIKey(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		maxVal     int
		defaultVal int
		expected   int
	}{
		{
			name:       "Empty input returns default",
			input:      "",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Valid choice within range",
			input:      "3",
			maxVal:     5,
			defaultVal: 1,
			expected:   3,
		},
		{
			name:       "Choice below minimum returns default",
			input:      "0",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Choice above maximum returns default",
			input:      "6",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Invalid input returns default",
			input:      "abc",
			maxVal:     5,
			defaultVal: 2,
			expected:   2,
		},
		{
			name:       "Negative number returns default",
			input:      "-1",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Whitespace returns default",
			input:      "   ",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Maximum value is valid",
			input:      "5",
			maxVal:     5,
			defaultVal: 1,
			expected:   5,
		},
		{
			name:       "Minimum value is valid",
			input:      "1",
			maxVal:     5,
			defaultVal: 3,
			expected:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseChoice(tt.input, tt.maxVal, tt.defaultVal)
			assert.Equal(t, tt.expected, result)
		})
	}
}
