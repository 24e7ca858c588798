package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/materials-advisor/advisor/internal/adapters/driving/tui/keymap"
	"github.com/materials-advisor/advisor/internal/adapters/driving/tui/styles"
)

func TestNewBar(t *testing.T) {
	bar := NewBar(styles.DefaultStyles(), keymap.DefaultKeyMap())

	require.NotNil(t, bar)
	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
	assert.Equal(t, 80, bar.Width())
}

func TestNewBar_NilStyles(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.NotNil(t, bar.styles)
	assert.NotNil(t, bar.keymap)
}

func TestBar_View(t *testing.T) {
	tests := []struct {
		name     string
		state    State
		message  string
		contains string
	}{
		{"ready", StateReady, "", "Ready"},
		{"thinking", StateThinking, "", "Thinking..."},
		{"error with message", StateError, "timeout", "Error: timeout"},
		{"error without message", StateError, "", "Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewBar(nil, nil)
			bar.SetWidth(120)
			bar.SetState(tt.state)
			bar.SetMessage(tt.message)

			view := bar.View()

			assert.Contains(t, view, tt.contains)
			assert.Contains(t, view, "enter: send")
		})
	}
}

func TestBar_Corpus(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(120)

	bar.SetCorpus("corpus: 4 docs")

	assert.Equal(t, "corpus: 4 docs", bar.Corpus())
	assert.Contains(t, bar.View(), "corpus: 4 docs")
}

func TestBar_NarrowWidth(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(5)

	assert.NotEmpty(t, bar.View())
}

func TestBar_Clear(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateError)
	bar.SetMessage("boom")
	bar.SetCorpus("corpus: empty")

	bar.Clear()

	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
	assert.Equal(t, "corpus: empty", bar.Corpus())
}

func TestBar_Bindings(t *testing.T) {
	assert.Len(t, NewBar(nil, nil).Bindings(), 3)
}
