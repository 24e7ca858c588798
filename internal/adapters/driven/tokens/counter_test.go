package tokens

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/materials-advisor/advisor/internal/core/ports/driven"
)

func TestEstimator_Count(t *testing.T) {
	c := NewEstimator()

	got := c.Count([]driven.ChatMessage{
		{Role: "user", Content: strings.Repeat("a", 10)},
	})

	// 3 reply + 4 message + ceil(4/4) role + ceil(10/4) content
	assert.Equal(t, 3+4+1+3, got)
	assert.Equal(t, ApproxEncoding, c.Encoding())
}

func TestEstimator_CountsRunes(t *testing.T) {
	c := NewEstimator()

	ascii := c.Count([]driven.ChatMessage{{Role: "", Content: "abcdefgh"}})
	accented := c.Count([]driven.ChatMessage{{Role: "", Content: "äöüäöüäö"}})

	assert.Equal(t, ascii, accented)
}

func TestCounter_Empty(t *testing.T) {
	assert.Equal(t, 0, NewEstimator().Count(nil))
}

func TestCounter_Overhead(t *testing.T) {
	c := &Counter{encoding: "fixed", encode: func(string) int { return 1 }}

	got := c.Count([]driven.ChatMessage{
		{Role: "system", Content: "x"},
		{Role: "user", Content: "y"},
	})

	assert.Equal(t, tokensPerReply+2*(tokensPerMessage+2), got)
	assert.Equal(t, "fixed", c.Encoding())
}

func TestCounter_Monotonic(t *testing.T) {
	c := NewEstimator()
	short := []driven.ChatMessage{{Role: "user", Content: "laminate"}}
	long := append(short, driven.ChatMessage{Role: "assistant", Content: "prepreg and copper foil"})

	assert.Greater(t, c.Count(long), c.Count(short))
}

func TestLazy_BuildsOnce(t *testing.T) {
	builds := 0
	l := &Lazy{model: "gpt-test", build: func(model string) *Counter {
		builds++
		assert.Equal(t, "gpt-test", model)
		return NewEstimator()
	}}

	assert.Equal(t, 0, builds)

	msgs := []driven.ChatMessage{{Role: "user", Content: "abcd"}}
	first := l.Count(msgs)
	second := l.Count(msgs)

	assert.Equal(t, first, second)
	assert.Equal(t, ApproxEncoding, l.Encoding())
	assert.Equal(t, 1, builds)
}
