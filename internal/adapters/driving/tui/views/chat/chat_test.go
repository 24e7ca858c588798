package chat

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/materials-advisor/advisor/internal/adapters/driving/tui/messages"
	"github.com/materials-advisor/advisor/internal/core/domain"
)

type mockAdvisor struct {
	reply string
	err   error
	reqs  []domain.AdviceRequest
}

func (m *mockAdvisor) Respond(_ context.Context, req domain.AdviceRequest) (*domain.AdviceReply, error) {
	m.reqs = append(m.reqs, req)
	if m.err != nil {
		return nil, m.err
	}
	return &domain.AdviceReply{Text: m.reply}, nil
}

func enter() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

func typeAndSend(t *testing.T, v *View, text string) tea.Cmd {
	t.Helper()
	v.Input().SetValue(text)
	_, cmd := v.Update(enter())
	return cmd
}

func TestNewView_EmptyTranscript(t *testing.T) {
	v := NewView(nil, &mockAdvisor{}, domain.WrapContext{})

	assert.Contains(t, v.Transcript(), "Ask a question")
	assert.Empty(t, v.History())
	assert.False(t, v.Pending())
}

func TestView_SendMessage(t *testing.T) {
	advisor := &mockAdvisor{reply: "Consider Isola 370HR."}
	wrap := domain.WrapContext{Project: "Radar board"}
	v := NewView(nil, advisor, wrap)

	cmd := typeAndSend(t, v, "Which laminate for 77 GHz?")

	require.NotNil(t, cmd)
	assert.True(t, v.Pending())
	assert.Empty(t, v.Input().Value())
	assert.Contains(t, v.Transcript(), "Which laminate for 77 GHz?")
	assert.Contains(t, v.Transcript(), "thinking")

	msg := cmd()
	reply, ok := msg.(messages.ReplyReceived)
	require.True(t, ok)
	assert.Equal(t, "Consider Isola 370HR.", reply.Text)

	require.Len(t, advisor.reqs, 1)
	req := advisor.reqs[0]
	assert.Equal(t, domain.ActionRespond, req.Action)
	assert.Equal(t, wrap, req.Wrap)
	assert.Equal(t, []domain.Message{{Role: domain.RoleUser, Content: "Which laminate for 77 GHz?"}}, req.Messages)

	v.Update(reply)

	assert.False(t, v.Pending())
	assert.Contains(t, v.Transcript(), "Consider Isola 370HR.")
	assert.Equal(t, []domain.Message{
		{Role: domain.RoleUser, Content: "Which laminate for 77 GHz?"},
		{Role: domain.RoleAssistant, Content: "Consider Isola 370HR."},
	}, v.History())
}

func TestView_EmptyInputIgnored(t *testing.T) {
	advisor := &mockAdvisor{}
	v := NewView(nil, advisor, domain.WrapContext{})

	cmd := typeAndSend(t, v, "   ")

	assert.Nil(t, cmd)
	assert.False(t, v.Pending())
}

func TestView_InputIgnoredWhilePending(t *testing.T) {
	v := NewView(nil, &mockAdvisor{reply: "ok"}, domain.WrapContext{})

	require.NotNil(t, typeAndSend(t, v, "first"))
	cmd := typeAndSend(t, v, "second")

	assert.Nil(t, cmd)
	assert.Len(t, v.History(), 1)
}

func TestView_ActionCommand(t *testing.T) {
	advisor := &mockAdvisor{reply: "1. Discovery"}
	v := NewView(nil, advisor, domain.WrapContext{})

	cmd := typeAndSend(t, v, "/call_plan")
	require.NotNil(t, cmd)
	cmd()

	require.Len(t, advisor.reqs, 1)
	assert.Equal(t, domain.ActionCallPlan, advisor.reqs[0].Action)
	assert.Empty(t, advisor.reqs[0].Messages)
	assert.Contains(t, v.Transcript(), "Requested: Call plan")
}

func TestView_ActionCommandWithText(t *testing.T) {
	advisor := &mockAdvisor{reply: "Objections"}
	v := NewView(nil, advisor, domain.WrapContext{})

	cmd := typeAndSend(t, v, "/objections customer worries about cost")
	require.NotNil(t, cmd)
	cmd()

	require.Len(t, advisor.reqs, 1)
	assert.Equal(t, domain.ActionObjections, advisor.reqs[0].Action)
	assert.Equal(t, "customer worries about cost", advisor.reqs[0].LastUserMessage())
}

func TestView_UnknownCommand(t *testing.T) {
	advisor := &mockAdvisor{}
	v := NewView(nil, advisor, domain.WrapContext{})

	cmd := typeAndSend(t, v, "/bogus")

	assert.Nil(t, cmd)
	assert.Empty(t, advisor.reqs)
	assert.Contains(t, v.Transcript(), "Unknown command /bogus")
}

func TestView_HelpCommand(t *testing.T) {
	v := NewView(nil, &mockAdvisor{}, domain.WrapContext{})

	cmd := typeAndSend(t, v, "/help")

	assert.Nil(t, cmd)
	assert.Contains(t, v.Transcript(), "/wrap_summary")
	assert.Contains(t, v.Transcript(), "/clear")
}

func TestView_ClearCommand(t *testing.T) {
	v := NewView(nil, &mockAdvisor{reply: "ok"}, domain.WrapContext{})
	cmd := typeAndSend(t, v, "hello")
	v.Update(cmd())
	require.Len(t, v.History(), 2)

	typeAndSend(t, v, "/clear")

	assert.Empty(t, v.History())
	assert.Contains(t, v.Transcript(), "Ask a question")
}

func TestView_QuitCommand(t *testing.T) {
	v := NewView(nil, &mockAdvisor{}, domain.WrapContext{})

	cmd := typeAndSend(t, v, "/quit")

	require.NotNil(t, cmd)
	assert.Equal(t, messages.Quit{}, cmd())
}

func TestView_ReplyError(t *testing.T) {
	advisor := &mockAdvisor{err: errors.New("upstream timeout")}
	v := NewView(nil, advisor, domain.WrapContext{})

	cmd := typeAndSend(t, v, "hello")
	v.Update(cmd())

	assert.False(t, v.Pending())
	require.Error(t, v.Err())
	assert.Contains(t, v.Transcript(), "Error: upstream timeout")
	assert.Equal(t, []domain.Message{{Role: domain.RoleUser, Content: "hello"}}, v.History())
}

func TestView_NilAdvisor(t *testing.T) {
	v := NewView(nil, nil, domain.WrapContext{})

	cmd := typeAndSend(t, v, "hello")
	require.NotNil(t, cmd)

	reply, ok := cmd().(messages.ReplyReceived)
	require.True(t, ok)
	assert.ErrorIs(t, reply.Err, domain.ErrLLMUnavailable)
}

func TestView_HistoryIsCopiedIntoRequest(t *testing.T) {
	advisor := &mockAdvisor{reply: "first reply"}
	v := NewView(nil, advisor, domain.WrapContext{})

	cmd := typeAndSend(t, v, "one")
	v.Update(cmd())
	cmd = typeAndSend(t, v, "two")
	cmd()

	require.Len(t, advisor.reqs, 2)
	assert.Len(t, advisor.reqs[0].Messages, 1)
	assert.Len(t, advisor.reqs[1].Messages, 3)
}

func TestView_SetDimensions(t *testing.T) {
	v := NewView(nil, &mockAdvisor{}, domain.WrapContext{})

	v.SetDimensions(100, 30)

	assert.Equal(t, 100, v.viewport.Width)
	assert.Equal(t, 27, v.viewport.Height)
	assert.NotEmpty(t, v.View())
}

func TestView_Typing(t *testing.T) {
	v := NewView(nil, &mockAdvisor{}, domain.WrapContext{})

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hi")})

	assert.Equal(t, "hi", v.Input().Value())
}

func TestHelpText(t *testing.T) {
	help := HelpText()

	for _, a := range domain.Actions() {
		assert.Contains(t, help, "/"+a.String())
	}
	assert.Contains(t, help, "/quit")
}
