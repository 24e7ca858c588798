// Package chat provides the conversation view of the TUI.
package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/materials-advisor/advisor/internal/adapters/driving/tui/components/input"
	"github.com/materials-advisor/advisor/internal/adapters/driving/tui/keymap"
	"github.com/materials-advisor/advisor/internal/adapters/driving/tui/messages"
	"github.com/materials-advisor/advisor/internal/adapters/driving/tui/styles"
	"github.com/materials-advisor/advisor/internal/core/domain"
	"github.com/materials-advisor/advisor/internal/core/ports/driving"
)

// chromeHeight is the number of lines used by the input and its border.
const chromeHeight = 3

// entryKind distinguishes transcript lines that are not conversation turns.
type entryKind int

const (
	entryMessage entryKind = iota
	entryNotice
	entryError
)

type entry struct {
	kind    entryKind
	message domain.Message
	text    string
}

// View is the chat transcript plus input line.
type View struct {
	ctx     context.Context
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	advisor driving.AdvisorService
	wrap    domain.WrapContext

	viewport viewport.Model
	input    *input.ChatInput

	entries []entry
	history []domain.Message
	pending bool
	err     error

	width  int
	height int
}

// NewView creates a chat view that sends turns to advisor with wrap as context.
func NewView(s *styles.Styles, advisor driving.AdvisorService, wrap domain.WrapContext) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	v := &View{
		ctx:      context.Background(),
		styles:   s,
		keymap:   keymap.DefaultKeyMap(),
		advisor:  advisor,
		wrap:     wrap,
		viewport: viewport.New(80, 20),
		input:    input.NewChatInput(s),
		width:    80,
		height:   20 + chromeHeight,
	}
	v.refresh()
	return v
}

// WithContext sets the context used for advisor calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init starts the input cursor.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles key presses and advisor replies.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case keymap.Matches(msg.String(), v.keymap.Send):
			return v, v.submit()
		case keymap.Matches(msg.String(), v.keymap.ScrollUp):
			v.viewport.HalfViewUp()
			return v, nil
		case keymap.Matches(msg.String(), v.keymap.ScrollDown):
			v.viewport.HalfViewDown()
			return v, nil
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd

	case messages.ReplyReceived:
		v.pending = false
		if msg.Err != nil {
			v.err = msg.Err
			v.entries = append(v.entries, entry{kind: entryError, text: msg.Err.Error()})
		} else {
			v.err = nil
			reply := domain.Message{Role: domain.RoleAssistant, Content: msg.Text}
			v.history = append(v.history, reply)
			v.entries = append(v.entries, entry{kind: entryMessage, message: reply})
		}
		v.refresh()
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// submit handles the input line: a slash command or a new user turn.
func (v *View) submit() tea.Cmd {
	line := strings.TrimSpace(v.input.Value())
	if line == "" || v.pending {
		return nil
	}
	v.input.Reset()

	if strings.HasPrefix(line, "/") {
		return v.command(line)
	}
	return v.send(domain.ActionRespond, line)
}

// command runs a slash command. Action commands send the conversation with
// that task; trailing text is added as a user turn first.
func (v *View) command(line string) tea.Cmd {
	name, rest, _ := strings.Cut(strings.TrimPrefix(line, "/"), " ")
	rest = strings.TrimSpace(rest)

	switch name {
	case "quit", "exit":
		return func() tea.Msg { return messages.Quit{} }
	case "clear":
		v.Reset()
		return nil
	case "help":
		v.notice(HelpText())
		return nil
	}

	action := domain.Action(name)
	if !action.IsValid() {
		v.notice(fmt.Sprintf("Unknown command /%s. Type /help for commands.", name))
		return nil
	}
	return v.send(action, rest)
}

// send appends text (if any) as a user turn and asks the advisor.
func (v *View) send(action domain.Action, text string) tea.Cmd {
	if text != "" {
		turn := domain.Message{Role: domain.RoleUser, Content: text}
		v.history = append(v.history, turn)
		v.entries = append(v.entries, entry{kind: entryMessage, message: turn})
	}
	if action != domain.ActionRespond {
		v.notice("Requested: " + action.Description())
	}

	v.pending = true
	v.err = nil
	v.refresh()

	if v.advisor == nil {
		return func() tea.Msg { return messages.ReplyReceived{Err: domain.ErrLLMUnavailable} }
	}

	req := domain.AdviceRequest{
		Wrap:     v.wrap,
		Action:   action,
		Messages: append([]domain.Message(nil), v.history...),
	}
	advisor, ctx := v.advisor, v.ctx
	return func() tea.Msg {
		reply, err := advisor.Respond(ctx, req)
		if err != nil {
			return messages.ReplyReceived{Err: err}
		}
		return messages.ReplyReceived{Text: reply.Text}
	}
}

func (v *View) notice(text string) {
	v.entries = append(v.entries, entry{kind: entryNotice, text: text})
	v.refresh()
}

// refresh re-renders the transcript into the viewport and scrolls to the end.
func (v *View) refresh() {
	v.viewport.SetContent(v.renderTranscript())
	v.viewport.GotoBottom()
}

func (v *View) renderTranscript() string {
	if len(v.entries) == 0 && !v.pending {
		return v.styles.Muted.Render("Ask a question to start. Type /help for commands.")
	}

	body := lipgloss.NewStyle().Width(max(v.width-2, 20))
	var b strings.Builder
	for _, e := range v.entries {
		switch e.kind {
		case entryNotice:
			b.WriteString(v.styles.Muted.Render(body.Render(e.text)))
		case entryError:
			b.WriteString(v.styles.Error.Render(body.Render("Error: " + e.text)))
		default:
			label := v.styles.AdvisorLabel.Render("Advisor")
			if e.message.Role == domain.RoleUser {
				label = v.styles.UserLabel.Render("You")
			}
			b.WriteString(label + "\n" + v.styles.Normal.Render(body.Render(e.message.Content)))
		}
		b.WriteString("\n\n")
	}
	if v.pending {
		b.WriteString(v.styles.Muted.Render("Advisor is thinking..."))
	}
	return strings.TrimRight(b.String(), "\n")
}

// View renders the transcript above the input line.
func (v *View) View() string {
	return v.viewport.View() + "\n" + v.input.View()
}

// SetDimensions resizes the view.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.viewport.Width = width
	v.viewport.Height = max(height-chromeHeight, 1)
	v.input.SetWidth(width)
	v.refresh()
}

// Reset clears the conversation.
func (v *View) Reset() {
	v.entries = nil
	v.history = nil
	v.pending = false
	v.err = nil
	v.input.Reset()
	v.refresh()
}

// History returns the conversation turns sent to the advisor.
func (v *View) History() []domain.Message {
	return v.history
}

// Pending reports whether a request is in flight.
func (v *View) Pending() bool {
	return v.pending
}

// Err returns the last advisor error.
func (v *View) Err() error {
	return v.err
}

// Transcript returns the rendered transcript text.
func (v *View) Transcript() string {
	return v.renderTranscript()
}

// Input exposes the input component.
func (v *View) Input() *input.ChatInput {
	return v.input
}

// HelpText lists the slash commands.
func HelpText() string {
	var b strings.Builder
	b.WriteString("Commands:\n")
	for _, a := range domain.Actions() {
		fmt.Fprintf(&b, "  /%-14s %s\n", a.String(), a.Description())
	}
	b.WriteString("  /clear          Start a new conversation\n")
	b.WriteString("  /quit           Exit")
	return b.String()
}
