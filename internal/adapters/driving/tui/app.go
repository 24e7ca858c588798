package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/materials-advisor/advisor/internal/adapters/driving/tui/components/status"
	"github.com/materials-advisor/advisor/internal/adapters/driving/tui/keymap"
	"github.com/materials-advisor/advisor/internal/adapters/driving/tui/messages"
	"github.com/materials-advisor/advisor/internal/adapters/driving/tui/styles"
	"github.com/materials-advisor/advisor/internal/adapters/driving/tui/views/chat"
	"github.com/materials-advisor/advisor/internal/core/domain"
)

// headerHeight is the title line plus its margin.
const headerHeight = 2

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	chat   *chat.View
	status *status.Bar

	// title is the header text, including the wrap project when set.
	title string

	err    error
	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a chat application. wrap is sent with every turn.
func NewApp(ports *Ports, wrap domain.WrapContext) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	title := "Materials Advisor"
	if wrap.Project != "" {
		title += " · " + wrap.Project
	}

	return &App{
		ports:  ports,
		ctx:    context.Background(),
		styles: s,
		keymap: km,
		chat:   chat.NewView(s, ports.Advisor, wrap),
		status: status.NewBar(s, km),
		title:  title,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.chat.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("advisor - Materials Advisor"),
		a.chat.Init(),
		a.checkCorpus(),
	)
}

// checkCorpus loads the corpus state for the status bar.
func (a *App) checkCorpus() tea.Cmd {
	retrieval, ctx := a.ports.Retrieval, a.ctx
	if retrieval == nil {
		return nil
	}
	return func() tea.Msg {
		load := retrieval.Corpus(ctx)
		return messages.CorpusChecked{State: load.State, Documents: len(load.Documents)}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if keymap.Matches(msg.String(), a.keymap.Quit) {
			return a, tea.Quit
		}
		a.chat, cmd = a.chat.Update(msg)
		if a.chat.Pending() {
			a.status.SetState(status.StateThinking)
		}
		return a, cmd

	case messages.ReplyReceived:
		a.chat, cmd = a.chat.Update(msg)
		if msg.Err != nil {
			a.err = msg.Err
			a.status.SetState(status.StateError)
			a.status.SetMessage(msg.Err.Error())
		} else {
			a.err = nil
			a.status.Clear()
		}
		return a, cmd

	case messages.CorpusChecked:
		if msg.State == domain.CorpusLoaded {
			a.status.SetCorpus(fmt.Sprintf("corpus: %d docs", msg.Documents))
		} else {
			a.status.SetCorpus("corpus: empty")
		}
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.status.SetState(status.StateError)
		a.status.SetMessage(msg.Err.Error())
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	a.chat, cmd = a.chat.Update(msg)
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}
	return a.styles.Title.Render(a.title) + "\n\n" +
		a.chat.View() + "\n" +
		a.status.View()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// Chat returns the chat view.
func (a *App) Chat() *chat.View {
	return a.chat
}

// Status returns the status bar.
func (a *App) Status() *status.Bar {
	return a.status
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.status.SetWidth(width)
	a.chat.SetDimensions(width, max(height-headerHeight-1, 4))
}
