package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/materials-advisor/advisor/internal/adapters/driving/tui"
	"github.com/materials-advisor/advisor/internal/adapters/driving/tui/views/chat"
	"github.com/materials-advisor/advisor/internal/core/domain"
)

var (
	chatWrap  string
	chatLines bool
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the advisor",
	Long: `Start an interactive conversation with the advisor.

Type a message and press Enter. Commands:
  /call_plan, /objections, /qual_plan, /wrap_summary  Run an action
  /clear  Start over
  /quit   Exit

When standard input is not a terminal, or with --lines, chat reads one
message per line and prints each answer.`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVar(&chatWrap, "wrap", "", "JSON file with wrap context")
	chatCmd.Flags().BoolVar(&chatLines, "lines", false, "line mode instead of the terminal UI")
	rootCmd.AddCommand(chatCmd)
}

// stdinIsTerminal reports whether stdin is interactive.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func runChat(cmd *cobra.Command, _ []string) error {
	if advisorService == nil {
		return fmt.Errorf("advisor: %w", errNotConfigured)
	}

	wrap, err := loadWrap(chatWrap)
	if err != nil {
		return err
	}

	if chatLines || !stdinIsTerminal() {
		return runLineChat(cmd, cmd.InOrStdin(), wrap)
	}

	app, err := tui.NewApp(tui.NewPorts(advisorService, retrievalService), wrap)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	if err := app.WithContext(cmd.Context()).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// runLineChat reads one message per line. Lines starting with / run the
// same commands as the terminal UI.
func runLineChat(cmd *cobra.Command, in io.Reader, wrap domain.WrapContext) error {
	var history []domain.Message
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		action := domain.ActionRespond
		text := line
		if strings.HasPrefix(line, "/") {
			name, rest, _ := strings.Cut(strings.TrimPrefix(line, "/"), " ")
			switch name {
			case "quit", "exit":
				return nil
			case "clear":
				history = nil
				continue
			case "help":
				cmd.Println(chat.HelpText())
				continue
			}
			action = domain.Action(name)
			if !action.IsValid() {
				cmd.Printf("Unknown command /%s\n", name)
				continue
			}
			text = strings.TrimSpace(rest)
		}

		if text != "" {
			history = append(history, domain.Message{Role: domain.RoleUser, Content: text})
		}

		reply, err := advisorService.Respond(cmd.Context(), domain.AdviceRequest{
			Wrap:     wrap,
			Action:   action,
			Messages: append([]domain.Message(nil), history...),
		})
		if err != nil {
			cmd.PrintErrf("Error: %v\n", err)
			continue
		}

		history = append(history, domain.Message{Role: domain.RoleAssistant, Content: reply.Text})
		cmd.Println(reply.Text)
		cmd.Println()
	}
	return scanner.Err()
}
