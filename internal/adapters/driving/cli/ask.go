package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/materials-advisor/advisor/internal/core/domain"
)

var (
	askAction string
	askWrap   string
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the advisor a single question",
	Long: `Ask the advisor one question and print the answer.

Actions:
  respond       Answer the question (default)
  call_plan     Customer call plan
  objections    Likely objections with responses
  qual_plan     Qualification plan
  wrap_summary  Wrap summary and next steps

Use --wrap to pass account context from a JSON file, e.g.
  {"project": "77 GHz radar", "stage": "Prototype", "thermal": "Tg 200C"}`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askAction, "action", "a", string(domain.ActionRespond), "task to perform")
	askCmd.Flags().StringVar(&askWrap, "wrap", "", "JSON file with wrap context")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if advisorService == nil {
		return fmt.Errorf("advisor: %w", errNotConfigured)
	}

	action := domain.Action(askAction)
	if !action.IsValid() {
		return fmt.Errorf("%w: unknown action %q", domain.ErrInvalidInput, askAction)
	}

	wrap, err := loadWrap(askWrap)
	if err != nil {
		return err
	}

	reply, err := advisorService.Respond(cmd.Context(), domain.AdviceRequest{
		Wrap:     wrap,
		Action:   action,
		Messages: []domain.Message{{Role: domain.RoleUser, Content: args[0]}},
	})
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	cmd.Println(reply.Text)
	return nil
}

// loadWrap reads wrap context from a JSON file. An empty path yields an empty wrap.
func loadWrap(path string) (domain.WrapContext, error) {
	var wrap domain.WrapContext
	if path == "" {
		return wrap, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return wrap, fmt.Errorf("read wrap: %w", err)
	}
	if err := json.Unmarshal(data, &wrap); err != nil {
		return wrap, fmt.Errorf("%w: parse wrap %s: %v", domain.ErrInvalidInput, path, err)
	}
	return wrap, nil
}
