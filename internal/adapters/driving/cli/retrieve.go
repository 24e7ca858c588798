package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/materials-advisor/advisor/internal/core/domain"
)

var (
	retrieveLimit int
	retrieveJSON  bool
)

var retrieveCmd = &cobra.Command{
	Use:   "retrieve [query]",
	Short: "Show the reference snippets selected for a query",
	Long: `Select the corpus snippets that best match a query, as the advisor
would before answering. Snippets are ranked by how many distinct query
words they contain.`,
	Args: cobra.ExactArgs(1),
	RunE: runRetrieve,
}

func init() {
	retrieveCmd.Flags().IntVarP(&retrieveLimit, "limit", "n", domain.DefaultMaxSnippets, "maximum number of snippets")
	retrieveCmd.Flags().BoolVar(&retrieveJSON, "json", false, "output snippets as JSON")
	rootCmd.AddCommand(retrieveCmd)
}

func runRetrieve(cmd *cobra.Command, args []string) error {
	if retrievalService == nil {
		return fmt.Errorf("retrieval: %w", errNotConfigured)
	}

	snippets := retrievalService.Retrieve(cmd.Context(), args[0], retrieveLimit)

	if retrieveJSON {
		return outputSnippetsJSON(cmd, snippets)
	}
	outputSnippets(cmd, snippets)
	return nil
}

func outputSnippetsJSON(cmd *cobra.Command, snippets []domain.ScoredSnippet) error {
	if snippets == nil {
		snippets = []domain.ScoredSnippet{}
	}
	data, err := json.MarshalIndent(snippets, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snippets: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSnippets(cmd *cobra.Command, snippets []domain.ScoredSnippet) {
	if len(snippets) == 0 {
		cmd.Println("No matching snippets.")
		return
	}

	cmd.Println("Snippets:")
	cmd.Println()
	for i, s := range snippets {
		cmd.Printf("  [%d] score %d\n", i+1, s.Score)
		cmd.Printf("      %s\n", s.Text)
		cmd.Println()
	}
}
