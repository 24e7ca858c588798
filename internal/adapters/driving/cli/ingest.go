package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/materials-advisor/advisor/internal/core/domain"
)

var (
	ingestDir   string
	ingestOut   string
	ingestWatch bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Build the corpus from the knowledge directory",
	Long: `Extract text from the PDF, text and Markdown files in the knowledge
directory and write the corpus file read by the advisor.

With --watch, the corpus is rebuilt whenever a file in the directory is
created, changed or removed, until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestDir, "dir", "", "knowledge directory (default corpus.knowledge_dir)")
	ingestCmd.Flags().StringVar(&ingestOut, "out", "", "corpus file to write (default corpus.path)")
	ingestCmd.Flags().BoolVarP(&ingestWatch, "watch", "w", false, "rebuild on changes until interrupted")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	if newIngestService == nil {
		return fmt.Errorf("ingest: %w", errNotConfigured)
	}

	cfg := settings().Corpus
	dir, out := cfg.KnowledgeDir, cfg.Path
	if ingestDir != "" {
		dir = ingestDir
	}
	if ingestOut != "" {
		out = ingestOut
	}

	svc, err := newIngestService(dir, out)
	if err != nil {
		return fmt.Errorf("ingest: %w", err)
	}

	if !ingestWatch {
		report, err := svc.Ingest(cmd.Context())
		if err != nil {
			return fmt.Errorf("ingest failed: %w", err)
		}
		printIngestReport(cmd, report)
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s (ctrl+c to stop)\n", dir)
	err = svc.Watch(ctx, func(report *domain.IngestReport, err error) {
		if err != nil {
			cmd.PrintErrf("Ingest failed: %v\n", err)
			return
		}
		printIngestReport(cmd, report)
	})
	if err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}

func printIngestReport(cmd *cobra.Command, report *domain.IngestReport) {
	cmd.Printf("Wrote %d documents to %s\n", report.Documents, report.Output)
	for _, s := range report.Skipped {
		cmd.Printf("  skipped %s: %s\n", s.Path, s.Reason)
	}
}
