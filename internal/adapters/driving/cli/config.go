package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/materials-advisor/advisor/internal/core/domain"
)

var (
	configInitForce    bool
	configInitDefaults bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `Show the resolved configuration or write a configuration file.

API keys are never stored; they are read from the environment variable
named by llm.api_key_env (a .env file in the working directory is loaded
at startup).`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file",
	Long: `Write a configuration file with default values, asking for the LLM
provider and model. Use --defaults to skip the questions.`,
	RunE: runConfigInit,
}

var configCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate configuration and reach the LLM provider",
	RunE:  runConfigCheck,
}

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing file")
	configInitCmd.Flags().BoolVar(&configInitDefaults, "defaults", false, "write defaults without asking")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configCheckCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	s, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Configuration")
	cmd.Println("=====================")
	cmd.Printf("File: %s\n", settingsService.Path())
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Address: %s\n", s.Server.Addr)
	cmd.Printf("  Rate limit: %g req/s (burst %d)\n", s.Server.RateLimit, s.Server.Burst)
	cmd.Printf("  Request timeout: %s\n", s.Server.RequestTimeout)
	cmd.Println()

	cmd.Println("[Corpus]")
	cmd.Printf("  Path: %s\n", s.Corpus.Path)
	cmd.Printf("  Knowledge dir: %s\n", s.Corpus.KnowledgeDir)
	cmd.Println()

	cmd.Println("[Retrieval]")
	cmd.Printf("  Chunk size: %d\n", s.Retrieval.ChunkSize)
	cmd.Printf("  Chunk overlap: %d\n", s.Retrieval.ChunkOverlap)
	cmd.Printf("  Max snippets: %d\n", s.Retrieval.MaxSnippets)
	cmd.Println()

	cmd.Println("[LLM]")
	cmd.Printf("  Provider: %s\n", s.LLM.Provider.Description())
	cmd.Printf("  Model: %s\n", s.LLM.Model)
	if s.LLM.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", s.LLM.BaseURL)
	}
	if s.LLM.Provider.RequiresAPIKey() {
		if s.LLM.APIKey != "" {
			cmd.Printf("  API Key: %s (from %s)\n", maskAPIKey(s.LLM.APIKey), s.LLM.APIKeyEnv)
		} else {
			cmd.Printf("  API Key: (not set, export %s)\n", s.LLM.APIKeyEnv)
		}
	}
	cmd.Printf("  Timeout: %s\n", s.LLM.Timeout)
	status := "configured"
	if !s.LLM.IsConfigured() {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()

	cmd.Println("[Ingest]")
	cmd.Printf("  Extractor: %s\n", s.Ingest.Extractor)
	cmd.Printf("  Cleaners: %s\n", strings.Join(s.Ingest.Cleaners, ", "))
	cmd.Println()

	if err := s.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'advisor config init' to write a valid configuration.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	path := settingsService.Path()
	if _, err := os.Stat(path); err == nil && !configInitForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	s := settingsService.GetDefaults()

	if !configInitDefaults {
		reader := bufio.NewReader(cmd.InOrStdin())

		cmd.Println("Select LLM Provider")
		providers := domain.AllLLMProviders()
		defaultIdx := 1
		for i, p := range providers {
			if p == s.LLM.Provider {
				defaultIdx = i + 1
			}
			cmd.Printf("  %d. %s\n", i+1, p.Description())
		}
		cmd.Printf("\nEnter choice [%d]: ", defaultIdx)
		selected := providers[parseChoice(readLine(reader), len(providers), defaultIdx)-1]

		defaultModel := domain.DefaultLLMModels()[selected]
		cmd.Printf("Enter model name [%s]: ", defaultModel)
		model := readLine(reader)
		if model == "" {
			model = defaultModel
		}

		s.LLM.Provider = selected
		s.LLM.Model = model
		s.LLM.APIKeyEnv = selected.DefaultAPIKeyEnv()
	}

	if err := settingsService.Save(&s); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Printf("Wrote %s\n", path)
	if s.LLM.Provider.RequiresAPIKey() {
		cmd.Printf("Set %s in the environment or a .env file.\n", s.LLM.APIKeyEnv)
	}
	return nil
}

func runConfigCheck(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Print("Validating configuration... ")
	if err := settingsService.Validate(); err != nil {
		cmd.Println("FAILED")
		return err
	}
	cmd.Println("OK")

	if checkLLM == nil {
		return nil
	}
	s := settings()
	cmd.Printf("Reaching %s (%s)... ", s.LLM.Provider.Description(), s.LLM.Model)
	if err := checkLLM(cmd.Context()); err != nil {
		cmd.Println("FAILED")
		return fmt.Errorf("LLM check failed: %w", err)
	}
	cmd.Println("OK")
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
