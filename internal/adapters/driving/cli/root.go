// Package cli provides the advisor command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/materials-advisor/advisor/internal/core/domain"
	"github.com/materials-advisor/advisor/internal/core/ports/driving"
	"github.com/materials-advisor/advisor/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services holds the driving ports the commands run against.
type Services struct {
	Settings  driving.SettingsService
	Retrieval driving.RetrievalService
	Advisor   driving.AdvisorService

	// NewIngest builds an ingest service reading dir and writing out.
	NewIngest func(dir, out string) (driving.IngestService, error)

	// CheckLLM pings the configured LLM provider. Optional.
	CheckLLM func(ctx context.Context) error

	// Config is the resolved configuration the services were built from.
	Config *domain.Settings

	// Close releases resources. Optional.
	Close func() error
}

// BootstrapFunc builds the services from the configuration at configPath.
// An empty path selects the default location.
type BootstrapFunc func(configPath string) (*Services, error)

var (
	bootstrap BootstrapFunc

	settingsService  driving.SettingsService
	retrievalService driving.RetrievalService
	advisorService   driving.AdvisorService
	newIngestService func(dir, out string) (driving.IngestService, error)
	checkLLM         func(ctx context.Context) error
	appConfig        *domain.Settings
	closeServices    func() error

	configPath string
	verbose    bool
)

var errNotConfigured = errors.New("service not configured")

var rootCmd = &cobra.Command{
	Use:   "advisor",
	Short: "Materials advisor for sales engineers",
	Long: `advisor answers sales-engineering questions about PCB materials,
grounded in a local corpus of datasheets and application notes.

Build the corpus with 'advisor ingest', then ask questions with 'advisor ask',
chat interactively with 'advisor chat', or serve the HTTP API with
'advisor serve'.`,
	SilenceUsage:      true,
	PersistentPreRunE: preRun,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default advisor.toml or ~/.advisor/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// SetBootstrap registers the function that builds services before a command runs.
func SetBootstrap(fn BootstrapFunc) {
	bootstrap = fn
}

// SetServices installs services directly, bypassing bootstrap.
func SetServices(s *Services) {
	if s == nil {
		settingsService = nil
		retrievalService = nil
		advisorService = nil
		newIngestService = nil
		checkLLM = nil
		appConfig = nil
		closeServices = nil
		return
	}
	settingsService = s.Settings
	retrievalService = s.Retrieval
	advisorService = s.Advisor
	newIngestService = s.NewIngest
	checkLLM = s.CheckLLM
	appConfig = s.Config
	closeServices = s.Close
}

// Execute runs the root command.
func Execute() error {
	defer func() {
		if closeServices != nil {
			if err := closeServices(); err != nil {
				logger.Warn("closing services: %v", err)
			}
		}
	}()
	return rootCmd.Execute()
}

func preRun(cmd *cobra.Command, _ []string) error {
	if verbose {
		logger.SetVerbose(true)
	}
	logger.SetOutput(cmd.ErrOrStderr())

	if settingsService != nil || bootstrap == nil || skipBootstrap(cmd) {
		return nil
	}

	services, err := bootstrap(configPath)
	if err != nil {
		return fmt.Errorf("initialising: %w", err)
	}
	SetServices(services)

	if appConfig != nil && appConfig.Log.Verbose {
		logger.SetVerbose(true)
	}
	return nil
}

// skipBootstrap reports whether cmd runs without services.
func skipBootstrap(cmd *cobra.Command) bool {
	return cmd == versionCmd
}

// settings returns the resolved configuration, falling back to defaults.
func settings() domain.Settings {
	if appConfig != nil {
		return *appConfig
	}
	if settingsService != nil {
		if s, err := settingsService.Get(); err == nil {
			return *s
		}
	}
	return domain.DefaultSettings()
}
