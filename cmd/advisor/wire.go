package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/materials-advisor/advisor/internal/adapters/driven/ai"
	"github.com/materials-advisor/advisor/internal/adapters/driven/config/file"
	"github.com/materials-advisor/advisor/internal/adapters/driven/storage/jsonfile"
	"github.com/materials-advisor/advisor/internal/adapters/driven/tokens"
	"github.com/materials-advisor/advisor/internal/adapters/driving/cli"
	"github.com/materials-advisor/advisor/internal/connectors/filesystem"
	"github.com/materials-advisor/advisor/internal/core/domain"
	"github.com/materials-advisor/advisor/internal/core/ports/driven"
	"github.com/materials-advisor/advisor/internal/core/ports/driving"
	"github.com/materials-advisor/advisor/internal/core/services"
	"github.com/materials-advisor/advisor/internal/logger"
	"github.com/materials-advisor/advisor/internal/normalisers"
	"github.com/materials-advisor/advisor/internal/postprocessors"
	"github.com/materials-advisor/advisor/internal/postprocessors/chunker"
)

// localConfigFile is picked up from the working directory when --config is not given.
const localConfigFile = "advisor.toml"

// bootstrap builds the services from the configuration file.
// Invalid settings leave only the settings service available, so that
// 'config show' and 'config init' still work.
func bootstrap(configPath string) (*cli.Services, error) {
	if configPath == "" {
		if _, err := os.Stat(localConfigFile); err == nil {
			configPath = localConfigFile
		}
	}

	configStore, err := file.NewConfigStore(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	cfg, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	logger.Debug("Config: %s", configStore.Path())

	out := &cli.Services{
		Settings: settingsService,
		Config:   cfg,
		CheckLLM: func(ctx context.Context) error {
			return ai.ValidateLLMConfig(ctx, &cfg.LLM)
		},
	}
	if err := cfg.Validate(); err != nil {
		logger.Warn("invalid configuration in %s: %v", configStore.Path(), err)
		return out, nil
	}

	retrieval, err := newRetrieval(cfg)
	if err != nil {
		return nil, err
	}

	llm, err := ai.CreateLLMService(&cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("create llm: %w", err)
	}
	if llm == nil {
		logger.Debug("LLM %s not configured", cfg.LLM.Provider)
	}

	prompts, err := file.NewPromptStore("")
	if err != nil {
		return nil, fmt.Errorf("prompts: %w", err)
	}

	advisor := services.NewAdvisorService(retrieval, services.NewPromptAssembler(prompts), llm)
	advisor.SetTokenCounter(tokens.NewLazy(cfg.LLM.Model), cfg.LLM.TokenBudget)

	out.Retrieval = retrieval
	out.Advisor = advisor
	out.NewIngest = ingestFactory(cfg.Ingest)
	out.Close = func() error {
		if llm == nil {
			return nil
		}
		return llm.Close()
	}
	return out, nil
}

func newRetrieval(cfg *domain.Settings) (*services.RetrievalService, error) {
	chunk, err := chunker.New(
		chunker.WithChunkSize(cfg.Retrieval.ChunkSize),
		chunker.WithOverlap(cfg.Retrieval.ChunkOverlap),
	)
	if err != nil {
		return nil, fmt.Errorf("chunker: %w", err)
	}

	corpus := services.NewCorpusCache(jsonfile.NewDocumentStore(cfg.Corpus.Path))
	return services.NewRetrievalService(corpus, chunk, cfg.Retrieval.MaxSnippets)
}

// ingestFactory returns a constructor for ingest services reading dir and writing out.
func ingestFactory(cfg domain.IngestSettings) func(dir, out string) (driving.IngestService, error) {
	return func(dir, out string) (driving.IngestService, error) {
		if dir == "" || out == "" {
			return nil, errors.New("knowledge directory and output path are required")
		}

		var cleaner driven.TextCleaner
		if len(cfg.Cleaners) > 0 {
			pipeline, err := postprocessors.DefaultRegistry().BuildPipeline(cfg.Cleaners)
			if err != nil {
				return nil, fmt.Errorf("cleaners: %w", err)
			}
			cleaner = pipeline
		}

		return services.NewIngestService(
			filesystem.New(dir),
			normalisers.Default(cfg.Extractor),
			cleaner,
			jsonfile.NewDocumentStore(out),
		), nil
	}
}
