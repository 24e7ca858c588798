package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/materials-advisor/advisor/internal/core/domain"
	"github.com/materials-advisor/advisor/internal/core/ports/driven"
	"github.com/materials-advisor/advisor/internal/core/ports/driving"
	"github.com/materials-advisor/advisor/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// DefaultWatchDebounce is how long Watch waits for the directory to settle before re-ingesting.
const DefaultWatchDebounce = 500 * time.Millisecond

// IngestService extracts knowledge files into the corpus.
type IngestService struct {
	files    driven.FileSource
	registry driven.NormaliserRegistry
	cleaner  driven.TextCleaner
	store    driven.DocumentStore
	debounce time.Duration
}

// NewIngestService creates a new ingest service.
// The cleaner parameter is optional; without it extracted text is stored as is.
func NewIngestService(
	files driven.FileSource,
	registry driven.NormaliserRegistry,
	cleaner driven.TextCleaner,
	store driven.DocumentStore,
) *IngestService {
	return &IngestService{
		files:    files,
		registry: registry,
		cleaner:  cleaner,
		store:    store,
		debounce: DefaultWatchDebounce,
	}
}

// SetDebounce overrides the watch debounce interval.
func (s *IngestService) SetDebounce(d time.Duration) {
	if d > 0 {
		s.debounce = d
	}
}

// Ingest extracts every supported file, in name order, and replaces the corpus.
func (s *IngestService) Ingest(ctx context.Context) (*domain.IngestReport, error) {
	logger.Section("Ingest")

	paths, err := s.files.List(ctx, s.registry.SupportedExtensions())
	if err != nil {
		return nil, fmt.Errorf("list knowledge files: %w", err)
	}
	logger.Info("Found %d knowledge files in %s", len(paths), s.files.Root())

	report := &domain.IngestReport{Output: s.store.Location()}
	docs := make([]domain.Document, 0, len(paths))

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		logger.Info("Reading: %s", filepath.Base(path))
		doc, err := s.registry.Normalise(ctx, path)
		if err != nil {
			logger.Warn("Skipping %s: %v", path, err)
			report.Skipped = append(report.Skipped, domain.SkippedFile{Path: path, Reason: err.Error()})
			continue
		}

		if s.cleaner != nil {
			doc.Text = s.cleaner.Clean(doc.Text)
		}
		docs = append(docs, *doc)
	}

	if err := s.store.Save(ctx, docs); err != nil {
		return nil, fmt.Errorf("write corpus: %w", err)
	}

	report.Documents = len(docs)
	logger.Info("Wrote %d docs to %s", report.Documents, report.Output)
	return report, nil
}

// Watch re-runs Ingest once changes to supported files have settled for the
// debounce interval. It returns nil when ctx is cancelled.
func (s *IngestService) Watch(ctx context.Context, onRun func(*domain.IngestReport, error)) error {
	changes, err := s.files.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watch knowledge directory: %w", err)
	}
	defer s.files.Close()

	supported := make(map[string]bool)
	for _, ext := range s.registry.SupportedExtensions() {
		supported[ext] = true
	}

	var (
		timer   *time.Timer
		trigger <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case change, ok := <-changes:
			if !ok {
				return nil
			}
			if !supported[strings.ToLower(filepath.Ext(change.Path))] {
				continue
			}
			logger.Debug("Knowledge file %s: %s", change.Type, change.Path)
			if timer == nil {
				timer = time.NewTimer(s.debounce)
			} else {
				timer.Reset(s.debounce)
			}
			trigger = timer.C

		case <-trigger:
			trigger = nil
			report, err := s.Ingest(ctx)
			if onRun != nil {
				onRun(report, err)
			}
		}
	}
}
