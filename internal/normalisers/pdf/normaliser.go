// Package pdf extracts text from PDF files, either with poppler's pdftotext
// or in-process.
package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/materials-advisor/advisor/internal/core/domain"
	"github.com/materials-advisor/advisor/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

const pdftotextBinary = "pdftotext"

// ErrPDFToolNotFound is returned when pdftotext is not on PATH.
var ErrPDFToolNotFound = fmt.Errorf("%w: pdftotext not found on PATH", domain.ErrExtractorUnavailable)

// CommandRunner runs an external command and returns its stdout.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs commands with os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	if _, err := exec.LookPath(name); err != nil {
		return nil, ErrPDFToolNotFound
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return out, nil
}

// Normaliser extracts PDF text by running pdftotext.
type Normaliser struct {
	runner CommandRunner
}

// New creates a pdftotext normaliser.
func New() *Normaliser {
	return &Normaliser{runner: execRunner{}}
}

// NewWithRunner creates a normaliser that runs pdftotext through runner.
func NewWithRunner(runner CommandRunner) *Normaliser {
	return &Normaliser{runner: runner}
}

// Name identifies the normaliser.
func (n *Normaliser) Name() string {
	return pdftotextBinary
}

// SupportedExtensions returns the extensions this normaliser handles.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".pdf"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 60
}

// Normalise runs `pdftotext -layout -nopgbrk <file> -` and returns stdout.
func (n *Normaliser) Normalise(ctx context.Context, path string) (*domain.Document, error) {
	if path == "" {
		return nil, domain.ErrInvalidInput
	}

	out, err := n.runner.Run(ctx, pdftotextBinary, "-layout", "-nopgbrk", path, "-")
	if err != nil {
		if errors.Is(err, ErrPDFToolNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("pdftotext failed on %s: %w", filepath.Base(path), err)
	}

	return &domain.Document{
		Source: filepath.Base(path),
		Text:   string(out),
	}, nil
}

// CheckAvailable reports whether pdftotext can be run.
func CheckAvailable() error {
	if _, err := exec.LookPath(pdftotextBinary); err != nil {
		return ErrPDFToolNotFound
	}
	return nil
}

// InstallInstructions explains how to install pdftotext.
func InstallInstructions() string {
	return `pdftotext is part of poppler.

  macOS:          brew install poppler
  Debian/Ubuntu:  sudo apt install poppler-utils
  Fedora:         sudo dnf install poppler-utils

Or set ingest.extractor = "native" to extract text without it.`
}
