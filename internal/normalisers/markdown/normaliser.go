// Package markdown reads Markdown files as plain text documents.
package markdown

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/materials-advisor/advisor/internal/core/domain"
	"github.com/materials-advisor/advisor/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

var (
	codeBlock    = regexp.MustCompile("(?s)```.*?```")
	inlineCode   = regexp.MustCompile("`([^`]+)`")
	images       = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	links        = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	headings     = regexp.MustCompile(`(?m)^#{1,6}[ \t]+`)
	blockquote   = regexp.MustCompile(`(?m)^>[ \t]?`)
	rules        = regexp.MustCompile(`(?m)^[ \t]*[-*_]{3,}[ \t]*$`)
	bullets      = regexp.MustCompile(`(?m)^[ \t]*[-*+][ \t]+`)
	numbered     = regexp.MustCompile(`(?m)^[ \t]*\d+\.[ \t]+`)
	emphasis     = regexp.MustCompile(`(\*\*|__|\*|_)([^*_\n]+)(\*\*|__|\*|_)`)
	tablePipes   = regexp.MustCompile(`(?m)^\|?[ \t]*:?-{3,}.*$`)
	multiNewline = regexp.MustCompile(`\n{3,}`)
)

// Normaliser handles Markdown documents.
type Normaliser struct{}

// New creates a new Markdown normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Name identifies the normaliser.
func (n *Normaliser) Name() string {
	return "markdown"
}

// SupportedExtensions returns the extensions this normaliser handles.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".md", ".markdown"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50
}

// Normalise reads the file and strips Markdown syntax.
func (n *Normaliser) Normalise(_ context.Context, path string) (*domain.Document, error) {
	if path == "" {
		return nil, domain.ErrInvalidInput
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}

	return &domain.Document{
		Source: filepath.Base(path),
		Text:   Strip(string(data)),
	}, nil
}

// Strip removes common Markdown formatting, keeping link and code text.
// Fenced code blocks are dropped entirely.
func Strip(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = codeBlock.ReplaceAllString(content, "")
	content = inlineCode.ReplaceAllString(content, "$1")
	content = images.ReplaceAllString(content, "")
	content = links.ReplaceAllString(content, "$1")
	content = headings.ReplaceAllString(content, "")
	content = blockquote.ReplaceAllString(content, "")
	content = rules.ReplaceAllString(content, "")
	content = tablePipes.ReplaceAllString(content, "")
	content = bullets.ReplaceAllString(content, "")
	content = numbered.ReplaceAllString(content, "")
	content = emphasis.ReplaceAllString(content, "$2")
	content = strings.ReplaceAll(content, "|", " ")
	content = multiNewline.ReplaceAllString(content, "\n\n")
	return strings.TrimSpace(content)
}
