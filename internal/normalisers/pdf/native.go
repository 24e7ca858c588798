package pdf

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sync"

	ledongthuc "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/materials-advisor/advisor/internal/core/domain"
	"github.com/materials-advisor/advisor/internal/core/ports/driven"
	"github.com/materials-advisor/advisor/internal/logger"
)

// Ensure NativeNormaliser implements the interface.
var _ driven.Normaliser = (*NativeNormaliser)(nil)

var disableConfigDir sync.Once

// NativeNormaliser extracts PDF text in-process. Files are validated with
// pdfcpu before their text layer is read.
type NativeNormaliser struct {
	conf *model.Configuration
}

// NewNative creates an in-process PDF normaliser.
func NewNative() *NativeNormaliser {
	disableConfigDir.Do(api.DisableConfigDir)

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &NativeNormaliser{conf: conf}
}

// Name identifies the normaliser.
func (n *NativeNormaliser) Name() string {
	return "native-pdf"
}

// SupportedExtensions returns the extensions this normaliser handles.
func (n *NativeNormaliser) SupportedExtensions() []string {
	return []string{".pdf"}
}

// Priority returns the selection priority.
func (n *NativeNormaliser) Priority() int {
	return 55
}

// Normalise validates the file and returns the text of every page.
func (n *NativeNormaliser) Normalise(ctx context.Context, path string) (*domain.Document, error) {
	if path == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := filepath.Base(path)
	if err := api.ValidateFile(path, n.conf); err != nil {
		return nil, fmt.Errorf("invalid pdf %s: %w", name, err)
	}

	pages, err := api.PageCountFile(path)
	if err != nil {
		return nil, fmt.Errorf("count pages of %s: %w", name, err)
	}

	text, err := extractText(path)
	if err != nil {
		return nil, fmt.Errorf("extract text from %s: %w", name, err)
	}

	if text == "" && pages > 0 {
		logger.Warn("%s has %d pages but no text layer (scanned?)", name, pages)
	}
	logger.Debug("%s: %d pages, %d bytes of text", name, pages, len(text))

	return &domain.Document{Source: name, Text: text}, nil
}

// extractText reads the plain text layer. The reader panics on some
// malformed files, which is reported as an error.
func extractText(path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	f, r, err := ledongthuc.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	plain, err := r.GetPlainText()
	if err != nil {
		return "", err
	}

	data, err := io.ReadAll(plain)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
