// Package chunker provides a fixed-size sliding-window text chunker.
package chunker

import (
	"fmt"
	"strings"

	"github.com/materials-advisor/advisor/internal/core/domain"
	"github.com/materials-advisor/advisor/internal/core/ports/driven"
)

// Ensure Processor implements the interface.
var _ driven.Chunker = (*Processor)(nil)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = domain.DefaultChunkSize

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = domain.DefaultChunkOverlap

// Processor splits document text into fixed-size overlapping chunks.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		p.chunkSize = size
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		p.overlap = overlap
	}
}

// New creates a new chunker processor with the given options.
// It returns domain.ErrInvalidChunking unless 0 <= overlap < size.
func New(opts ...Option) (*Processor, error) {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	if err := validate(p.chunkSize, p.overlap); err != nil {
		return nil, err
	}
	return p, nil
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Size returns the window size in characters.
func (p *Processor) Size() int {
	return p.chunkSize
}

// Overlap returns the number of characters shared by adjacent windows.
func (p *Processor) Overlap() int {
	return p.overlap
}

// Chunk splits the document text into chunks.
func (p *Processor) Chunk(doc domain.Document) []domain.Chunk {
	windows := split(Normalise(doc.Text), p.chunkSize, p.overlap)
	if len(windows) == 0 {
		return nil
	}

	chunks := make([]domain.Chunk, len(windows))
	for i, w := range windows {
		chunks[i] = domain.Chunk{
			Source:   doc.Source,
			Position: i,
			Text:     w,
		}
	}
	return chunks
}

// Normalise collapses every whitespace run to a single space and trims the ends.
func Normalise(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Split normalises text and slides a window of size characters across it with
// a step of size-overlap. The last window may be shorter than size.
func Split(text string, size, overlap int) ([]string, error) {
	if err := validate(size, overlap); err != nil {
		return nil, err
	}
	return split(Normalise(text), size, overlap), nil
}

func split(normalised string, size, overlap int) []string {
	if normalised == "" {
		return nil
	}

	runes := []rune(normalised)
	n := len(runes)
	step := size - overlap

	chunks := make([]string, 0, (n+step-1)/step)
	for start := 0; start < n; start += step {
		end := start + size
		if end > n {
			end = n
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}

func validate(size, overlap int) error {
	if size <= 0 || overlap < 0 || overlap >= size {
		return fmt.Errorf("%w: size=%d overlap=%d", domain.ErrInvalidChunking, size, overlap)
	}
	return nil
}
