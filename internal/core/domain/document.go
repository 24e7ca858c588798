package domain

// DedupPrefixLen is the number of leading characters of a snippet's text
// that, together with its source, identify it for deduplication.
const DedupPrefixLen = 80

// Document is a single source text in the corpus.
// Documents are immutable once loaded.
type Document struct {
	// Source identifies the document, typically the original filename.
	Source string `json:"source"`

	// Text is the raw extracted text. It may contain noisy whitespace.
	Text string `json:"text"`
}

// Chunk is a whitespace-normalised window of a document's text.
// Chunks are never persisted.
type Chunk struct {
	// Source is the parent document's identifier.
	Source string

	// Position is the zero-based index of the chunk within its document.
	Position int

	// Text is the normalised chunk content.
	Text string
}

// ScoredSnippet is a chunk that matched a query.
type ScoredSnippet struct {
	// Score is the number of distinct query tokens found in the text.
	Score int `json:"score"`

	// Source is used for deduplication only and must not reach the model or the user.
	Source string `json:"-"`

	// Text is the chunk content.
	Text string `json:"text"`
}

// DedupKey returns the identity used to drop near-duplicate snippets:
// the source joined with the first DedupPrefixLen characters of the text.
func (s ScoredSnippet) DedupKey() string {
	prefix := []rune(s.Text)
	if len(prefix) > DedupPrefixLen {
		prefix = prefix[:DedupPrefixLen]
	}
	return s.Source + ":" + string(prefix)
}

// CorpusState describes the outcome of loading the corpus.
type CorpusState string

// Corpus states.
const (
	// CorpusLoaded means the corpus file was read and contained documents.
	CorpusLoaded CorpusState = "loaded"

	// CorpusEmpty means there is nothing to retrieve from.
	// Reason explains whether the file was missing, malformed, or empty.
	CorpusEmpty CorpusState = "empty"
)

// String returns the string representation.
func (s CorpusState) String() string {
	return string(s)
}

// CorpusLoad is the typed result of loading the corpus.
// An empty corpus is a normal state, not an error.
type CorpusLoad struct {
	State     CorpusState
	Documents []Document

	// Reason is set when State is CorpusEmpty.
	Reason error
}

// IsEmpty reports whether retrieval should proceed without documents.
func (l CorpusLoad) IsEmpty() bool {
	return l.State != CorpusLoaded || len(l.Documents) == 0
}
