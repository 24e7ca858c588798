package domain

// ChangeType classifies a change to a file in the knowledge directory.
type ChangeType string

// Change types.
const (
	ChangeCreated ChangeType = "created"
	ChangeUpdated ChangeType = "updated"
	ChangeDeleted ChangeType = "deleted"
)

// FileChange is a single observed change to a knowledge file.
type FileChange struct {
	Type ChangeType
	Path string
}

// SkippedFile records a knowledge file that could not be ingested.
type SkippedFile struct {
	Path   string
	Reason string
}

// IngestReport summarises one ingestion run.
type IngestReport struct {
	// Output is the corpus file that was written.
	Output string

	// Documents is the number of documents written.
	Documents int

	// Skipped lists files whose text could not be extracted.
	Skipped []SkippedFile
}
