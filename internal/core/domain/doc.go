// Package domain defines the core business entities for the materials advisor.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A source text loaded from the corpus file
//   - Chunk: A normalised window of a document, recomputed per retrieval
//   - ScoredSnippet: A chunk that matched a query, with its overlap score
//   - CorpusLoad: The typed outcome of loading the corpus
//   - WrapContext: The structured conversation context sent with each request
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
