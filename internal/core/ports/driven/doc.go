// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - DocumentStore: Reads and writes the flat JSON corpus
//   - Chunker: Splits document text into overlapping windows
//   - ConfigStore: Application configuration
//   - PromptStore: User-editable prompt templates
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: Language model completions. Without it, retrieval still works but advice is unavailable.
//   - TokenCounter: Prompt size estimation. Without it, prompt sizes are not logged.
//   - NormaliserRegistry and FileSource: Only needed by ingestion.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
