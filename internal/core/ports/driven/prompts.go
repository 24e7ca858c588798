package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files or embed them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should return a sensible default
	// or an error, depending on whether the prompt is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names used throughout the application.
const (
	// PromptAdvisorSystem is the system prompt that sets the advisor's voice and rules.
	// This prompt has no format placeholders.
	PromptAdvisorSystem = "advisor_system"

	// PromptReferenceHeader introduces the retrieved reference snippets.
	// This prompt has no format placeholders.
	PromptReferenceHeader = "reference_header"
)
