package services

import (
	"strings"

	"github.com/materials-advisor/advisor/internal/core/domain"
	"github.com/materials-advisor/advisor/internal/core/ports/driven"
	"github.com/materials-advisor/advisor/internal/logger"
)

// PromptAssembler turns a request and its reference snippets into the
// conversation sent to the model.
type PromptAssembler struct {
	prompts driven.PromptStore
}

// NewPromptAssembler creates an assembler. prompts may be nil, in which case
// the built-in prompt texts are used.
func NewPromptAssembler(prompts driven.PromptStore) *PromptAssembler {
	return &PromptAssembler{prompts: prompts}
}

// Messages returns the system prompt, the developer message carrying wrap
// context, references and task, then the client's conversation unchanged.
func (a *PromptAssembler) Messages(req domain.AdviceRequest, snippets []domain.ScoredSnippet) []driven.ChatMessage {
	messages := make([]driven.ChatMessage, 0, len(req.Messages)+2)
	messages = append(messages,
		driven.ChatMessage{
			Role:    domain.RoleSystem,
			Content: a.load(driven.PromptAdvisorSystem, domain.DefaultAdvisorSystemPrompt),
		},
		driven.ChatMessage{
			Role:    domain.RoleDeveloper,
			Content: a.DeveloperMessage(req.Wrap, req.Action, snippets),
		},
	)

	for _, m := range req.Messages {
		messages = append(messages, driven.ChatMessage{Role: m.Role, Content: m.Content})
	}
	return messages
}

// DeveloperMessage renders the wrap context, the reference block and the task.
func (a *PromptAssembler) DeveloperMessage(wrap domain.WrapContext, action domain.Action, snippets []domain.ScoredSnippet) string {
	var b strings.Builder
	b.WriteString("WRAP CONTEXT\n")
	b.WriteString(RenderWrap(wrap))
	b.WriteString("\n\n")
	b.WriteString(a.ReferenceBlock(snippets))
	b.WriteString("\n\nTASK\n")
	b.WriteString(action.Instruction())
	return b.String()
}

// ReferenceBlock joins snippet texts under the reference header.
// Sources are never included. With no snippets it returns the "none found" marker.
func (a *PromptAssembler) ReferenceBlock(snippets []domain.ScoredSnippet) string {
	if len(snippets) == 0 {
		return domain.NoReferencesMarker
	}

	texts := make([]string, len(snippets))
	for i, s := range snippets {
		texts[i] = s.Text
	}
	header := a.load(driven.PromptReferenceHeader, domain.DefaultReferenceHeader)
	return header + "\n" + strings.Join(texts, "\n\n")
}

// RenderWrap formats the wrap context, writing N/A for blank fields.
func RenderWrap(w domain.WrapContext) string {
	lines := []string{
		"Project: " + orNA(w.Project),
		"Customer type: " + orNA(w.CustomerType),
		"Application: " + orNA(w.Application),
		"Stage: " + orNA(w.Stage),
		"Priority: " + orNA(w.Priority),
		"Category: " + orNA(w.Category),
		"Constraints:",
		"- Signal/Impedance: " + orNA(w.Signal),
		"- Thermal/Reliability: " + orNA(w.Thermal),
		"- Mechanical/Form: " + orNA(w.Mechanical),
		"- Supply sensitivity: " + orNA(w.Supply),
		"Current material situation: " + orNA(w.Current),
	}
	return strings.Join(lines, "\n")
}

func orNA(v string) string {
	if v == "" {
		return domain.NotAvailable
	}
	return v
}

// load reads a prompt from the store, falling back to the default if unavailable.
func (a *PromptAssembler) load(name, fallback string) string {
	if a.prompts == nil {
		return fallback
	}
	prompt, err := a.prompts.Load(name)
	if err != nil || strings.TrimSpace(prompt) == "" {
		logger.Debug("Prompt %q unavailable, using built-in default", name)
		return fallback
	}
	return prompt
}
