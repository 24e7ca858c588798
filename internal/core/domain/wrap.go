package domain

// NotAvailable is rendered for wrap fields the client left blank.
const NotAvailable = "N/A"

// WrapContext is the structured account context a sales engineer fills in
// before asking for advice. Every field is optional.
type WrapContext struct {
	Project      string `json:"project"`
	CustomerType string `json:"customerType"`
	Application  string `json:"application"`
	Stage        string `json:"stage"`
	Priority     string `json:"priority"`
	Category     string `json:"category"`

	// Constraints.
	Signal     string `json:"signal"`
	Thermal    string `json:"thermal"`
	Mechanical string `json:"mechanical"`
	Supply     string `json:"supply"`

	// Current describes the customer's current material situation.
	Current string `json:"current"`
}

// Action selects the task the advisor performs on a request.
type Action string

// Available actions.
const (
	// ActionRespond answers the last user message. Unknown actions fall back to it.
	ActionRespond Action = "respond"

	// ActionCallPlan drafts a customer call plan.
	ActionCallPlan Action = "call_plan"

	// ActionObjections lists likely objections with responses.
	ActionObjections Action = "objections"

	// ActionQualPlan drafts a qualification plan.
	ActionQualPlan Action = "qual_plan"

	// ActionWrapSummary summarises the wrap and next steps.
	ActionWrapSummary Action = "wrap_summary"
)

// Actions returns the actions with a dedicated task instruction.
func Actions() []Action {
	return []Action{ActionCallPlan, ActionObjections, ActionQualPlan, ActionWrapSummary}
}

// IsValid returns true if the action is recognised.
func (a Action) IsValid() bool {
	switch a {
	case ActionRespond, ActionCallPlan, ActionObjections, ActionQualPlan, ActionWrapSummary:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (a Action) String() string {
	return string(a)
}

// Instruction returns the task line sent to the model for this action.
func (a Action) Instruction() string {
	switch a {
	case ActionCallPlan:
		return "Create a customer call plan (discovery Qs, talk track, close)."
	case ActionObjections:
		return "List likely objections + customer-friendly responses."
	case ActionQualPlan:
		return "Create a practical qualification plan (trial → pilot → production)."
	case ActionWrapSummary:
		return "Create a concise wrap summary + next steps."
	default:
		return "Respond to the last user message."
	}
}

// Description returns a human-readable description of the action.
func (a Action) Description() string {
	switch a {
	case ActionRespond:
		return "Answer the last message"
	case ActionCallPlan:
		return "Call plan"
	case ActionObjections:
		return "Objection handling"
	case ActionQualPlan:
		return "Qualification plan"
	case ActionWrapSummary:
		return "Wrap summary"
	default:
		return unknownDescription
	}
}

// Message roles.
const (
	RoleSystem    = "system"
	RoleDeveloper = "developer"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single turn of the client conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// AdviceRequest is everything needed to produce one advisor reply.
type AdviceRequest struct {
	Wrap     WrapContext
	Action   Action
	Messages []Message
}

// LastUserMessage returns the content of the most recent user turn,
// or the empty string when there is none.
func (r AdviceRequest) LastUserMessage() string {
	for i := len(r.Messages) - 1; i >= 0; i-- {
		if r.Messages[i].Role == RoleUser {
			return r.Messages[i].Content
		}
	}
	return ""
}

// AdviceReply is the advisor's answer.
type AdviceReply struct {
	Text string `json:"text"`

	// SnippetCount is how many reference snippets informed the answer.
	SnippetCount int `json:"-"`

	// PromptTokens is the estimated size of the assembled prompt.
	PromptTokens int `json:"-"`
}
