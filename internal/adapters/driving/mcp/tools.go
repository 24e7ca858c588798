package mcp

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/materials-advisor/advisor/internal/core/domain"
)

// RetrieveInput is the input schema for the retrieve_snippets tool.
type RetrieveInput struct {
	Query string `json:"query" jsonschema:"free-text question or keywords to match against the reference corpus"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of snippets to return (default 6)"`
}

// RetrieveOutput is the output schema for the retrieve_snippets tool.
type RetrieveOutput struct {
	Snippets []SnippetOutput `json:"snippets"`
	Count    int             `json:"count"`
}

// SnippetOutput is one reference snippet. Document names are withheld.
type SnippetOutput struct {
	Text  string `json:"text"`
	Score int    `json:"score"`
}

// AskInput is the input schema for the ask_advisor tool.
type AskInput struct {
	Question string              `json:"question" jsonschema:"the question for the materials advisor"`
	Action   string              `json:"action,omitempty" jsonschema:"optional task: call_plan, objections, qual_plan or wrap_summary"`
	Wrap     *domain.WrapContext `json:"wrap,omitempty" jsonschema:"optional account context"`
}

// AskOutput is the output schema for the ask_advisor tool.
type AskOutput struct {
	Text string `json:"text"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "retrieve_snippets",
		Description: "Find reference snippets about PCB and printed electronics materials by keyword overlap",
	}, s.handleRetrieve)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask_advisor",
		Description: "Ask the materials advisor a question, answered with reference materials",
	}, s.handleAsk)
}

// handleRetrieve handles the retrieve_snippets tool invocation.
func (s *Server) handleRetrieve(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RetrieveInput,
) (*mcp.CallToolResult, RetrieveOutput, error) {
	snippets := s.ports.Retrieval.Retrieve(ctx, input.Query, input.Limit)

	output := RetrieveOutput{
		Snippets: make([]SnippetOutput, len(snippets)),
		Count:    len(snippets),
	}
	for i := range snippets {
		output.Snippets[i] = SnippetOutput{
			Text:  snippets[i].Text,
			Score: snippets[i].Score,
		}
	}

	return nil, output, nil
}

// handleAsk handles the ask_advisor tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	if s.ports.Advisor == nil {
		return nil, AskOutput{}, ErrAdvisorUnavailable
	}
	if strings.TrimSpace(input.Question) == "" {
		return nil, AskOutput{}, ErrEmptyQuestion
	}

	req := domain.AdviceRequest{
		Action:   domain.Action(input.Action),
		Messages: []domain.Message{{Role: domain.RoleUser, Content: input.Question}},
	}
	if input.Wrap != nil {
		req.Wrap = *input.Wrap
	}

	reply, err := s.ports.Advisor.Respond(ctx, req)
	if err != nil {
		return nil, AskOutput{}, err
	}

	return nil, AskOutput{Text: reply.Text}, nil
}
