package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/materials-advisor/advisor/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for advisor resources.
	uriScheme = "advisor://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "corpus",
		Name:        "corpus",
		Description: "State of the reference corpus",
		MIMEType:    "application/json",
	}, s.handleCorpusResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "actions",
		Name:        "actions",
		Description: "Tasks the advisor can perform",
		MIMEType:    "application/json",
	}, s.handleActionsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "actions/{action}",
		Name:        "action-instruction",
		Description: "Instruction sent to the model for an action",
		MIMEType:    "text/plain",
	}, s.handleActionResource)
}

// handleCorpusResource reports whether the corpus is loaded and its size.
// Document names are not exposed.
func (s *Server) handleCorpusResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	load := s.ports.Retrieval.Corpus(ctx)

	info := struct {
		State     string `json:"state"`
		Documents int    `json:"documents"`
		Reason    string `json:"reason,omitempty"`
	}{
		State:     load.State.String(),
		Documents: len(load.Documents),
	}
	if load.Reason != nil {
		info.Reason = load.Reason.Error()
	}

	return jsonResult(req.Params.URI, info)
}

// handleActionsResource lists the available actions.
func (s *Server) handleActionsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type actionInfo struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	actions := domain.Actions()
	infos := make([]actionInfo, len(actions))
	for i, a := range actions {
		infos[i] = actionInfo{Name: a.String(), Description: a.Description()}
	}

	return jsonResult(req.Params.URI, infos)
}

// handleActionResource returns the instruction text for one action.
func (s *Server) handleActionResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	action := domain.Action(extractAction(req.Params.URI))
	if !action.IsValid() {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     action.Instruction(),
		}},
	}, nil
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractAction extracts the action name from a URI like advisor://actions/{action}.
func extractAction(uri string) string {
	const prefix = uriScheme + "actions/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
