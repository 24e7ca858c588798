package mcp

import (
	"github.com/materials-advisor/advisor/internal/core/ports/driving"
)

// Ports aggregates the driving ports the MCP server uses.
type Ports struct {
	// Retrieval selects reference snippets.
	Retrieval driving.RetrievalService

	// Advisor answers questions. Optional: without it ask_advisor fails.
	Advisor driving.AdvisorService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Retrieval == nil {
		return ErrMissingRetrievalService
	}
	return nil
}
