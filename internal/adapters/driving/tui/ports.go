// Package tui provides an interactive terminal chat with the materials advisor.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/materials-advisor/advisor/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces used by the TUI.
type Ports struct {
	// Advisor answers chat turns.
	Advisor driving.AdvisorService

	// Retrieval reports corpus state for the status bar. Optional.
	Retrieval driving.RetrievalService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(advisor driving.AdvisorService, retrieval driving.RetrievalService) *Ports {
	return &Ports{
		Advisor:   advisor,
		Retrieval: retrieval,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Advisor == nil {
		return ErrMissingAdvisorService
	}
	return nil
}
