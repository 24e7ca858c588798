package tui

import "errors"

// ErrMissingAdvisorService is returned when the advisor service is not provided.
var ErrMissingAdvisorService = errors.New("tui: advisor service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
