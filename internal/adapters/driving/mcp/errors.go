// Package mcp provides an MCP (Model Context Protocol) server adapter for the
// materials advisor. It lets AI assistants pull reference snippets from the
// corpus and ask the advisor questions.
package mcp

import "errors"

// ErrMissingRetrievalService is returned when the retrieval service is not provided.
var ErrMissingRetrievalService = errors.New("mcp: retrieval service is required")

// ErrAdvisorUnavailable is returned by ask_advisor when no advisor is wired.
var ErrAdvisorUnavailable = errors.New("mcp: advisor is not configured")

// ErrEmptyQuestion is returned by ask_advisor for a blank question.
var ErrEmptyQuestion = errors.New("mcp: question is required")
