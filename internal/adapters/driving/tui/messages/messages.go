// Package messages defines Bubbletea message types for the chat TUI.
package messages

import (
	"github.com/materials-advisor/advisor/internal/core/domain"
)

// ReplyReceived carries the advisor's answer, or the error that prevented one.
type ReplyReceived struct {
	Text string
	Err  error
}

// CorpusChecked reports the corpus state at startup.
type CorpusChecked struct {
	State     domain.CorpusState
	Documents int
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
