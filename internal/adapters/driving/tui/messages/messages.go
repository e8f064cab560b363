// Package messages defines Bubbletea message types for the chat TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
)

// AnswerReceived carries one completed ask round back to the model.
type AnswerReceived struct {
	Result *domain.AskResult
	Err    error
}

// HistoryLoaded carries restored conversation history for the session.
type HistoryLoaded struct {
	Messages []domain.Message
	Err      error
}

// HistoryCleared is sent after the session history has been cleared.
type HistoryCleared struct {
	Err error
}

// StatusLoaded carries corpus statistics for the status line.
type StatusLoaded struct {
	Status *domain.IndexStatus
	Err    error
}
