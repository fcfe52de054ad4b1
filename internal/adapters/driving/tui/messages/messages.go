// Package messages defines Bubbletea message types for the chat TUI.
// Messages represent events that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/supportbot/internal/core/domain"
)

// ResponseReceived carries the agent's reply to a submitted question.
type ResponseReceived struct {
	Query    string
	Response domain.Response
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the session should end.
type Quit struct{}
