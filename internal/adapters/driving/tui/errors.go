package tui

import "errors"

// ErrMissingAgent is returned when no support agent is provided.
var ErrMissingAgent = errors.New("tui: support agent is required")
