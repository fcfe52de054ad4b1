// Package mcp provides an MCP (Model Context Protocol) server adapter for supportbot.
// It lets AI assistants ask support questions and read the knowledge base.
package mcp

import "errors"

// ErrMissingAgent is returned when the support agent is not provided.
var ErrMissingAgent = errors.New("mcp: support agent is required")
