package mcp

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the customer's question about Thoughtful AI"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer     string  `json:"answer"`
	Source     string  `json:"source"`
	Intent     string  `json:"intent,omitempty"`
	Confidence float64 `json:"confidence"`
	EntryID    string  `json:"entry_id,omitempty"`
}

// ExamplesInput is the empty input schema for the examples tool.
type ExamplesInput struct{}

// ExamplesOutput is the output schema for the examples tool.
type ExamplesOutput struct {
	Examples []string `json:"examples"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a customer support question about Thoughtful AI and its agents (EVA, CAM, PHIL)",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "examples",
		Description: "List example questions the support agent can answer",
	}, s.handleExamples)
}

// handleAsk handles the ask tool invocation. It never fails: every
// question, including an empty one, gets an answer.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	resp := s.ports.Agent.Respond(ctx, strings.TrimSpace(input.Question))

	return nil, AskOutput{
		Answer:     resp.Text,
		Source:     resp.Source.String(),
		Intent:     resp.Intent.String(),
		Confidence: resp.Confidence,
		EntryID:    resp.EntryID,
	}, nil
}

// handleExamples handles the examples tool invocation.
func (s *Server) handleExamples(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ ExamplesInput,
) (*mcp.CallToolResult, ExamplesOutput, error) {
	examples := s.ports.Agent.Examples()
	if examples == nil {
		examples = []string{}
	}
	return nil, ExamplesOutput{Examples: examples}, nil
}
