package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/supportbot/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for supportbot resources.
	uriScheme = "supportbot://"

	entriesURI = uriScheme + "entries"
)

// entrySummary is one item of the entries listing.
type entrySummary struct {
	ID         string   `json:"id"`
	Question   string   `json:"question"`
	Variations int      `json:"variations"`
	Facets     []string `json:"facets"`
}

// entryDetail is the full view of a single entry.
type entryDetail struct {
	ID         string   `json:"id"`
	Question   string   `json:"question"`
	Variations []string `json:"variations"`
	Facets     []string `json:"facets"`
	Answer     string   `json:"answer"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         entriesURI,
		Name:        "entries",
		Description: "Knowledge base entries with their canonical questions",
		MIMEType:    "application/json",
	}, s.handleEntriesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: entriesURI + "/{id}",
		Name:        "entry",
		Description: "A single knowledge base entry including its answer",
		MIMEType:    "application/json",
	}, s.handleEntryResource)
}

// handleEntriesResource lists every entry in declaration order.
func (s *Server) handleEntriesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	entries := s.ports.Agent.Entries()

	infos := make([]entrySummary, len(entries))
	for i, e := range entries {
		infos[i] = entrySummary{
			ID:         e.ID,
			Question:   e.Question,
			Variations: len(e.Variations),
			Facets:     nonNil(e.Facets),
		}
	}

	return jsonResult(req.Params.URI, infos, "entries")
}

// handleEntryResource returns one entry by the ID in its URI.
func (s *Server) handleEntryResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractEntryID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	kb := domain.KnowledgeBase{Entries: s.ports.Agent.Entries()}
	entry, err := kb.Entry(id)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	return jsonResult(req.Params.URI, entryDetail{
		ID:         entry.ID,
		Question:   entry.Question,
		Variations: nonNil(entry.Variations),
		Facets:     nonNil(entry.Facets),
		Answer:     entry.Answer,
	}, "entry")
}

func jsonResult(uri string, v any, what string) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", what, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// extractEntryID extracts the entry ID from a URI like supportbot://entries/{id}.
func extractEntryID(uri string) string {
	const prefix = entriesURI + "/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
