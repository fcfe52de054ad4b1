package mcp

import (
	"github.com/custodia-labs/supportbot/internal/core/ports/driving"
)

// Ports aggregates the driving ports required by the MCP server.
type Ports struct {
	// Agent answers questions. One session serves every client of this server.
	Agent driving.SupportAgent
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Agent == nil {
		return ErrMissingAgent
	}
	return nil
}
