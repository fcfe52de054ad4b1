// Package tui provides the interactive chat interface for supportbot.
// It is a driving adapter over the SupportAgent port.
package tui

import (
	"github.com/custodia-labs/supportbot/internal/core/ports/driving"
)

// Ports aggregates the driving ports the TUI needs.
type Ports struct {
	// Agent answers questions for this session.
	Agent driving.SupportAgent
}

// NewPorts creates a new Ports aggregate.
func NewPorts(agent driving.SupportAgent) *Ports {
	return &Ports{Agent: agent}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Agent == nil {
		return ErrMissingAgent
	}
	return nil
}
