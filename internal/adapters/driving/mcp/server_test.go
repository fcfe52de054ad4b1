package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil agent returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingAgent)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server, err := NewServer(&Ports{Agent: &mockAgent{}})
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("nil agent returns error", func(t *testing.T) {
		assert.ErrorIs(t, (&Ports{}).Validate(), ErrMissingAgent)
	})

	t.Run("nil ports returns error", func(t *testing.T) {
		var p *Ports
		assert.ErrorIs(t, p.Validate(), ErrMissingAgent)
	})

	t.Run("agent is valid", func(t *testing.T) {
		assert.NoError(t, (&Ports{Agent: &mockAgent{}}).Validate())
	})
}
