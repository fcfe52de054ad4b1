package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/supportbot/internal/adapters/driving/mcp"
)

var mcpPort int

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can ask
support questions and read the knowledge base.

Tools:
  ask        Answer a support question
  examples   List example questions

Resources:
  supportbot://entries        Knowledge base entries
  supportbot://entries/{id}   A single entry with its answer

By default, the server communicates over stdio using JSON-RPC. Use --port
to start an HTTP server instead.

Examples:
  # Stdio mode (default)
  supportbot mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  supportbot mcp serve --port 8080

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "supportbot": {
        "command": "/path/to/supportbot",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)

	agent, err := buildAgent(ctx)
	if err != nil {
		return err
	}

	server, err := mcp.NewServer(&mcp.Ports{Agent: agent})
	if err != nil {
		return err
	}

	stop := startBackground(ctx)
	defer stop()

	if mcpPort > 0 {
		addr := fmt.Sprintf(":%d", mcpPort)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(ctx, addr)
	}

	return server.Run(ctx)
}
