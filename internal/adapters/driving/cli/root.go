// Package cli provides the cobra command tree for supportbot.
package cli

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/supportbot/internal/core/domain"
	"github.com/custodia-labs/supportbot/internal/core/ports/driving"
	"github.com/custodia-labs/supportbot/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// AgentFactory builds a fresh support session.
type AgentFactory func(ctx context.Context) (driving.SupportAgent, error)

// KnowledgeLoader returns the active knowledge base without preparing a session.
type KnowledgeLoader func() (*domain.KnowledgeBase, error)

// Config holds the collaborators the commands need.
type Config struct {
	// Settings manages the TOML configuration.
	Settings driving.SettingsService

	// NewAgent builds a session for chat, ask and mcp serve.
	NewAgent AgentFactory

	// Knowledge loads the knowledge base for examples and kb.
	Knowledge KnowledgeLoader

	// Background runs alongside long-lived commands until their context ends.
	Background func(ctx context.Context)
}

var (
	settingsService driving.SettingsService
	newAgent        AgentFactory
	loadKnowledge   KnowledgeLoader
	background      func(ctx context.Context)

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "supportbot",
	Short: "Thoughtful AI customer support agent",
	Long: `supportbot answers questions about Thoughtful AI's automation agents
(EVA, CAM and PHIL) from a curated knowledge base.

Run without a subcommand to start an interactive chat session.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	RunE: runChat,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.Flags().BoolVar(&chatPlain, "plain", false, "use the line-based interface")
	useStandardStreams()
}

// useStandardStreams routes command output to stdout and errors to stderr.
// cobra's Print helpers default to stderr when no output writer is set.
func useStandardStreams() {
	rootCmd.SetIn(nil)
	rootCmd.SetOut(os.Stdout)
	rootCmd.SetErr(os.Stderr)
}

// Configure installs the collaborators used by every command.
func Configure(cfg Config) {
	settingsService = cfg.Settings
	newAgent = cfg.NewAgent
	loadKnowledge = cfg.Knowledge
	background = cfg.Background
}

// SetVersion overrides the reported version.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// buildAgent creates a session or explains why it cannot.
func buildAgent(ctx context.Context) (driving.SupportAgent, error) {
	if newAgent == nil {
		return nil, errors.New("support agent not configured")
	}
	return newAgent(ctx)
}

// knowledgeBase loads the knowledge base or explains why it cannot.
func knowledgeBase() (*domain.KnowledgeBase, error) {
	if loadKnowledge == nil {
		return nil, errors.New("knowledge base not configured")
	}
	return loadKnowledge()
}

// startBackground runs the background hook until the returned stop is called.
func startBackground(ctx context.Context) (stop func()) {
	if background == nil {
		return func() {}
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		background(ctx)
	}()
	return func() {
		cancel()
		<-done
	}
}

// commandContext returns the command's context, defaulting to Background.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
