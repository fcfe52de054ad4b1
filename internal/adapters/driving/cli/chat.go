package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/supportbot/internal/adapters/driving/chatcmd"
	"github.com/custodia-labs/supportbot/internal/adapters/driving/tui"
	"github.com/custodia-labs/supportbot/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/supportbot/internal/core/ports/driving"
	"github.com/custodia-labs/supportbot/internal/logger"
)

var chatPlain bool

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive support session",
	Long: `Start an interactive support session.

A full-screen interface is used when stdin is a terminal. Use --plain, or
pipe input, for a line-based session.

Session commands:
  /help       Show the welcome message
  /examples   List example questions
  /quit       End the session (also /exit, quit, exit)`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().BoolVar(&chatPlain, "plain", false, "use the line-based interface")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)

	agent, err := buildAgent(ctx)
	if err != nil {
		return err
	}

	stop := startBackground(ctx)
	defer stop()

	if !chatPlain && isTerminal(cmd.InOrStdin()) {
		err = runChatTUI(ctx, agent)
	} else {
		err = runChatREPL(ctx, cmd, agent)
	}
	if err != nil {
		return err
	}

	printSummary(cmd, agent)
	return nil
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func runChatTUI(ctx context.Context, agent driving.SupportAgent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	app, err := tui.NewApp(tui.NewPorts(agent))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	if err := app.WithContext(ctx).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	if err := app.Err(); err != nil {
		logger.Warn("chat session error: %v", err)
	}
	return nil
}

// runChatREPL reads one question per line until EOF or a quit command.
func runChatREPL(ctx context.Context, cmd *cobra.Command, agent driving.SupportAgent) error {
	s := styles.DefaultStyles()

	cmd.Println(chatcmd.Welcome)
	cmd.Println()
	cmd.Println(s.Status(agent.ExternalEnabled()))
	cmd.Println()

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		cmd.Print("You: ")
		if !scanner.Scan() {
			cmd.Println()
			break
		}
		if ctx.Err() != nil {
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch chatcmd.Parse(line) {
		case chatcmd.Quit:
			return nil
		case chatcmd.Help:
			cmd.Println()
			cmd.Println(chatcmd.Welcome)
			cmd.Println()
			continue
		case chatcmd.Examples:
			cmd.Println()
			cmd.Println(chatcmd.FormatExamples(agent.Examples()))
			cmd.Println()
			continue
		case chatcmd.None:
		}

		resp := agent.Respond(ctx, line)
		cmd.Println()
		cmd.Printf("Thoughtful AI Agent: %s\n", resp.Text)
		cmd.Println(s.Footer(resp))
		cmd.Println()
	}

	return scanner.Err()
}

// printSummary writes the exit summary and farewell.
func printSummary(cmd *cobra.Command, agent driving.SupportAgent) {
	if summary := chatcmd.FormatSummary(agent.Summary(chatcmd.SummaryLines)); summary != "" {
		cmd.Println()
		cmd.Println(summary)
	}
	cmd.Println()
	cmd.Println(chatcmd.Goodbye)
}
