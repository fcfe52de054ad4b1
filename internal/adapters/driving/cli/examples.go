package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/supportbot/internal/adapters/driving/chatcmd"
)

var examplesCmd = &cobra.Command{
	Use:   "examples",
	Short: "List example questions",
	Args:  cobra.NoArgs,
	RunE:  runExamples,
}

func init() {
	rootCmd.AddCommand(examplesCmd)
}

func runExamples(cmd *cobra.Command, _ []string) error {
	kb, err := knowledgeBase()
	if err != nil {
		return fmt.Errorf("failed to load knowledge base: %w", err)
	}

	if len(kb.Examples) == 0 {
		cmd.Println("No example questions.")
		return nil
	}

	cmd.Println(chatcmd.FormatExamples(kb.Examples))
	return nil
}
