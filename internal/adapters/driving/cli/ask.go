package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/supportbot/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/supportbot/internal/core/domain"
)

var askJSON bool

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single question",
	Long: `Ask a single question and print the answer.

The question may be given as one quoted argument or as several words.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the response as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	agent, err := buildAgent(ctx)
	if err != nil {
		return err
	}

	resp := agent.Respond(ctx, strings.Join(args, " "))

	if askJSON {
		return outputResponseJSON(cmd, resp)
	}

	cmd.Println(resp.Text)
	cmd.Println(styles.DefaultStyles().Footer(resp))
	return nil
}

func outputResponseJSON(cmd *cobra.Command, resp domain.Response) error {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
