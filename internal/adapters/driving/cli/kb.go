package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/supportbot/internal/core/domain"
)

var kbJSON bool

var kbCmd = &cobra.Command{
	Use:   "kb",
	Short: "Inspect the knowledge base",
}

var kbListCmd = &cobra.Command{
	Use:   "list",
	Short: "List knowledge base entries",
	Args:  cobra.NoArgs,
	RunE:  runKBList,
}

var kbShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a knowledge base entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runKBShow,
}

// entryRecord is the JSON shape of a listed entry.
type entryRecord struct {
	ID         string   `json:"id"`
	Question   string   `json:"question"`
	Variations int      `json:"variations"`
	Facets     []string `json:"facets"`
}

func init() {
	kbListCmd.Flags().BoolVar(&kbJSON, "json", false, "output entries as JSON")
	kbCmd.AddCommand(kbListCmd)
	kbCmd.AddCommand(kbShowCmd)
	rootCmd.AddCommand(kbCmd)
}

func runKBList(cmd *cobra.Command, _ []string) error {
	kb, err := knowledgeBase()
	if err != nil {
		return fmt.Errorf("failed to load knowledge base: %w", err)
	}

	if kbJSON {
		return outputEntriesJSON(cmd, kb.Entries)
	}
	return outputEntriesTable(cmd, kb.Entries)
}

func outputEntriesJSON(cmd *cobra.Command, entries []domain.QAEntry) error {
	records := make([]entryRecord, len(entries))
	for i, e := range entries {
		facets := e.Facets
		if facets == nil {
			facets = []string{}
		}
		records[i] = entryRecord{
			ID:         e.ID,
			Question:   e.Question,
			Variations: len(e.Variations),
			Facets:     facets,
		}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entries: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputEntriesTable(cmd *cobra.Command, entries []domain.QAEntry) error {
	if len(entries) == 0 {
		cmd.Println("No entries.")
		return nil
	}

	cmd.Println("Entries:")
	cmd.Println()
	for _, e := range entries {
		cmd.Printf("  [%s] %s\n", e.ID, e.Question)
		cmd.Printf("      Variations: %d\n", len(e.Variations))
		if len(e.Facets) > 0 {
			cmd.Printf("      Facets: %s\n", strings.Join(e.Facets, ", "))
		}
	}
	return nil
}

func runKBShow(cmd *cobra.Command, args []string) error {
	kb, err := knowledgeBase()
	if err != nil {
		return fmt.Errorf("failed to load knowledge base: %w", err)
	}

	entry, err := kb.Entry(args[0])
	if err != nil {
		return err
	}

	cmd.Printf("ID: %s\n", entry.ID)
	cmd.Printf("Question: %s\n", entry.Question)
	if len(entry.Variations) > 0 {
		cmd.Println("Variations:")
		for _, v := range entry.Variations {
			cmd.Printf("  - %s\n", v)
		}
	}
	if len(entry.Facets) > 0 {
		cmd.Printf("Facets: %s\n", strings.Join(entry.Facets, ", "))
	}
	cmd.Println()
	cmd.Println(entry.Answer)
	return nil
}
