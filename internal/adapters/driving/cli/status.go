package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show corpus statistics",
	Long:  `Reports indexed entries, chunks, vocabulary size and the last index time.`,
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output status as JSON")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if indexerService == nil {
		return errors.New("indexer service not configured")
	}

	status, err := indexerService.Status(context.Background())
	if err != nil {
		return fmt.Errorf("failed to get status: %w", err)
	}

	if statusJSON {
		data, err := json.MarshalIndent(status, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal status: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println("Corpus")
	cmd.Println("======")
	cmd.Printf("  Entries: %d\n", status.Entries)
	cmd.Printf("  Chunks: %d\n", status.Chunks)
	cmd.Printf("  Vocabulary terms: %d\n", status.Terms)
	cmd.Printf("  Observed entries: %d\n", status.ObservedEntries)
	if status.LastIndexedAt.IsZero() {
		cmd.Printf("  Last indexed: never\n")
	} else {
		cmd.Printf("  Last indexed: %s\n", status.LastIndexedAt.Format("2006-01-02 15:04:05"))
	}

	if settingsService != nil {
		cmd.Println()
		if err := settingsService.Validate(); err != nil {
			cmd.Printf("Warning: %v\n", err)
			cmd.Println("Run 'inkwell settings journal <dir>' to point inkwell at your journal.")
		} else {
			cmd.Println("Configuration is valid.")
		}
	}

	return nil
}
