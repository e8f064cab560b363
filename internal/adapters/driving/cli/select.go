package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var selectSession string

var selectCmd = &cobra.Command{
	Use:   "select",
	Short: "Manage per-session entry selections",
	Long: `Selections add specific entries to one session's generation context,
in the order they were selected. Unlike pins they are scoped to a
session and cleared in one step.`,
}

var selectAddCmd = &cobra.Command{
	Use:   "add [entry-id]",
	Short: "Select an entry for the session",
	Args:  cobra.ExactArgs(1),
	RunE:  runSelectAdd,
}

var selectClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the session's selections",
	RunE:  runSelectClear,
}

var selectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the session's selections",
	RunE:  runSelectList,
}

func init() {
	selectCmd.PersistentFlags().StringVarP(&selectSession, "session", "s", "default", "conversation session ID")

	selectCmd.AddCommand(selectAddCmd)
	selectCmd.AddCommand(selectClearCmd)
	selectCmd.AddCommand(selectListCmd)
	rootCmd.AddCommand(selectCmd)
}

func runSelectAdd(cmd *cobra.Command, args []string) error {
	if selectionService == nil {
		return errors.New("selection service not configured")
	}

	if err := selectionService.Select(context.Background(), selectSession, args[0]); err != nil {
		return fmt.Errorf("select failed: %w", err)
	}

	cmd.Printf("Selected for session %s: %s\n", selectSession, args[0])
	return nil
}

func runSelectClear(cmd *cobra.Command, _ []string) error {
	if selectionService == nil {
		return errors.New("selection service not configured")
	}

	if err := selectionService.Clear(context.Background(), selectSession); err != nil {
		return fmt.Errorf("clear failed: %w", err)
	}

	cmd.Printf("Cleared selections for session %s.\n", selectSession)
	return nil
}

func runSelectList(cmd *cobra.Command, _ []string) error {
	if selectionService == nil {
		return errors.New("selection service not configured")
	}

	selections, err := selectionService.List(context.Background(), selectSession)
	if err != nil {
		return fmt.Errorf("failed to list selections: %w", err)
	}

	if len(selections) == 0 {
		cmd.Printf("No selections for session %s.\n", selectSession)
		return nil
	}

	cmd.Printf("Selections for session %s:\n", selectSession)
	for i := range selections {
		cmd.Printf("  %d. %s\n", i+1, selections[i].EntryID)
	}

	return nil
}
