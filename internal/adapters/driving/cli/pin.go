package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
)

var (
	pinAddFolder    bool
	pinRemoveFolder bool
)

var pinCmd = &cobra.Command{
	Use:   "pin",
	Short: "Manage always-include pins",
	Long: `Pins mark entries or folders as always included in the generation
context, ahead of similarity retrieval.`,
}

var pinAddCmd = &cobra.Command{
	Use:   "add [target]",
	Short: "Pin an entry or folder",
	Args:  cobra.ExactArgs(1),
	RunE:  runPinAdd,
}

var pinRemoveCmd = &cobra.Command{
	Use:   "remove [target]",
	Short: "Remove a pin",
	Args:  cobra.ExactArgs(1),
	RunE:  runPinRemove,
}

var pinListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pins",
	RunE:  runPinList,
}

func init() {
	pinAddCmd.Flags().BoolVarP(&pinAddFolder, "folder", "f", false, "pin a folder instead of an entry")
	pinRemoveCmd.Flags().BoolVarP(&pinRemoveFolder, "folder", "f", false, "remove a folder pin")

	pinCmd.AddCommand(pinAddCmd)
	pinCmd.AddCommand(pinRemoveCmd)
	pinCmd.AddCommand(pinListCmd)
	rootCmd.AddCommand(pinCmd)
}

func runPinAdd(cmd *cobra.Command, args []string) error {
	if pinService == nil {
		return errors.New("pin service not configured")
	}

	kind := domain.PinKindEntry
	if pinAddFolder {
		kind = domain.PinKindFolder
	}

	if err := pinService.Pin(context.Background(), kind, args[0]); err != nil {
		return fmt.Errorf("pin failed: %w", err)
	}

	cmd.Printf("Pinned %s: %s\n", kind, args[0])
	return nil
}

func runPinRemove(cmd *cobra.Command, args []string) error {
	if pinService == nil {
		return errors.New("pin service not configured")
	}

	kind := domain.PinKindEntry
	if pinRemoveFolder {
		kind = domain.PinKindFolder
	}

	if err := pinService.Unpin(context.Background(), kind, args[0]); err != nil {
		return fmt.Errorf("unpin failed: %w", err)
	}

	cmd.Printf("Unpinned %s: %s\n", kind, args[0])
	return nil
}

func runPinList(cmd *cobra.Command, _ []string) error {
	if pinService == nil {
		return errors.New("pin service not configured")
	}

	pins, err := pinService.List(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list pins: %w", err)
	}

	if len(pins) == 0 {
		cmd.Println("No pins.")
		return nil
	}

	cmd.Println("Pins:")
	for i := range pins {
		cmd.Printf("  [%s] %s\n", pins[i].Kind, pins[i].Target)
	}

	return nil
}
