package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
)

var (
	contextSession string
	contextTopK    int
	contextRender  bool
)

var contextCmd = &cobra.Command{
	Use:   "context [query]",
	Short: "Inspect the composed generation context",
	Long: `Runs context composition for a query without calling the generation
endpoint, and prints the included blocks with their tier, estimated
token cost and source. Useful for checking what an answer would be
grounded on before asking.`,
	Args: cobra.ExactArgs(1),
	RunE: runContext,
}

func init() {
	contextCmd.Flags().StringVarP(&contextSession, "session", "s", "default", "conversation session ID")
	contextCmd.Flags().IntVar(&contextTopK, "top-k", 0, "retrieved chunks to consider (0 = configured default)")
	contextCmd.Flags().BoolVar(&contextRender, "render", false, "print the rendered context text instead of the block table")
	rootCmd.AddCommand(contextCmd)
}

func runContext(cmd *cobra.Command, args []string) error {
	query := args[0]

	if composerService == nil {
		return errors.New("composer service not configured")
	}

	composed, err := composerService.Compose(context.Background(), domain.ContextRequest{
		SessionID: contextSession,
		Query:     query,
		TopK:      contextTopK,
	})
	if err != nil {
		return fmt.Errorf("compose failed: %w", err)
	}

	if contextRender {
		cmd.Println(composed.Render())
		return nil
	}

	cmd.Printf("Context for %q (%d/%d tokens):\n", query, composed.TokensUsed, composed.Budget.TotalTokens)
	cmd.Println()
	for i := range composed.Blocks {
		b := &composed.Blocks[i]
		if b.Score > 0 {
			cmd.Printf("  [%s] %s (%d tokens, score %.2f)\n", b.Tier, b.Source, b.Tokens, b.Score)
		} else {
			cmd.Printf("  [%s] %s (%d tokens)\n", b.Tier, b.Source, b.Tokens)
		}
	}
	cmd.Println()

	if composed.Degraded {
		cmd.Printf("Warning: degraded context: %s\n", composed.DegradedReason)
	}

	return nil
}
