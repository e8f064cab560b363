package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askSession string

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about your journal",
	Long: `Composes journal context for the question and asks the local
generation endpoint. When the endpoint is unreachable or times out,
the command still reports the composed context together with a
structured no-answer fallback instead of failing.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askSession, "session", "s", "default", "conversation session ID")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]

	if assistantService == nil {
		return errors.New("assistant service not configured")
	}

	result, err := assistantService.Ask(cmd.Context(), askSession, question)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	cmd.Println(result.Reply.Answer)

	if result.Reply.Mood != "" || len(result.Reply.Tags) > 0 {
		cmd.Println()
	}
	if result.Reply.Mood != "" {
		cmd.Printf("Mood: %s\n", result.Reply.Mood)
	}
	if len(result.Reply.Tags) > 0 {
		cmd.Printf("Tags: %s\n", strings.Join(result.Reply.Tags, ", "))
	}

	if result.Context.Degraded {
		cmd.Printf("\nWarning: degraded context: %s\n", result.Context.DegradedReason)
	}

	return nil
}
