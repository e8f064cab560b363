package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

var (
	generationURL   string
	generationModel string
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the journal location, retrieval parameters,
context budget and the generation endpoint.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsJournalCmd = &cobra.Command{
	Use:   "journal [dir]",
	Short: "Set the journal directory",
	Long:  `Points inkwell at the directory holding your journal entries.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsJournal,
}

var settingsGenerationCmd = &cobra.Command{
	Use:   "generation",
	Short: "Configure the generation endpoint",
	Long: `Configures the local generation endpoint used to answer questions.
Flags left empty keep their current value.`,
	RunE: runSettingsGeneration,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a single settings key",
	Long: `Updates one dotted settings key. Examples:

  inkwell settings set retrieval.top_k 10
  inkwell settings set retrieval.min_similarity 0.2
  inkwell settings set budget.total_tokens 4096
  inkwell settings set indexing.chunk_max_words 400`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsGenerationCmd.Flags().StringVar(&generationURL, "url", "", "generation endpoint base URL")
	settingsGenerationCmd.Flags().StringVar(&generationModel, "model", "", "model name")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsJournalCmd)
	settingsCmd.AddCommand(settingsGenerationCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Journal]")
	if settings.Journal.Dir != "" {
		cmd.Printf("  Directory: %s\n", settings.Journal.Dir)
	} else {
		cmd.Printf("  Directory: (not set)\n")
	}
	cmd.Println()

	cmd.Println("[Indexing]")
	cmd.Printf("  Chunk ceiling: %d words\n", settings.Indexing.ChunkMaxWords)
	cmd.Printf("  Min observe words: %d\n", settings.Indexing.MinObserveWords)
	cmd.Printf("  Dimensions: %d\n", settings.Indexing.Dimensions)
	cmd.Println()

	cmd.Println("[Retrieval]")
	cmd.Printf("  Top K: %d\n", settings.Retrieval.TopK)
	cmd.Printf("  Min similarity: %.2f\n", settings.Retrieval.MinSimilarity)
	cmd.Printf("  Unseen term weight: %.2f\n", settings.Retrieval.UnseenTermWeight)
	cmd.Println()

	cmd.Println("[Budget]")
	cmd.Printf("  Total tokens: %d\n", settings.Budget.TotalTokens)
	cmd.Printf("  Conversation: %d tokens, window %d\n",
		settings.Budget.ConversationTokens, settings.Budget.ConversationWindow)
	cmd.Printf("  Pinned fraction: %.2f\n", settings.Budget.PinnedFraction)
	cmd.Printf("  Custom fraction: %.2f\n", settings.Budget.CustomFraction)
	cmd.Println()

	cmd.Println("[Generation]")
	cmd.Printf("  Base URL: %s\n", settings.Generation.BaseURL)
	cmd.Printf("  Model: %s\n", settings.Generation.Model)
	cmd.Printf("  Timeout: %ds\n", settings.Generation.TimeoutSeconds)
	status := "configured"
	if !settings.Generation.IsConfigured() {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'inkwell settings journal <dir>' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsJournal(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.SetJournalDir(args[0]); err != nil {
		return fmt.Errorf("failed to set journal directory: %w", err)
	}
	if rewire != nil {
		if err := rewire(); err != nil {
			return fmt.Errorf("reconfigure services: %w", err)
		}
	}

	cmd.Printf("Journal directory set to: %s\n", args[0])
	cmd.Println("Run 'inkwell index' to build the index.")
	return nil
}

func runSettingsGeneration(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if generationURL == "" && generationModel == "" {
		return errors.New("nothing to change: pass --url and/or --model")
	}

	if err := settingsService.SetGeneration(generationURL, generationModel); err != nil {
		return fmt.Errorf("failed to configure generation endpoint: %w", err)
	}
	if rewire != nil {
		if err := rewire(); err != nil {
			return fmt.Errorf("reconfigure services: %w", err)
		}
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	cmd.Printf("Generation endpoint: %s (%s)\n", settings.Generation.BaseURL, settings.Generation.Model)

	if assistantService != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := assistantService.CheckGeneration(ctx); err != nil {
			cmd.Printf("Warning: endpoint not reachable: %v\n", err)
			cmd.Println("Answers will fall back to showing the composed context until it is.")
		} else {
			cmd.Println("Endpoint is reachable.")
		}
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, raw := args[0], args[1]
	if err := settingsService.Set(key, parseSettingValue(raw)); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	cmd.Printf("Set %s = %s\n", key, raw)
	return nil
}

// parseSettingValue converts a CLI argument into the narrowest type the
// settings store understands.
func parseSettingValue(raw string) any {
	if v, err := strconv.Atoi(raw); err == nil {
		return v
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return v
	}
	if v, err := strconv.ParseBool(raw); err == nil {
		return v
	}
	return raw
}
