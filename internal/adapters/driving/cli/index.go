package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driving"
)

var indexRebuild bool

var indexCmd = &cobra.Command{
	Use:   "index [dir]",
	Short: "Index the journal directory",
	Long: `Scans the journal directory and indexes every entry: normalise,
chunk, observe vocabulary statistics, embed, persist. Re-runs are
incremental; unchanged entries are skipped and entries whose files are
gone are removed from the index.

Passing a directory saves it as the journal directory first.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().BoolVar(&indexRebuild, "rebuild", false, "reset the vocabulary and re-embed every stored entry")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		if settingsService == nil {
			return errors.New("settings service not configured")
		}
		if err := settingsService.SetJournalDir(args[0]); err != nil {
			return fmt.Errorf("set journal directory: %w", err)
		}
		if rewire != nil {
			if err := rewire(); err != nil {
				return fmt.Errorf("reconfigure services: %w", err)
			}
		}
	}

	if indexerService == nil {
		return errors.New("indexer service not configured")
	}

	ctx := cmd.Context()

	if indexRebuild {
		cmd.Println("Rebuilding vocabulary...")
		if err := indexerService.RebuildVocabulary(ctx); err != nil {
			return fmt.Errorf("rebuild failed: %w", err)
		}
		cmd.Println("Vocabulary rebuilt.")
		return nil
	}

	cmd.Println("Indexing journal...")

	report, err := indexAllWithProgress(ctx, cmd, indexerService)
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	cmd.Printf("Indexed %d entries (%d unchanged, %d removed, %d failed).\n",
		report.Indexed, report.Skipped, report.Removed, report.Failed)
	return nil
}

// indexAllWithProgress runs IndexAll while displaying progress updates.
func indexAllWithProgress(
	ctx context.Context,
	cmd *cobra.Command,
	indexer driving.IndexerService,
) (*domain.IndexReport, error) {
	type outcome struct {
		report *domain.IndexReport
		err    error
	}

	// Run indexing in goroutine
	outCh := make(chan outcome, 1)
	go func() {
		report, err := indexer.IndexAll(ctx)
		outCh <- outcome{report: report, err: err}
	}()

	// Poll status every 500ms
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	lastCount := 0
	for {
		select {
		case out := <-outCh:
			if lastCount > 0 {
				cmd.Println()
			}
			return out.report, out.err
		case <-ticker.C:
			// Check progress (ignore status error - best effort)
			status, statusErr := indexer.Status(ctx)
			if statusErr == nil && status != nil && status.Entries > lastCount {
				cmd.Printf("\rIndexed %d entries...", status.Entries)
				lastCount = status.Entries
			}
		}
	}
}
