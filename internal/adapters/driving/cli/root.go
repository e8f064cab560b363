// Package cli implements the command-line interface using cobra.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driving"
	"github.com/inkwell-labs/inkwell-cli/internal/logger"
)

// version is the build version, injected via Execute.
var version = "dev"

// Service handles used by the commands. Commands guard against nil so
// partial wiring fails with a clear message instead of a panic.
var (
	indexerService   driving.IndexerService
	retrieverService driving.RetrieverService
	composerService  driving.ComposerService
	assistantService driving.AssistantService
	pinService       driving.PinService
	selectionService driving.SelectionService
	settingsService  driving.SettingsService
)

// rewire rebuilds the service graph after a configuration change, so
// commands that update the journal directory can keep working against
// the new location in the same process.
var rewire func() error

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "inkwell",
	Short: "Ask questions of your own journal, offline",
	Long: `Inkwell indexes a directory of journal entries and answers questions
about them using local retrieval and a local generation endpoint.
No journal text ever leaves the machine.

Getting started:

  inkwell settings journal ~/journal
  inkwell index
  inkwell ask "when did I last feel really rested?"`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

// Services bundles the driving ports the CLI commands call.
type Services struct {
	Indexer    driving.IndexerService
	Retriever  driving.RetrieverService
	Composer   driving.ComposerService
	Assistant  driving.AssistantService
	Pins       driving.PinService
	Selections driving.SelectionService
	Settings   driving.SettingsService
}

// SetServices installs the service handles used by the commands.
func SetServices(s *Services) {
	if s == nil {
		return
	}
	indexerService = s.Indexer
	retrieverService = s.Retriever
	composerService = s.Composer
	assistantService = s.Assistant
	pinService = s.Pins
	selectionService = s.Selections
	settingsService = s.Settings
}

// SetRewire installs the hook that rebuilds services after the journal
// directory changes.
func SetRewire(f func() error) {
	rewire = f
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "verbose logging to stderr")
}

// Execute runs the root command with signal-aware cancellation.
func Execute(v string) error {
	if v != "" {
		version = v
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return rootCmd.ExecuteContext(ctx)
}
