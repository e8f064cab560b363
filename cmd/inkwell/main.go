package main

import (
	"fmt"
	"os"
	"time"

	"github.com/inkwell-labs/inkwell-cli/internal/adapters/driven/config/file"
	"github.com/inkwell-labs/inkwell-cli/internal/adapters/driven/embedding/tfidf"
	"github.com/inkwell-labs/inkwell-cli/internal/adapters/driven/generation/ollama"
	"github.com/inkwell-labs/inkwell-cli/internal/adapters/driven/storage/memory"
	"github.com/inkwell-labs/inkwell-cli/internal/adapters/driven/storage/sqlite"
	"github.com/inkwell-labs/inkwell-cli/internal/adapters/driving/cli"
	"github.com/inkwell-labs/inkwell-cli/internal/connectors/journal"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driven"
	"github.com/inkwell-labs/inkwell-cli/internal/core/services"
	"github.com/inkwell-labs/inkwell-cli/internal/normalisers"
	"github.com/inkwell-labs/inkwell-cli/internal/postprocessors"
)

// version is set via ldflags at build time
var version = "dev"

func main() {
	app, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer app.close()

	cli.SetRewire(app.wire)
	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}

// app owns the storage handles and rebuilds the service graph from
// current settings. Storage outlives rewires; services do not.
type app struct {
	config *file.ConfigStore
	store  *sqlite.Store // nil when persistent storage is unavailable

	vocabulary    driven.VocabularyStore
	entries       driven.EntryStore
	chunks        driven.ChunkStore
	conversations driven.ConversationStore
	pins          driven.PinStore
	selections    driven.SelectionStore
}

func newApp() (*app, error) {
	config, err := file.NewConfigStore("")
	if err != nil {
		return nil, fmt.Errorf("failed to set up config store: %w", err)
	}

	a := &app{config: config}
	a.openStores()
	if err := a.wire(); err != nil {
		return nil, err
	}
	return a, nil
}

// openStores opens the sqlite store, falling back to in-memory storage
// when the data directory is unusable. The fallback keeps every command
// working for the session; nothing persists.
func (a *app) openStores() {
	store, err := sqlite.NewStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: persistent storage unavailable (%v); using in-memory storage for this run\n", err)
		entries := memory.NewEntryStore()
		a.vocabulary = memory.NewVocabularyStore()
		a.entries = entries
		a.chunks = entries
		a.conversations = memory.NewConversationStore()
		a.pins = memory.NewPinStore()
		a.selections = memory.NewSelectionStore()
		return
	}

	a.store = store
	a.vocabulary = store.VocabularyStore()
	a.entries = store.EntryStore()
	a.chunks = store.ChunkStore()
	a.conversations = store.ConversationStore()
	a.pins = store.PinStore()
	a.selections = store.SelectionStore()
}

// wire builds the service graph from current settings and installs it
// into the CLI. Called once at startup and again after a settings
// write, so commands like `settings set journal.dir` take effect
// without restarting long-lived sessions.
func (a *app) wire() error {
	settingsService := services.NewSettingsService(a.config)
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	embedder := tfidf.New(a.vocabulary,
		tfidf.WithDimensions(settings.Indexing.Dimensions),
		tfidf.WithMinObserveWords(settings.Indexing.MinObserveWords),
		tfidf.WithUnseenTermWeight(settings.Retrieval.UnseenTermWeight),
	)

	source := journal.New(settings.Journal.Dir)
	registry := normalisers.NewDefaultRegistry()

	processors := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(processors)
	chunker, err := processors.Build("chunker", map[string]any{
		"max_words": settings.Indexing.ChunkMaxWords,
	})
	if err != nil {
		return fmt.Errorf("failed to build chunker: %w", err)
	}
	pipeline := postprocessors.NewPipeline(chunker)

	indexer := services.NewIndexerService(
		source, registry, pipeline, embedder,
		a.entries, a.chunks, a.vocabulary,
	)

	retriever := services.NewRetrieverService(embedder, a.chunks, a.entries, settings.Retrieval)
	retriever.SetRebuilder(indexer)

	composer := services.NewComposerService(
		retriever, a.conversations, a.pins, a.selections, a.entries, settings.Budget,
	)

	generator := ollama.New(ollama.Config{
		BaseURL: settings.Generation.BaseURL,
		Model:   settings.Generation.Model,
		Timeout: time.Duration(settings.Generation.TimeoutSeconds) * time.Second,
	})

	assistant := services.NewAssistantService(composer, generator, a.conversations, settings.Generation)
	if prompts, err := file.NewPromptStore(""); err == nil {
		assistant.SetPromptStore(prompts)
	}

	cli.SetServices(&cli.Services{
		Indexer:    indexer,
		Retriever:  retriever,
		Composer:   composer,
		Assistant:  assistant,
		Pins:       services.NewPinService(a.pins, a.entries),
		Selections: services.NewSelectionService(a.selections, a.entries),
		Settings:   settingsService,
	})

	return nil
}

func (a *app) close() {
	if a.store != nil {
		_ = a.store.Close()
	}
}
