package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driven"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driving"
	"github.com/inkwell-labs/inkwell-cli/internal/logger"
)

// Ensure IndexerService implements the interface.
var _ driving.IndexerService = (*IndexerService)(nil)

// Watch throttling. Editors fire bursts of write events on a single
// save; the limiter spaces pipeline runs while the unchanged-mtime
// check discards the duplicates.
const (
	watchInterval = 250 * time.Millisecond
	watchBurst    = 4
)

// IndexerService drives the ingest pipeline: raw entries in, chunks
// and vocabulary statistics out.
type IndexerService struct {
	source     driven.EntrySource
	registry   driven.NormaliserRegistry
	pipeline   driven.PostProcessorPipeline
	embedder   driven.Embedder
	entryStore driven.EntryStore
	chunkStore driven.ChunkStore
	vocabulary driven.VocabularyStore

	// Whole-corpus runs are exclusive.
	mu      sync.Mutex
	running bool
}

// NewIndexerService creates a new indexer service.
func NewIndexerService(
	source driven.EntrySource,
	registry driven.NormaliserRegistry,
	pipeline driven.PostProcessorPipeline,
	embedder driven.Embedder,
	entryStore driven.EntryStore,
	chunkStore driven.ChunkStore,
	vocabulary driven.VocabularyStore,
) *IndexerService {
	return &IndexerService{
		source:     source,
		registry:   registry,
		pipeline:   pipeline,
		embedder:   embedder,
		entryStore: entryStore,
		chunkStore: chunkStore,
		vocabulary: vocabulary,
	}
}

// IndexAll scans the entry source and (re)indexes every entry, then
// removes stored entries whose source file has disappeared. Individual
// entry failures are counted, not fatal.
func (s *IndexerService) IndexAll(ctx context.Context) (*domain.IndexReport, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	if err := s.source.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate source: %w", err)
	}

	logger.Info("Starting index run")
	report := &domain.IndexReport{}

	entriesCh, errsCh := s.source.FullScan(ctx)
	seen, err := s.processEntries(ctx, entriesCh, errsCh, report)
	if err != nil {
		return nil, err
	}

	// Prune entries whose source file disappeared since the last run.
	stored, err := s.entryStore.ListEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	for i := range stored {
		if seen[stored[i].ID] {
			continue
		}
		if err := s.removeOne(ctx, stored[i].ID); err != nil {
			report.Failed++
			logger.Debug("Failed to remove %s: %v", stored[i].ID, err)
			continue
		}
		report.Removed++
	}

	logger.Info("Index complete: %d indexed, %d skipped, %d removed, %d errors",
		report.Indexed, report.Skipped, report.Removed, report.Failed)
	return report, nil
}

// processEntries drains the scan channels, indexing each entry as it
// arrives. Returns the set of entry IDs the scan produced.
func (s *IndexerService) processEntries(
	ctx context.Context,
	entriesCh <-chan domain.RawEntry,
	errsCh <-chan error,
	report *domain.IndexReport,
) (map[string]bool, error) {
	seen := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()

		case err, ok := <-errsCh:
			if !ok {
				errsCh = nil
				continue
			}
			return nil, fmt.Errorf("source error: %w", err)

		case raw, ok := <-entriesCh:
			if !ok {
				return seen, nil
			}

			seen[raw.ID] = true
			logger.Debug("Processing: %s", raw.Path)
			skipped, err := s.indexOne(ctx, raw)
			if err != nil {
				report.Failed++
				logger.Debug("Failed to index %s: %v", raw.Path, err)
				continue
			}
			if skipped {
				report.Skipped++
			} else {
				report.Indexed++
			}
		}
	}
}

// IndexEntry chunks, observes and embeds a single raw entry, replacing
// any chunks it had before. An entry whose stored copy is already
// current is left untouched.
func (s *IndexerService) IndexEntry(ctx context.Context, raw domain.RawEntry) error {
	skipped, err := s.indexOne(ctx, raw)
	if err != nil {
		return err
	}
	if skipped {
		logger.Debug("Entry %s unchanged, skipped", raw.ID)
	}
	return nil
}

// indexOne runs the ingest pipeline for one raw entry.
func (s *IndexerService) indexOne(ctx context.Context, raw domain.RawEntry) (skipped bool, err error) {
	// 1. SKIP IF UNCHANGED
	existing, err := s.entryStore.GetEntry(ctx, raw.ID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return false, fmt.Errorf("get entry: %w", err)
	}
	if existing != nil && !raw.LastModified.After(existing.LastModified) {
		return true, nil
	}

	// 2. NORMALISE (derive title, clean text)
	result, err := s.registry.Normalise(ctx, &raw)
	if err != nil {
		return false, fmt.Errorf("normalise: %w", err)
	}

	entry := &domain.Entry{
		ID:           raw.ID,
		Title:        result.Title,
		Path:         raw.Path,
		Text:         result.Text,
		WordCount:    len(strings.Fields(result.Text)),
		LastModified: raw.LastModified,
		IndexedAt:    time.Now().UTC(),
	}

	// 3. CHUNK (post-processor pipeline)
	chunks, err := s.pipeline.Process(ctx, entry)
	if err != nil {
		return false, fmt.Errorf("chunk: %w", err)
	}

	// 4. OBSERVE VOCABULARY (at most once per entry ID)
	if err := s.embedder.Observe(ctx, entry.ID, entry.Text); err != nil {
		return false, fmt.Errorf("observe: %w", err)
	}

	// 5. EMBED CHUNKS
	for i := range chunks {
		vec, err := s.embedder.Embed(ctx, chunks[i].Text)
		if err != nil {
			return false, fmt.Errorf("embed chunk %d: %w", i, err)
		}
		chunks[i].Embedding = vec
	}

	// 6. PERSIST (entry row first; chunks reference it)
	if err := s.entryStore.SaveEntry(ctx, entry); err != nil {
		return false, fmt.Errorf("save entry: %w", err)
	}
	if err := s.chunkStore.ReplaceChunks(ctx, entry.ID, chunks); err != nil {
		return false, fmt.Errorf("replace chunks: %w", err)
	}

	return false, nil
}

// RemoveEntry invalidates and deletes an entry and its chunks.
// Removing an entry that is not stored is a no-op.
func (s *IndexerService) RemoveEntry(ctx context.Context, entryID string) error {
	return s.removeOne(ctx, entryID)
}

func (s *IndexerService) removeOne(ctx context.Context, entryID string) error {
	// Chunks first: invalidate retrieval before the entry row goes.
	if err := s.chunkStore.DeleteChunks(ctx, entryID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("delete chunks: %w", err)
	}
	if err := s.entryStore.DeleteEntry(ctx, entryID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}

// Watch consumes source change events until ctx is cancelled,
// re-indexing or invalidating affected entries as they change.
func (s *IndexerService) Watch(ctx context.Context) error {
	events, err := s.source.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watch source: %w", err)
	}

	limiter := rate.NewLimiter(rate.Every(watchInterval), watchBurst)
	logger.Info("Watching journal for changes")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case change, ok := <-events:
			if !ok {
				return nil
			}
			if err := limiter.Wait(ctx); err != nil {
				return err
			}
			s.handleChange(ctx, change)
		}
	}
}

// handleChange applies one source change. Failures are logged, never
// fatal to the watch loop.
func (s *IndexerService) handleChange(ctx context.Context, change domain.RawEntryChange) {
	switch change.Type {
	case domain.ChangeCreated, domain.ChangeUpdated:
		logger.Debug("Change %s: %s", change.Type, change.Entry.Path)
		if err := s.IndexEntry(ctx, change.Entry); err != nil {
			logger.Warn("Failed to re-index %s: %v", change.Entry.ID, err)
		}

	case domain.ChangeDeleted:
		logger.Debug("Change deleted: %s", change.Entry.ID)
		if err := s.RemoveEntry(ctx, change.Entry.ID); err != nil {
			logger.Warn("Failed to remove %s: %v", change.Entry.ID, err)
		}
	}
}

// RebuildVocabulary resets all vocabulary state and rebuilds it from
// the persisted entries, then re-embeds every chunk. Used to recover
// from vocabulary corruption.
func (s *IndexerService) RebuildVocabulary(ctx context.Context) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	logger.Info("Rebuilding vocabulary from stored entries")

	// 1. RESET VOCABULARY STATE
	if err := s.embedder.Reset(ctx); err != nil {
		return fmt.Errorf("reset vocabulary: %w", err)
	}

	stored, err := s.entryStore.ListEntries(ctx)
	if err != nil {
		return fmt.Errorf("list entries: %w", err)
	}

	// 2. RE-OBSERVE EVERY ENTRY
	// Everything is observed before anything is embedded so every
	// vector sees the same finished statistics.
	for i := range stored {
		if err := s.embedder.Observe(ctx, stored[i].ID, stored[i].Text); err != nil {
			return fmt.Errorf("observe %s: %w", stored[i].ID, err)
		}
	}

	// 3. RE-EMBED EVERY CHUNK
	for i := range stored {
		chunks, err := s.chunkStore.GetChunks(ctx, stored[i].ID)
		if err != nil {
			return fmt.Errorf("get chunks for %s: %w", stored[i].ID, err)
		}
		for j := range chunks {
			vec, err := s.embedder.Embed(ctx, chunks[j].Text)
			if err != nil {
				return fmt.Errorf("embed chunk: %w", err)
			}
			chunks[j].Embedding = vec
		}
		if err := s.chunkStore.ReplaceChunks(ctx, stored[i].ID, chunks); err != nil {
			return fmt.Errorf("replace chunks for %s: %w", stored[i].ID, err)
		}
	}

	logger.Info("Vocabulary rebuilt: %d entries re-observed", len(stored))
	return nil
}

// Status reports corpus statistics.
func (s *IndexerService) Status(ctx context.Context) (*domain.IndexStatus, error) {
	status := &domain.IndexStatus{}

	stored, err := s.entryStore.ListEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	status.Entries = len(stored)
	for i := range stored {
		if stored[i].IndexedAt.After(status.LastIndexedAt) {
			status.LastIndexedAt = stored[i].IndexedAt
		}
	}

	if status.Chunks, err = s.chunkStore.CountChunks(ctx); err != nil {
		return nil, fmt.Errorf("count chunks: %w", err)
	}
	if status.Terms, err = s.vocabulary.TermCount(ctx); err != nil {
		return nil, fmt.Errorf("count terms: %w", err)
	}
	if status.ObservedEntries, err = s.vocabulary.ProcessedCount(ctx); err != nil {
		return nil, fmt.Errorf("count observed entries: %w", err)
	}

	return status, nil
}

// begin marks a whole-corpus run active.
func (s *IndexerService) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return domain.ErrIndexInProgress
	}
	s.running = true
	return nil
}

func (s *IndexerService) end() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}
