package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driven"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driving"
	"github.com/inkwell-labs/inkwell-cli/internal/logger"
)

// Ensure RetrieverService implements the interface.
var _ driving.RetrieverService = (*RetrieverService)(nil)

// VocabularyRebuilder recovers vocabulary state after corruption is
// detected mid-query. The indexer implements it.
type VocabularyRebuilder interface {
	RebuildVocabulary(ctx context.Context) error
}

// RetrieverService ranks stored chunks by cosine similarity to a query
// using a linear scan over every persisted chunk vector. Linear is
// deliberate: corpora stay in the low thousands of chunks and an index
// structure would buy nothing at that size.
type RetrieverService struct {
	embedder   driven.Embedder
	chunkStore driven.ChunkStore
	entryStore driven.EntryStore
	settings   domain.RetrievalSettings
	rebuilder  VocabularyRebuilder
}

// NewRetrieverService creates a new retriever service.
func NewRetrieverService(
	embedder driven.Embedder,
	chunkStore driven.ChunkStore,
	entryStore driven.EntryStore,
	settings domain.RetrievalSettings,
) *RetrieverService {
	return &RetrieverService{
		embedder:   embedder,
		chunkStore: chunkStore,
		entryStore: entryStore,
		settings:   settings,
	}
}

// SetRebuilder sets the rebuilder used for vocabulary corruption
// recovery. Without one, a corrupt vocabulary surfaces as an error.
func (s *RetrieverService) SetRebuilder(r VocabularyRebuilder) {
	s.rebuilder = r
}

// FindSimilar embeds the query and returns at most topK chunks scoring
// at or above the similarity threshold, best first, ties broken by the
// parent entry's modification time. An empty result is a valid outcome
// meaning no relevant content was found.
func (s *RetrieverService) FindSimilar(ctx context.Context, query string, topK int) ([]domain.ScoredChunk, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.ScoredChunk{}, nil
	}

	if topK <= 0 {
		topK = s.settings.TopK
	}
	logger.Debug("Retrieval: query=%q, topK=%d, threshold=%.2f", query, topK, s.settings.MinSimilarity)

	queryVec, err := s.embedQuery(ctx, query)
	if err != nil {
		return nil, err
	}
	if domain.IsZeroVector(queryVec) {
		logger.Debug("Query embeds to a zero vector, returning no results")
		return []domain.ScoredChunk{}, nil
	}

	recency, err := s.entryRecency(ctx)
	if err != nil {
		return nil, fmt.Errorf("load entry recency: %w", err)
	}

	var candidates []domain.ScoredChunk
	scanErr := s.chunkStore.ScanChunks(ctx, func(chunk domain.Chunk) error {
		if domain.IsZeroVector(chunk.Embedding) {
			return nil
		}
		score := domain.DotProduct(queryVec, chunk.Embedding)
		if score < s.settings.MinSimilarity {
			return nil
		}
		candidates = append(candidates, domain.ScoredChunk{
			Chunk:         chunk,
			Score:         score,
			EntryModified: recency[chunk.EntryID],
		})
		return nil
	})
	if scanErr != nil {
		return nil, fmt.Errorf("scan chunks: %w", scanErr)
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		if !candidates[i].EntryModified.Equal(candidates[j].EntryModified) {
			return candidates[i].EntryModified.After(candidates[j].EntryModified)
		}
		return candidates[i].Chunk.ID < candidates[j].Chunk.ID
	})

	if len(candidates) > topK {
		candidates = candidates[:topK]
	}

	logger.Debug("Retrieval: %d results above threshold", len(candidates))
	return candidates, nil
}

// embedQuery embeds the query, rebuilding the vocabulary and retrying
// once if corruption is detected. Corrupt statistics must never reach
// ranking.
func (s *RetrieverService) embedQuery(ctx context.Context, query string) ([]float32, error) {
	vec, err := s.embedder.Embed(ctx, query)
	if err == nil {
		return vec, nil
	}
	if !errors.Is(err, domain.ErrVocabularyCorrupt) || s.rebuilder == nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	logger.Warn("Vocabulary corrupt, rebuilding before retry: %v", err)
	if rerr := s.rebuilder.RebuildVocabulary(ctx); rerr != nil {
		return nil, fmt.Errorf("rebuild vocabulary: %w", rerr)
	}

	vec, err = s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query after rebuild: %w", err)
	}
	return vec, nil
}

// entryRecency maps entry IDs to modification times for tiebreaks.
func (s *RetrieverService) entryRecency(ctx context.Context) (map[string]time.Time, error) {
	entries, err := s.entryStore.ListEntries(ctx)
	if err != nil {
		return nil, err
	}
	recency := make(map[string]time.Time, len(entries))
	for i := range entries {
		recency[entries[i].ID] = entries[i].LastModified
	}
	return recency, nil
}
