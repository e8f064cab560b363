// Package tfidf implements the vocabulary and embedding generator using
// corpus statistics only: term frequency weighted by inverse document
// frequency, feature-hashed into a fixed number of dimensions.
//
// No neural model is involved. The embedder "learns" nothing beyond the
// document frequency of each term, which makes vectors deterministic,
// incrementally updatable and cheap to rebuild from scratch.
package tfidf

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driven"
	"github.com/inkwell-labs/inkwell-cli/internal/logger"
)

// Ensure Embedder implements the port.
var _ driven.Embedder = (*Embedder)(nil)

// Embedder converts text into fixed-length vectors using TF-IDF
// weighting over a feature-hashed term space.
//
// The embedder generates vectors by:
//  1. Tokenizing text (lowercase, split on non-alphanumeric)
//  2. Computing term frequencies within the text
//  3. Weighting each term by smoothed IDF from the vocabulary
//  4. Hashing terms to fixed dimensions (feature hashing, FNV-1a)
//  5. L2 normalizing so cosine similarity reduces to a dot product
//
// Vocabulary state is held in memory and written through to a
// VocabularyStore, which is an explicit injected instance: there is no
// process-wide vocabulary singleton. Observe is serialised by a single
// writer lock; Embed reads a consistent snapshot under the read lock
// and never sees the table mid-mutation.
type Embedder struct {
	dimensions      int
	minObserveWords int
	unseenWeight    float64
	store           driven.VocabularyStore

	mu        sync.RWMutex
	loaded    bool
	termDF    map[string]int
	processed map[string]bool
}

// Option configures the embedder.
type Option func(*Embedder)

// WithDimensions sets the vector length. Fixed for the lifetime of the
// embedding space; changing it invalidates every stored vector.
func WithDimensions(n int) Option {
	return func(e *Embedder) {
		if n > 0 {
			e.dimensions = n
		}
	}
}

// WithMinObserveWords sets the minimum token count for a text to be
// observed. Near-empty fragments below it do not pollute the vocabulary.
func WithMinObserveWords(n int) Option {
	return func(e *Embedder) {
		if n >= 0 {
			e.minObserveWords = n
		}
	}
}

// WithUnseenTermWeight sets the minimal IDF substitute for terms the
// vocabulary has never seen, so novel queries still embed to a
// non-degenerate vector.
func WithUnseenTermWeight(w float64) Option {
	return func(e *Embedder) {
		if w > 0 {
			e.unseenWeight = w
		}
	}
}

// New creates an embedder backed by the given vocabulary store.
// Persisted statistics are loaded lazily on first use.
func New(store driven.VocabularyStore, opts ...Option) *Embedder {
	e := &Embedder{
		dimensions:      256,
		minObserveWords: 3,
		unseenWeight:    0.1,
		store:           store,
		termDF:          make(map[string]int),
		processed:       make(map[string]bool),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Observe folds text's distinct terms into the vocabulary, at most once
// per entryID. A second call for the same entryID changes nothing, so
// re-imports and edit-triggered reprocessing never double count.
func (e *Embedder) Observe(ctx context.Context, entryID, text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.ensureLoadedLocked(ctx); err != nil {
		return err
	}

	if e.processed[entryID] {
		logger.Debug("tfidf: entry %s already observed, skipping", entryID)
		return nil
	}

	tokens := tokenize(text)
	if len(tokens) < e.minObserveWords {
		// Skipped entirely: not counted and not marked processed, so a
		// later, longer revision can still be observed.
		logger.Debug("tfidf: entry %s below observe threshold (%d tokens)", entryID, len(tokens))
		return nil
	}

	terms := distinctTerms(tokens)

	// Persist first; memory state only changes once the write sticks.
	if err := e.store.RecordObservation(ctx, entryID, terms); err != nil {
		return fmt.Errorf("recording observation for %s: %w", entryID, err)
	}

	for _, t := range terms {
		e.termDF[t]++
	}
	e.processed[entryID] = true

	logger.Debug("tfidf: observed entry %s (%d distinct terms, vocabulary now %d)",
		entryID, len(terms), len(e.termDF))
	return nil
}

// Embed converts text into an L2-normalised TF-IDF vector. It is a pure
// function of (text, vocabulary state): repeated calls with an
// unchanged vocabulary produce bit-identical vectors. Empty or
// whitespace-only text yields a zero vector, never an error.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := e.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	vec := make([]float32, e.dimensions)

	tokens := tokenize(text)
	if len(tokens) == 0 {
		// Zero vector: explicitly non-matchable, see domain.IsZeroVector.
		return vec, nil
	}

	termFreq := make(map[string]int, len(tokens))
	for _, t := range tokens {
		termFreq[t]++
	}

	// Accumulate in sorted term order. Float addition is not
	// associative, so a stable order is what makes repeated embeds
	// bit-identical even when terms collide into one dimension.
	terms := make([]string, 0, len(termFreq))
	for t := range termFreq {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	e.mu.RLock()
	defer e.mu.RUnlock()

	docCount := len(e.processed)
	for _, term := range terms {
		tf := float64(termFreq[term]) / float64(len(tokens))

		var idf float64
		if df, ok := e.termDF[term]; ok {
			if df < 0 {
				return nil, fmt.Errorf("term %q has document frequency %d: %w",
					term, df, domain.ErrVocabularyCorrupt)
			}
			idf = math.Log(float64(1+docCount)/float64(1+df)) + 1.0
		} else {
			idf = e.unseenWeight
		}

		weight := tf * idf
		if math.IsNaN(weight) || math.IsInf(weight, 0) {
			return nil, fmt.Errorf("term %q produced weight %v: %w",
				term, weight, domain.ErrVocabularyCorrupt)
		}

		vec[hashTerm(term, e.dimensions)] += float32(weight)
	}

	l2Normalize(vec)
	return vec, nil
}

// Dimensions returns the fixed vector length.
func (e *Embedder) Dimensions() int {
	return e.dimensions
}

// Reset wipes all vocabulary state, persisted and in memory.
// Callers re-observe the corpus afterwards to rebuild statistics.
func (e *Embedder) Reset(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.store.Reset(ctx); err != nil {
		return fmt.Errorf("resetting vocabulary store: %w", err)
	}

	e.termDF = make(map[string]int)
	e.processed = make(map[string]bool)
	e.loaded = true

	logger.Warn("tfidf: vocabulary reset")
	return nil
}

// ensureLoaded loads persisted statistics once, taking the write lock
// only when needed.
func (e *Embedder) ensureLoaded(ctx context.Context) error {
	e.mu.RLock()
	loaded := e.loaded
	e.mu.RUnlock()
	if loaded {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ensureLoadedLocked(ctx)
}

func (e *Embedder) ensureLoadedLocked(ctx context.Context) error {
	if e.loaded {
		return nil
	}

	df, err := e.store.TermFrequencies(ctx)
	if err != nil {
		return fmt.Errorf("loading term frequencies: %w", err)
	}
	for term, count := range df {
		if count < 0 {
			return fmt.Errorf("persisted term %q has document frequency %d: %w",
				term, count, domain.ErrVocabularyCorrupt)
		}
	}

	processed, err := e.store.ProcessedEntries(ctx)
	if err != nil {
		return fmt.Errorf("loading processed entries: %w", err)
	}

	e.termDF = df
	if e.termDF == nil {
		e.termDF = make(map[string]int)
	}
	e.processed = processed
	if e.processed == nil {
		e.processed = make(map[string]bool)
	}
	e.loaded = true

	logger.Debug("tfidf: loaded vocabulary (%d terms, %d entries observed)",
		len(e.termDF), len(e.processed))
	return nil
}

// tokenize splits text into lowercase tokens: letter/number runes only,
// tokens shorter than two runes dropped.
func tokenize(text string) []string {
	text = strings.ToLower(text)

	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		token := current.String()
		if len([]rune(token)) >= 2 {
			tokens = append(tokens, token)
		}
		current.Reset()
	}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			_, _ = current.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()

	return tokens
}

// distinctTerms returns the sorted set of distinct tokens.
func distinctTerms(tokens []string) []string {
	seen := make(map[string]bool, len(tokens))
	var terms []string
	for _, t := range tokens {
		if !seen[t] {
			seen[t] = true
			terms = append(terms, t)
		}
	}
	sort.Strings(terms)
	return terms
}

// hashTerm maps a term to a dimension via FNV-1a. The mapping is never
// persisted: it is recomputed identically from the hash every time, so
// determinism depends only on the hash function being stable.
func hashTerm(term string, dimensions int) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(term))
	return int(h.Sum32() % uint32(dimensions))
}

// l2Normalize scales vec to unit length in place. A zero vector is left
// untouched.
func l2Normalize(vec []float32) {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
}
