package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/inkwell-labs/inkwell-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to
// all metadata store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.inkwell/data/inkwell.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".inkwell", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "inkwell.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// VocabularyStore returns a VocabularyStore interface backed by this store.
func (s *Store) VocabularyStore() driven.VocabularyStore {
	return &vocabularyStore{store: s}
}

// EntryStore returns an EntryStore interface backed by this store.
func (s *Store) EntryStore() driven.EntryStore {
	return &entryStore{store: s}
}

// ChunkStore returns a ChunkStore interface backed by this store.
func (s *Store) ChunkStore() driven.ChunkStore {
	return &chunkStore{store: s}
}

// ConversationStore returns a ConversationStore interface backed by this store.
func (s *Store) ConversationStore() driven.ConversationStore {
	return &conversationStore{store: s}
}

// PinStore returns a PinStore interface backed by this store.
func (s *Store) PinStore() driven.PinStore {
	return &pinStore{store: s}
}

// SelectionStore returns a SelectionStore interface backed by this store.
func (s *Store) SelectionStore() driven.SelectionStore {
	return &selectionStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Vocabulary Store ====================

// vocabularyStore implements driven.VocabularyStore.
type vocabularyStore struct {
	store *Store
}

var _ driven.VocabularyStore = (*vocabularyStore)(nil)

// TermFrequencies returns the full term -> document frequency table.
func (s *vocabularyStore) TermFrequencies(ctx context.Context) (map[string]int, error) {
	rows, err := s.store.db.QueryContext(ctx, "SELECT term, df FROM vocabulary")
	if err != nil {
		return nil, fmt.Errorf("querying vocabulary: %w", err)
	}
	defer rows.Close()

	freqs := make(map[string]int)
	for rows.Next() {
		var term string
		var df int
		if err := rows.Scan(&term, &df); err != nil {
			return nil, fmt.Errorf("scanning term: %w", err)
		}
		freqs[term] = df
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating vocabulary: %w", err)
	}
	return freqs, nil
}

// ProcessedEntries returns the set of observed entry IDs.
func (s *vocabularyStore) ProcessedEntries(ctx context.Context) (map[string]bool, error) {
	rows, err := s.store.db.QueryContext(ctx, "SELECT entry_id FROM processed_entries")
	if err != nil {
		return nil, fmt.Errorf("querying processed entries: %w", err)
	}
	defer rows.Close()

	processed := make(map[string]bool)
	for rows.Next() {
		var entryID string
		if err := rows.Scan(&entryID); err != nil {
			return nil, fmt.Errorf("scanning processed entry: %w", err)
		}
		processed[entryID] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating processed entries: %w", err)
	}
	return processed, nil
}

// RecordObservation persists one observation atomically. Entries that
// are already in the processed set are not counted a second time.
func (s *vocabularyStore) RecordObservation(ctx context.Context, entryID string, terms []string) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var exists int
	err = tx.QueryRowContext(ctx,
		"SELECT 1 FROM processed_entries WHERE entry_id = ?", entryID).Scan(&exists)
	if err == nil {
		return nil // Already observed
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("checking processed entry: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO vocabulary (term, df) VALUES (?, 1)
		ON CONFLICT(term) DO UPDATE SET df = df + 1
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, term := range terms {
		if _, err := stmt.ExecContext(ctx, term); err != nil {
			return fmt.Errorf("recording term: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO processed_entries (entry_id, observed_at) VALUES (?, ?)
	`, entryID, time.Now().UTC()); err != nil {
		return fmt.Errorf("recording processed entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Reset removes all term statistics and the processed-entry set.
func (s *vocabularyStore) Reset(ctx context.Context) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM vocabulary"); err != nil {
		return fmt.Errorf("clearing vocabulary: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM processed_entries"); err != nil {
		return fmt.Errorf("clearing processed entries: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// TermCount returns the number of distinct terms.
func (s *vocabularyStore) TermCount(ctx context.Context) (int, error) {
	var count int
	row := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM vocabulary")
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("counting terms: %w", err)
	}
	return count, nil
}

// ProcessedCount returns the size of the processed-entry set.
func (s *vocabularyStore) ProcessedCount(ctx context.Context) (int, error) {
	var count int
	row := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM processed_entries")
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("counting processed entries: %w", err)
	}
	return count, nil
}

// ==================== Entry Store ====================

// entryStore implements driven.EntryStore.
type entryStore struct {
	store *Store
}

var _ driven.EntryStore = (*entryStore)(nil)

// SaveEntry stores or updates an entry.
func (s *entryStore) SaveEntry(ctx context.Context, entry *domain.Entry) error {
	if entry.IndexedAt.IsZero() {
		entry.IndexedAt = time.Now().UTC()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO entries (id, title, path, text, word_count, last_modified, indexed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			path = excluded.path,
			text = excluded.text,
			word_count = excluded.word_count,
			last_modified = excluded.last_modified,
			indexed_at = excluded.indexed_at
	`, entry.ID, entry.Title, entry.Path, entry.Text, entry.WordCount,
		entry.LastModified.UTC(), entry.IndexedAt.UTC())

	if err != nil {
		return fmt.Errorf("saving entry: %w", err)
	}
	return nil
}

// GetEntry retrieves an entry by ID.
func (s *entryStore) GetEntry(ctx context.Context, id string) (*domain.Entry, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, title, path, text, word_count, last_modified, indexed_at
		FROM entries WHERE id = ?
	`, id)

	return scanEntry(row)
}

// ListEntries returns all entries, most recently modified first.
func (s *entryStore) ListEntries(ctx context.Context) ([]domain.Entry, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, title, path, text, word_count, last_modified, indexed_at
		FROM entries ORDER BY last_modified DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.Entry //nolint:prealloc // size unknown from query
	for rows.Next() {
		entry, err := scanEntryRows(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entries: %w", err)
	}
	return entries, nil
}

// DeleteEntry removes an entry and, through the chunks foreign key,
// any chunks stored under it.
func (s *entryStore) DeleteEntry(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}
	return nil
}

// CountEntries returns the number of stored entries.
func (s *entryStore) CountEntries(ctx context.Context) (int, error) {
	var count int
	row := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM entries")
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("counting entries: %w", err)
	}
	return count, nil
}

// ==================== Chunk Store ====================

// chunkStore implements driven.ChunkStore.
type chunkStore struct {
	store *Store
}

var _ driven.ChunkStore = (*chunkStore)(nil)

// ReplaceChunks atomically swaps all chunks of an entry for the given set.
func (s *chunkStore) ReplaceChunks(ctx context.Context, entryID string, chunks []domain.Chunk) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM chunks WHERE entry_id = ?", entryID); err != nil {
		return fmt.Errorf("clearing chunks: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, entry_id, ordinal, text, embedding)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, chunk := range chunks {
		embeddingBlob := float32SliceToBytes(chunk.Embedding)

		if _, err := stmt.ExecContext(ctx, chunk.ID, entryID, chunk.Ordinal,
			chunk.Text, embeddingBlob); err != nil {
			return fmt.Errorf("saving chunk: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// GetChunks retrieves an entry's chunks ordered by ordinal.
func (s *chunkStore) GetChunks(ctx context.Context, entryID string) ([]domain.Chunk, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, entry_id, ordinal, text, embedding
		FROM chunks WHERE entry_id = ?
		ORDER BY ordinal
	`, entryID)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var chunks []domain.Chunk //nolint:prealloc // size unknown from query
	for rows.Next() {
		chunk, err := scanChunk(rows)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, *chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}
	return chunks, nil
}

// ScanChunks streams every stored chunk to fn. Errors returned by fn
// abort the scan and are passed through unwrapped.
func (s *chunkStore) ScanChunks(ctx context.Context, fn func(chunk domain.Chunk) error) error {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, entry_id, ordinal, text, embedding FROM chunks
	`)
	if err != nil {
		return fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		chunk, err := scanChunk(rows)
		if err != nil {
			return err
		}
		if err := fn(*chunk); err != nil {
			return err
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating chunks: %w", err)
	}
	return nil
}

// DeleteChunks removes all chunks of an entry.
func (s *chunkStore) DeleteChunks(ctx context.Context, entryID string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM chunks WHERE entry_id = ?", entryID)
	if err != nil {
		return fmt.Errorf("deleting chunks: %w", err)
	}
	return nil
}

// CountChunks returns the number of stored chunks.
func (s *chunkStore) CountChunks(ctx context.Context) (int, error) {
	var count int
	row := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks")
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("counting chunks: %w", err)
	}
	return count, nil
}

// ==================== Conversation Store ====================

// conversationStore implements driven.ConversationStore.
type conversationStore struct {
	store *Store
}

var _ driven.ConversationStore = (*conversationStore)(nil)

// RecentMessages returns up to limit messages of a session, oldest
// first among the most recent.
func (s *conversationStore) RecentMessages(ctx context.Context, sessionID string, limit int) ([]domain.Message, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, session_id, role, content, created_at FROM (
			SELECT seq, id, session_id, role, content, created_at
			FROM messages WHERE session_id = ?
			ORDER BY seq DESC LIMIT ?
		) ORDER BY seq ASC
	`, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	var msgs []domain.Message //nolint:prealloc // size unknown from query
	for rows.Next() {
		var msg domain.Message
		if err := rows.Scan(&msg.ID, &msg.SessionID, &msg.Role, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		msgs = append(msgs, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating messages: %w", err)
	}
	return msgs, nil
}

// AppendMessage adds a message to a session.
func (s *conversationStore) AppendMessage(ctx context.Context, msg domain.Message) error {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO messages (id, session_id, role, content, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, msg.ID, msg.SessionID, string(msg.Role), msg.Content, msg.CreatedAt.UTC())

	if err != nil {
		return fmt.Errorf("appending message: %w", err)
	}
	return nil
}

// ClearSession removes all messages of a session.
func (s *conversationStore) ClearSession(ctx context.Context, sessionID string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM messages WHERE session_id = ?", sessionID)
	if err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

// ==================== Pin Store ====================

// pinStore implements driven.PinStore.
type pinStore struct {
	store *Store
}

var _ driven.PinStore = (*pinStore)(nil)

// ListPins returns all pins, entry pins before folder pins.
func (s *pinStore) ListPins(ctx context.Context) ([]domain.Pin, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, kind, target, created_at FROM pins
		ORDER BY CASE kind WHEN 'entry' THEN 0 ELSE 1 END, created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("querying pins: %w", err)
	}
	defer rows.Close()

	var pins []domain.Pin //nolint:prealloc // size unknown from query
	for rows.Next() {
		var pin domain.Pin
		if err := rows.Scan(&pin.ID, &pin.Kind, &pin.Target, &pin.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning pin: %w", err)
		}
		pins = append(pins, pin)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pins: %w", err)
	}
	return pins, nil
}

// AddPin stores a pin. Adding an existing kind and target is a no-op.
func (s *pinStore) AddPin(ctx context.Context, pin domain.Pin) error {
	if pin.CreatedAt.IsZero() {
		pin.CreatedAt = time.Now().UTC()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO pins (id, kind, target, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(kind, target) DO NOTHING
	`, pin.ID, string(pin.Kind), pin.Target, pin.CreatedAt.UTC())

	if err != nil {
		return fmt.Errorf("adding pin: %w", err)
	}
	return nil
}

// RemovePin deletes a pin by kind and target.
func (s *pinStore) RemovePin(ctx context.Context, kind domain.PinKind, target string) error {
	_, err := s.store.db.ExecContext(ctx,
		"DELETE FROM pins WHERE kind = ? AND target = ?", string(kind), target)
	if err != nil {
		return fmt.Errorf("removing pin: %w", err)
	}
	return nil
}

// ==================== Selection Store ====================

// selectionStore implements driven.SelectionStore.
type selectionStore struct {
	store *Store
}

var _ driven.SelectionStore = (*selectionStore)(nil)

// Selections returns a session's selections in user order.
func (s *selectionStore) Selections(ctx context.Context, sessionID string) ([]domain.Selection, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT session_id, entry_id, position
		FROM selections WHERE session_id = ?
		ORDER BY position
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying selections: %w", err)
	}
	defer rows.Close()

	var selections []domain.Selection //nolint:prealloc // size unknown from query
	for rows.Next() {
		var sel domain.Selection
		if err := rows.Scan(&sel.SessionID, &sel.EntryID, &sel.Position); err != nil {
			return nil, fmt.Errorf("scanning selection: %w", err)
		}
		selections = append(selections, sel)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating selections: %w", err)
	}
	return selections, nil
}

// AddSelection appends an entry to the end of a session's selections.
// Re-selecting an entry keeps its original position.
func (s *selectionStore) AddSelection(ctx context.Context, sessionID, entryID string) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO selections (session_id, entry_id, position)
		SELECT ?, ?, COALESCE(MAX(position), 0) + 1
		FROM selections WHERE session_id = ?
		ON CONFLICT(session_id, entry_id) DO NOTHING
	`, sessionID, entryID, sessionID)

	if err != nil {
		return fmt.Errorf("adding selection: %w", err)
	}
	return nil
}

// ClearSelections removes all selections of a session.
func (s *selectionStore) ClearSelections(ctx context.Context, sessionID string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM selections WHERE session_id = ?", sessionID)
	if err != nil {
		return fmt.Errorf("clearing selections: %w", err)
	}
	return nil
}

// ==================== Helper Functions ====================

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}

// scanEntry scans a single entry row.
func scanEntry(row *sql.Row) (*domain.Entry, error) {
	var entry domain.Entry
	if err := row.Scan(&entry.ID, &entry.Title, &entry.Path, &entry.Text,
		&entry.WordCount, &entry.LastModified, &entry.IndexedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning entry: %w", err)
	}
	return &entry, nil
}

// scanEntryRows scans an entry from *sql.Rows.
func scanEntryRows(rows *sql.Rows) (*domain.Entry, error) {
	var entry domain.Entry
	if err := rows.Scan(&entry.ID, &entry.Title, &entry.Path, &entry.Text,
		&entry.WordCount, &entry.LastModified, &entry.IndexedAt); err != nil {
		return nil, fmt.Errorf("scanning entry: %w", err)
	}
	return &entry, nil
}

// scanChunk scans a chunk from *sql.Rows.
func scanChunk(rows *sql.Rows) (*domain.Chunk, error) {
	var chunk domain.Chunk
	var embeddingBlob []byte

	if err := rows.Scan(&chunk.ID, &chunk.EntryID, &chunk.Ordinal,
		&chunk.Text, &embeddingBlob); err != nil {
		return nil, fmt.Errorf("scanning chunk: %w", err)
	}

	chunk.Embedding = bytesToFloat32Slice(embeddingBlob)
	return &chunk, nil
}
