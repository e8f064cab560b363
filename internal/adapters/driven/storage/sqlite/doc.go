// Package sqlite provides a unified SQLite-based implementation of driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements multiple store interfaces
// through a single database connection:
//
//   - VocabularyStore: Term statistics and observed-entry persistence
//   - EntryStore: Journal entry persistence
//   - ChunkStore: Chunk and embedding vector persistence
//   - ConversationStore: Conversation history persistence
//   - PinStore: Pin persistence
//   - SelectionStore: Per-session selection persistence
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.inkwell/data/inkwell.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
