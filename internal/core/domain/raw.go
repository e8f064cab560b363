package domain

import "time"

// RawEntry represents unprocessed entry text supplied by an entry
// source, before normalisation and chunking.
type RawEntry struct {
	// ID is the source-stable identifier, derived from the entry's
	// location. Re-reading the same entry yields the same ID.
	ID string

	// Path is the original location on disk.
	Path string

	// Title is the source's best title guess (usually the filename).
	Title string

	// Text is the raw content.
	Text string

	// LastModified is the source file's modification time.
	LastModified time.Time
}

// ChangeType represents the type of entry change.
type ChangeType int

const (
	// ChangeCreated indicates a new entry.
	ChangeCreated ChangeType = iota

	// ChangeUpdated indicates a modified entry.
	ChangeUpdated

	// ChangeDeleted indicates a removed entry.
	ChangeDeleted
)

// String returns the change name used in logs.
func (t ChangeType) String() string {
	switch t {
	case ChangeCreated:
		return "created"
	case ChangeUpdated:
		return "updated"
	case ChangeDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// RawEntryChange represents a change event from an entry source.
// Create and update events carry the new content; delete events carry
// only the ID. Each event triggers re-chunk/re-embed or invalidation
// of the affected entry's chunks.
type RawEntryChange struct {
	// Type is the kind of change.
	Type ChangeType

	// Entry is the affected entry. For deletions only ID is set.
	Entry RawEntry
}
