package domain

import "time"

// PinKind distinguishes what a pin targets.
type PinKind string

const (
	// PinKindEntry pins a single entry by ID.
	PinKindEntry PinKind = "entry"

	// PinKindFolder pins every entry under a folder path.
	PinKindFolder PinKind = "folder"
)

// IsValid returns true if the pin kind is recognised.
func (k PinKind) IsValid() bool {
	return k == PinKindEntry || k == PinKindFolder
}

// String returns the string representation.
func (k PinKind) String() string {
	return string(k)
}

// Pin marks content as always-include for context composition.
// Entry pins take priority over folder pins during allocation.
type Pin struct {
	// ID is the unique identifier for the pin.
	ID string

	// Kind is what Target refers to.
	Kind PinKind

	// Target is an entry ID (PinKindEntry) or a folder path relative
	// to the journal directory (PinKindFolder).
	Target string

	// CreatedAt orders pins of the same kind.
	CreatedAt time.Time
}

// Selection marks an entry explicitly chosen for one session's context,
// distinct from pins (persistent) and retrieval (query-driven).
type Selection struct {
	// SessionID scopes the selection to a conversation.
	SessionID string

	// EntryID is the selected entry.
	EntryID string

	// Position is the user-specified order, starting at zero.
	Position int
}
