package domain

import "time"

// Role identifies the author of a conversation message.
type Role string

// Available message roles.
const (
	// RoleUser is a message written by the user.
	RoleUser Role = "user"

	// RoleAssistant is a generated reply.
	RoleAssistant Role = "assistant"

	// RoleSystem is an instruction message, not shown as dialogue.
	RoleSystem Role = "system"
)

// IsValid returns true if the role is recognised.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (r Role) String() string {
	return string(r)
}

// Message is a single conversation turn within a session.
// The core reads messages in order and never rewrites history.
type Message struct {
	// ID is the unique identifier for the message.
	ID string

	// SessionID groups messages belonging to one conversation.
	SessionID string

	// Role tags the author.
	Role Role

	// Content is the message text.
	Content string

	// CreatedAt orders messages within a session.
	CreatedAt time.Time
}
