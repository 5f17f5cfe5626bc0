package domain

import "time"

// Role identifies the author of a chat message.
type Role string

// Message roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// IsValid returns true if the role is recognised.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Session is a conversation attached to a collection.
// It is created lazily the first time a question arrives
// without a pre-existing session identity.
type Session struct {
	// ID is the unique identifier for the session.
	ID string

	// CollectionID links to the owning Collection, if any.
	CollectionID string

	// CreatedAt is when the session was created.
	CreatedAt time.Time

	// UpdatedAt is when the session last received a message.
	UpdatedAt time.Time
}

// ChatMessage is one message within a session. Messages are
// append-only; ordering by creation time is the canonical
// conversation order.
type ChatMessage struct {
	// ID is the unique identifier for the message.
	ID string

	// SessionID links to the owning Session.
	SessionID string

	// Role is who authored the message.
	Role Role

	// Content is the message text.
	Content string

	// CreatedAt orders the conversation.
	CreatedAt time.Time
}

// Turn is one user question plus its generated answer,
// persisted together atomically.
type Turn struct {
	Question string
	Answer   string
}
