package domain

import "time"

// Collection is the scoping unit for retrieval and chat.
// Retrieval scoped to a collection must never return chunks
// belonging to another collection.
type Collection struct {
	// ID is the unique identifier for the collection.
	ID string

	// Name is the human-readable display name.
	Name string

	// Description is an optional free-text description.
	Description string

	// Public marks collections that require no access code.
	Public bool

	// CodeHash holds the hashed access code for private collections.
	// The plain code is never stored or returned.
	CodeHash string

	// CreatedAt is when the collection was created.
	CreatedAt time.Time
}
