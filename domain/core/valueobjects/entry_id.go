package valueobjects

import "github.com/google/uuid"

// EntryID is the opaque identifier of a stored entry.
// New IDs are random (version 4) UUIDs drawn from crypto/rand.
type EntryID string

// NewEntryID creates a new random EntryID
func NewEntryID() EntryID {
	return EntryID(uuid.New().String())
}

// String returns the string representation of the EntryID
func (id EntryID) String() string {
	return string(id)
}

// IsZero checks if the EntryID is the zero value
func (id EntryID) IsZero() bool {
	return id == ""
}
