package models

import "github.com/google/uuid"

// IDSource generates identifiers for new entries and tax elements. It is an
// interface so tests and imports can use deterministic sequences.
type IDSource interface {
	NewID() string
}

// UUIDSource generates random UUID identifiers.
type UUIDSource struct{}

// NewID returns a fresh UUID string.
func (UUIDSource) NewID() string {
	return uuid.NewString()
}
