// Package id generates UUIDv7 identifiers. The embedded timestamp makes
// ids sort in creation order, which the movement log relies on.
package id

import "github.com/google/uuid"

// ID identifies any entity in the system.
type ID = uuid.UUID

// New returns a fresh UUIDv7.
func New() ID {
	v7, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the random source does; fall back to V4.
		return uuid.New()
	}
	return v7
}

// Parse validates and converts a string to an ID.
func Parse(s string) (ID, error) {
	return uuid.Parse(s)
}

// MustParse converts a string to an ID, panicking on error. For tests
// and constants only.
func MustParse(s string) ID {
	return uuid.MustParse(s)
}

// IsNil reports whether id is the zero value.
func IsNil(id ID) bool {
	return id == uuid.Nil
}
