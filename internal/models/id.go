package models

import (
	"fmt"

	"github.com/google/uuid"
)

// NewID returns a fresh random identity for a poll or voter.
func NewID() string {
	return uuid.NewString()
}

// ValidateID reports whether id is a well-formed identity.
func ValidateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("malformed id %q: %w", id, err)
	}
	return nil
}
