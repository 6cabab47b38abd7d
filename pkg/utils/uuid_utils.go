package utils

import (
	"github.com/google/uuid"
)

// NewID returns a time-ordered (v7) record id, falling back to v4.
func NewID() uuid.UUID {
	id, err := newV7()
	if err != nil {
		return uuid.New()
	}
	return id
}

var newV7 = uuid.NewV7
