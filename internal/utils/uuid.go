package utils

import (
	"github.com/google/uuid"
)

// NewID returns a random UUIDv4 string for caller-less records.
func NewID() string {
	return uuid.New().String()
}
