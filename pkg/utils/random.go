package utils

import (
	"github.com/google/uuid"
)

// NewID generates the opaque identifier assigned to users, categories and videos.
func NewID() string {
	return uuid.NewString()
}
