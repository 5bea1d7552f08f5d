package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateID returns a new unique identifier string
func GenerateID() string {
	return uuid.New().String()
}

// GenerateToken returns a random 32-character hex token, used for session and
// anti-forgery cookie values.
func GenerateToken() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}
