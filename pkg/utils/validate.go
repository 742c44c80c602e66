package utils

import (
	"regexp"

	"github.com/google/uuid"
)

var emailRegex = regexp.MustCompile(`^\w+([\.-]?\w+)*@\w+([\.-]?\w+)*(\.\w{2,})+$`)

// IsValidEmail reports whether s looks like a well-formed email address
func IsValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// NewUUID generates a new UUID
func NewUUID() uuid.UUID {
	return uuid.New()
}

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}
