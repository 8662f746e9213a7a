package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateTrackingCode builds an opaque reference like "TRIP-4E89A0C17B2D".
// Codes are shown to travellers on tickets, so they stay short and
// uppercase.
func GenerateTrackingCode(prefix string) string {
	id := uuid.New()
	hex := strings.ToUpper(strings.ReplaceAll(id.String(), "-", ""))
	return prefix + "-" + hex[:12]
}

// GenerateUUID returns a random v4 UUID string.
func GenerateUUID() string {
	return uuid.NewString()
}
