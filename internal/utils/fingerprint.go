package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Fingerprint produces a stable hash of value for use as a cache key.
// encoding/json serializes struct fields in declaration order and map
// keys sorted, so equal criteria always canonicalize to the same bytes.
func Fingerprint(value interface{}) (string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize fingerprint input: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
