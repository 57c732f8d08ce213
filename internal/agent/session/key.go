package session

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// MaxKeyLength bounds client-supplied session keys.
const MaxKeyLength = 128

// ErrInvalidKey is returned for session keys that are empty, too long or
// contain characters outside [A-Za-z0-9._:-].
var ErrInvalidKey = errors.New("invalid session key")

// NewKey issues a fresh random session key.
func NewKey() string {
	return uuid.NewString()
}

// ParseKey trims key and checks that it is usable as a session key.
// Hierarchical keys such as "cli:default" are accepted.
func ParseKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" || len(key) > MaxKeyLength {
		return "", ErrInvalidKey
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-' || r == '_' || r == '.' || r == ':':
		default:
			return "", ErrInvalidKey
		}
	}
	return key, nil
}
