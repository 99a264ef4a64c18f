package llm

import (
	"errors"
	"regexp"
	"strings"
)

// ErrMalformedCredential is returned when a key does not have the shape of
// an API key. It is detected locally, before any call is made.
var ErrMalformedCredential = errors.New("malformed API key")

var credentialRe = regexp.MustCompile(`^sk-[a-zA-Z0-9_-]{20,}$`)

// ValidateCredential checks that key, ignoring surrounding whitespace, is
// "sk-" followed by at least 20 alphanumeric, hyphen or underscore
// characters. It returns the trimmed key.
func ValidateCredential(key string) (string, error) {
	key = strings.TrimSpace(key)
	if !credentialRe.MatchString(key) {
		return "", ErrMalformedCredential
	}
	return key, nil
}

// MaskCredential keeps the prefix and the last four characters of key.
func MaskCredential(key string) string {
	key = strings.TrimSpace(key)
	if len(key) <= 7 {
		return strings.Repeat("*", len(key))
	}
	return key[:3] + strings.Repeat("*", len(key)-7) + key[len(key)-4:]
}
