// Package scratch is a small key/value store for short-lived per-client
// data such as a validated credential.
package scratch

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Get for absent or expired keys.
var ErrMiss = errors.New("scratch: key not found")

// Store holds string values with an optional time to live.
type Store interface {
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key. ttl <= 0 keeps it until deleted.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}
