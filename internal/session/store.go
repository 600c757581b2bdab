// Package session issues, resolves and revokes opaque session tokens kept in
// a key-value store with per-key expiry.
package session

import (
	"context"
	"errors"
	"time"
)

var ErrKeyNotFound = errors.New("session: key not found")

// Store is the contract the Manager needs from a key-value store. Every
// method operates on a single key in a single store operation.
type Store interface {
	// SetNX stores value under key for ttl unless the key already exists.
	SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	// Get returns ErrKeyNotFound for absent and expired keys.
	Get(ctx context.Context, key string) (string, error)
	// Delete removes key and reports whether it existed.
	Delete(ctx context.Context, key string) (bool, error)
	Ping(ctx context.Context) error
	Close() error
}
