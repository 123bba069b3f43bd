// Package storage provides the key-value persistence adapter the basket
// store writes through.
//
// Two backends are provided:
//   - FileStore: one JSON-wrapped entry per key under a data directory,
//     for the real application
//   - MemoryStore: an in-process map for tests and ephemeral sessions
//
// Storage is best-effort by contract: callers keep their in-memory state
// authoritative and treat failed writes as a degraded session, not a fatal
// condition.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by backends that need to distinguish a missing
// entry from a read failure. Load reports absence via its ok result instead.
var ErrNotFound = errors.New("not found")

// Store is the persistence adapter boundary.
// Keys are fixed namespaced strings (no path separators); values are opaque
// serialized bytes owned by the caller.
type Store interface {
	// Save writes the value for a key, replacing any previous value.
	Save(ctx context.Context, key string, data []byte) error

	// Load reads the value for a key.
	// Returns ok=false with a nil error when the key is absent.
	Load(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Remove deletes the entry for a key. Removing an absent key is a no-op.
	Remove(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
