// Package statecache persists the client's two local-state documents (the
// cached post list and the session identity) as plain JSON values in a
// key/value table. The remote store stays authoritative; this cache only
// avoids an empty first paint and keeps the identity across restarts.
package statecache

import "context"

// Storage keys. Values are plain JSON with no schema versioning.
const (
	KeyPosts   = "posts"
	KeySession = "session"
)

type Repository interface {
	// Get returns the value for key, or nil when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set inserts or replaces the value for key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
