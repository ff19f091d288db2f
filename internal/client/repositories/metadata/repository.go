// Package metadata is the client's key/value persistence: a single SQLite
// table holding opaque values under string keys.
package metadata

import (
	"context"
)

type Repository interface {
	// Get returns (nil, false, nil) when key is absent.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	// Remove succeeds when key is already absent.
	Remove(ctx context.Context, key string) error
}
