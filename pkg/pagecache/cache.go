// Package pagecache stores rendered pages for a bounded time.
//
// Entries are opaque byte payloads. A payload is served verbatim until its TTL
// expires or Clear is called; writes happening in between are not reflected.
package pagecache

import (
	"context"
	"time"
)

type Cache interface {
	// Get returns the payload and true if the key exists and is not expired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores the payload. A later Set on the same key overwrites it.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Clear removes every entry regardless of its TTL.
	Clear(ctx context.Context) error
}
