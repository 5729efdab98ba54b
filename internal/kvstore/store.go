// Package kvstore provides the expiring key-value store that holds posting
// tokens and cooldown markers. Every value carries its own time-to-live and
// disappears once it elapses.
package kvstore

import (
	"context"
	"time"
)

// Namespaces used by the comment service
const (
	NamespaceTokens    = "KEYS"
	NamespaceCooldowns = "ADDRESSES"
)

// Store is a string key-value store with per-key expiry, scoped to one namespace.
// Get reports ok=false for keys that were never written or have expired.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Put(ctx context.Context, key, value string, ttl time.Duration) error
	Ping(ctx context.Context) error
}
