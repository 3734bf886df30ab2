// Package kvstore is the persistence primitive for the storefront: JSON
// blobs by string key. Every piece of state (cart, profiles, orders,
// reviews, chats) lives behind this boundary, so backends are swappable
// between memory, Redis, and Postgres without touching the domain packages.
package kvstore

import "context"

// Store reads and writes JSON-serializable values by key.
//
// Get reports found=false when the key is absent. Backends log and absorb
// deserialization failures the same way: callers get the zero value and
// carry on with empty defaults instead of failing hard.
type Store interface {
	Get(ctx context.Context, key string, dest any) (found bool, err error)
	Set(ctx context.Context, key string, value any) error
	Remove(ctx context.Context, key string) error
}
