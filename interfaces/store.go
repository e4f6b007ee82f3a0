package interfaces

import (
	"context"

	"myfabric/domain"
)

// Store is the narrow set of operations the fabric needs from the shared key-value/pub-sub store.
// It is a capability seam: no caching or retries, store failures surface to the caller.
//
//go:generate moq -stub -out mock/store.go -pkg mock . Store
type Store interface {
	// Atomic executes ops as one all-or-nothing batch and returns one result per op.
	// Returns:
	// 1) (results, nil) on success;
	// 2) (nil, internal_server_error) when the batch fails.
	Atomic(ctx context.Context, ops ...domain.StoreOp) ([]domain.StoreResult, error)

	// HashGetAll returns all fields of the hash at key; empty map when the key is absent.
	HashGetAll(ctx context.Context, key string) (map[string]string, error)

	// HashGet returns the values of fields at key; absent fields are omitted from the map.
	HashGet(ctx context.Context, key string, fields ...string) (map[string]string, error)

	// ScanKeys returns all keys matching pattern (glob syntax).
	ScanKeys(ctx context.Context, pattern string) ([]string, error)

	// Exists returns how many of keys exist.
	Exists(ctx context.Context, keys ...string) (int64, error)

	// Publish sends payload to channel and returns the number of subscribers that received it.
	Publish(ctx context.Context, channel string, payload []byte) (int64, error)

	// Subscribe starts receiving all future publishes on channels.
	// Returns only after the store confirmed every subscription.
	Subscribe(ctx context.Context, channels ...string) (Subscription, error)
}

// Subscription is an active store subscription.
//
//go:generate moq -stub -out mock/subscription.go -pkg mock . Subscription
type Subscription interface {
	// Messages yields payloads in the order the store delivered them. Closed after Close.
	Messages() <-chan domain.StoreMessage

	// Close unsubscribes and releases the connection; idempotent.
	Close() error
}
