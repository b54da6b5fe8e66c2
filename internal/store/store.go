// Package store provides the persistent key-value capability the repositories
// are built on. Records are opaque JSON blobs under namespaced keys; absence
// of a key is a normal outcome, not an error.
package store

import "context"

// KV is the read/write/list contract over the persistent store.
type KV interface {
	// Get returns the value for key, or (nil, nil) when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put writes the value for key, overwriting any previous value.
	Put(ctx context.Context, key string, value []byte) error
	// List returns the values of every key with the given prefix, in no
	// particular order.
	List(ctx context.Context, prefix string) ([][]byte, error)
}
