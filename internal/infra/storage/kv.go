package storage

import (
	"context"
	"errors"
)

var ErrKeyNotFound = errors.New("key not found")

// KV is the persistence port the scheduler runs on: an opaque string
// key-value store matching the capabilities of the mobile client's local
// storage (get/set/remove/multi-remove/list keys). All operations may fail
// with storage I/O errors; callers decide how fatal that is.
type KV interface {
	// Get returns the value stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// Remove deletes the key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
	MultiRemove(ctx context.Context, keys []string) error
	// Keys lists all keys starting with prefix. An empty prefix lists
	// everything.
	Keys(ctx context.Context, prefix string) ([]string, error)
}
