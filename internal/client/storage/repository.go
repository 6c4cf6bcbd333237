package storage

import "context"

// Repository is a flat durable key/value store.
//
// Get returns (nil, nil) for a missing key. Delete and Clear are idempotent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetMany(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}

// Watcher reports that the underlying store may have changed.
//
// The returned channel receives a value after one or more writes (bursts are
// coalesced) and is closed once ctx is done.
type Watcher interface {
	Watch(ctx context.Context) (<-chan struct{}, error)
}

// notify performs a non-blocking send so a pending, unconsumed notification
// absorbs later ones.
func notify(ch chan<- struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}
