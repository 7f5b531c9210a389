package objectstore

import "context"

// ObjectMap is a typed key→object store: set, get, and get-all, with
// serialization injected by the caller.
type ObjectMap[T any] interface {
	// Set serializes and stores object at key. Idempotent replace.
	Set(ctx context.Context, key string, object T) (Result, error)

	// Get returns the object stored at key, or KeyNotFound if absent.
	Get(ctx context.Context, key string) (T, Result, error)

	// GetAll returns every value in the map. Keys that fail to
	// deserialize are skipped and returned in failedKeys.
	GetAll(ctx context.Context) (values []T, failedKeys []string, result Result, err error)

	// Delete removes the object stored at key, if any.
	Delete(ctx context.Context, key string) (Result, error)
}
