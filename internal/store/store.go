package store

import "context"

// Store is the key-value persistence substrate for the dashboard.
// Values are opaque strings; callers own their serialization.
type Store interface {
	// Get returns the value stored under key. The boolean is false when
	// the key is absent.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}
