package store

import (
	"context"
	"errors"
)

// ErrResourceNotFound is returned by ResourceStore.Fetch when no row exists
// for the requested id.
var ErrResourceNotFound = errors.New("resource not found")

// ErrResourceTypeNotFound is returned by ResourceTypeStore.IDBySlug when no
// row exists for the requested slug.
var ErrResourceTypeNotFound = errors.New("resource type not found")

// Bundle groups the per-collection stores. The engine receives typed
// handles at construction and never resolves collections ad hoc.
type Bundle interface {
	Resources() ResourceStore
	Permissions() PermissionStore
	Secrets() SecretStore
	Favorites() FavoriteStore
	ResourceTypes() ResourceTypeStore
	Access() AccessStore
}

// Store is a Bundle that can also run a function atomically. Atomically is
// the engine's serialization boundary: everything the callback does either
// fully commits or fully rolls back, and reads of a resource row inside the
// callback block concurrent writers to the same resource until the
// transaction ends. Context cancellation aborts the transaction.
type Store interface {
	Bundle
	Atomically(ctx context.Context, fn func(Bundle) error) error
}
