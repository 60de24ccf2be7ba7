package store

import "context"

// ResourceTypeStore abstracts resource type lookups.
type ResourceTypeStore interface {
	// Exists reports whether a resource type row exists for the id.
	Exists(ctx context.Context, id string) (bool, error)

	// IDBySlug resolves a type slug to its id. Returns
	// ErrResourceTypeNotFound when no row matches.
	IDBySlug(ctx context.Context, slug string) (string, error)
}
