package store

import "context"

// FavoriteStore abstracts favorite row storage. Rows are keyed
// (user_id, resource_id) unique.
type FavoriteStore interface {
	// DeleteByResources removes all favorites referencing the given
	// resources.
	DeleteByResources(ctx context.Context, resourceIDs []string) error

	// DeleteByResourceAndUsers removes the given users' favorites on a
	// resource, used when they lose access without the resource being
	// deleted.
	DeleteByResourceAndUsers(ctx context.Context, resourceID string, userIDs []string) error
}
