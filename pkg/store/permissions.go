package store

import (
	"context"

	"github.com/lockboxhq/lockbox/pkg/model"
)

// PermissionStore abstracts permission row storage. Rows are keyed
// (resource_id, aro_id) unique.
type PermissionStore interface {
	// ListByResource returns all grants on a resource.
	ListByResource(ctx context.Context, resourceID string) ([]model.Permission, error)

	// Replace deletes the resource's grants and writes the supplied ones.
	// No partial patch exists: permission updates are wholesale.
	Replace(ctx context.Context, resourceID string, permissions []model.Permission) error

	// DeleteByResources removes all grants on the given resources.
	DeleteByResources(ctx context.Context, resourceIDs []string) error
}
