package store

import (
	"context"

	"github.com/lockboxhq/lockbox/pkg/model"
)

// SecretStore abstracts secret row storage. Rows are keyed
// (resource_id, user_id) unique.
type SecretStore interface {
	// ListByResource returns all per-user secrets of a resource.
	ListByResource(ctx context.Context, resourceID string) ([]model.Secret, error)

	// Replace deletes the resource's secrets and writes the supplied ones.
	Replace(ctx context.Context, resourceID string, secrets []model.Secret) error

	// DeleteByResources removes all secrets of the given resources.
	DeleteByResources(ctx context.Context, resourceIDs []string) error
}
