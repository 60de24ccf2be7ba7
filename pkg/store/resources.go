package store

import (
	"context"

	"github.com/lockboxhq/lockbox/pkg/model"
)

// ResourceStore abstracts resource row storage.
type ResourceStore interface {
	// Fetch retrieves a resource by id. Inside Atomically the row is read
	// with a write lock so concurrent mutations of the same resource
	// serialize. Returns ErrResourceNotFound when no row exists.
	Fetch(ctx context.Context, id string) (*model.Resource, error)

	// Create persists a new resource row.
	Create(ctx context.Context, resource *model.Resource) error

	// Update persists changes to an existing resource row.
	Update(ctx context.Context, resource *model.Resource) error

	// SoftDeleteMany flags the given resources deleted and scrubs their
	// username, uri and description in one batch statement. Returns the
	// number of affected rows.
	SoftDeleteMany(ctx context.Context, ids []string) (int64, error)

	// CountMissingResourceType counts resources whose type reference is
	// missing.
	CountMissingResourceType(ctx context.Context) (int64, error)

	// BackfillResourceType rewrites missing type references to typeID and
	// returns the number of affected rows.
	BackfillResourceType(ctx context.Context, typeID string) (int64, error)
}
