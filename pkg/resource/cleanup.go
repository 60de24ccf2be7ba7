package resource

import (
	"context"
	"fmt"

	"github.com/lockboxhq/lockbox/pkg/store"
)

// Coordinator runs the administrative batch operations that keep the
// resource tables consistent: bulk retirement, lost-access cleanup and
// resource-type backfill. Unlike Manager it performs no access checks;
// callers are trusted maintenance paths, not end users.
type Coordinator struct {
	store store.Store
}

func NewCoordinator(st store.Store) *Coordinator {
	return &Coordinator{store: st}
}

// SoftDeleteMany retires every listed resource in one transaction and,
// with cascade, also removes their permissions, secrets and favorites.
// Already deleted and unknown ids are skipped rather than rejected. It
// returns the number of resources actually retired.
func (c *Coordinator) SoftDeleteMany(ctx context.Context, resourceIDs []string, cascade bool) (int64, error) {
	if len(resourceIDs) == 0 {
		return 0, nil
	}

	var retired int64
	err := c.store.Atomically(ctx, func(b store.Bundle) error {
		n, err := b.Resources().SoftDeleteMany(ctx, resourceIDs)
		if err != nil {
			return fmt.Errorf("failed to soft delete resources: %w", err)
		}
		retired = n

		if !cascade {
			return nil
		}
		if err := b.Permissions().DeleteByResources(ctx, resourceIDs); err != nil {
			return fmt.Errorf("failed to delete permissions: %w", err)
		}
		if err := b.Secrets().DeleteByResources(ctx, resourceIDs); err != nil {
			return fmt.Errorf("failed to delete secrets: %w", err)
		}
		if err := b.Favorites().DeleteByResources(ctx, resourceIDs); err != nil {
			return fmt.Errorf("failed to delete favorites: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return retired, nil
}

// RemoveLostAccessArtifacts deletes the favorites the listed users hold on
// the listed resources. It is called after an access revocation so users
// do not keep bookmarks pointing at resources they can no longer open.
// Secrets and permissions are untouched; revocation flows own those.
func (c *Coordinator) RemoveLostAccessArtifacts(ctx context.Context, resourceIDs, userIDs []string) error {
	if len(resourceIDs) == 0 || len(userIDs) == 0 {
		return nil
	}
	return c.store.Atomically(ctx, func(b store.Bundle) error {
		for _, resourceID := range resourceIDs {
			if err := b.Favorites().DeleteByResourceAndUsers(ctx, resourceID, userIDs); err != nil {
				return fmt.Errorf("failed to delete favorites on resource %s: %w", resourceID, err)
			}
		}
		return nil
	})
}

// BackfillDefaultResourceType assigns typeID to every resource missing a
// resource type, a state left behind by rows that predate typed resources.
// With dryRun it only counts the rows that would be touched.
func (c *Coordinator) BackfillDefaultResourceType(ctx context.Context, typeID string, dryRun bool) (int64, error) {
	if dryRun {
		return c.store.Resources().CountMissingResourceType(ctx)
	}

	var updated int64
	err := c.store.Atomically(ctx, func(b store.Bundle) error {
		ok, err := b.ResourceTypes().Exists(ctx, typeID)
		if err != nil {
			return fmt.Errorf("failed to look up resource type: %w", err)
		}
		if !ok {
			return newValidationError("resource_type_id", RuleResourceTypeExists, "This is not a valid resource type.")
		}
		updated, err = b.Resources().BackfillResourceType(ctx, typeID)
		if err != nil {
			return fmt.Errorf("failed to backfill resource type: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}
