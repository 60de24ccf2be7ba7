package resource

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/lockboxhq/lockbox/pkg/event"
	"github.com/lockboxhq/lockbox/pkg/model"
	"github.com/lockboxhq/lockbox/pkg/store"
)

// CreateRequest carries the data for a new resource. Exactly one secret,
// authored by the creator, is expected: at creation time the creator is the
// only guaranteed authorized user, and wider distribution happens through a
// later update once more permissions exist.
type CreateRequest struct {
	Name           string
	Username       *string
	URI            *string
	Description    *string
	ResourceTypeID string
	Permissions    PermissionSet
	Secrets        SecretSet
}

// UpdatePatch is a partial update. Nil slices and nil pointers mean "leave
// untouched"; a non-nil Permissions or Secrets slice replaces the whole
// collection.
type UpdatePatch struct {
	Name           *string
	Username       *string
	URI            *string
	Description    *string
	ResourceTypeID *string
	Permissions    PermissionSet
	Secrets        SecretSet
}

// Manager drives the resource lifecycle: ACTIVE on create, mutated by
// update, and a single forward transition to DELETED via soft delete.
// Every mutation validates and persists inside one store transaction so
// concurrent writers to the same resource serialize and a failed or
// abandoned mutation leaves no partial state.
type Manager struct {
	store     store.Store
	publisher event.Publisher
}

func NewManager(st store.Store, publisher event.Publisher) *Manager {
	if publisher == nil {
		publisher = event.NopPublisher{}
	}
	return &Manager{store: st, publisher: publisher}
}

// Create validates and persists a new resource with its permission and
// secret sets. Ownership and owner-secret rules must pass before any row
// is written.
func (m *Manager) Create(ctx context.Context, actorID string, req CreateRequest) (*model.Resource, error) {
	if err := checkID("created_by", actorID); err != nil {
		return nil, err
	}

	violations := Violations{}
	if !req.Permissions.HasOwner() {
		violations.Add("permissions", RuleOwnerPermissionProvided, "At least one owner permission must be provided.")
	}
	if len(req.Secrets) != 1 || req.Secrets[0].UserID != actorID {
		violations.Add("secrets", RuleOwnerSecretProvided, "The secret of the owner is required.")
	}

	typeID := req.ResourceTypeID
	resource := &model.Resource{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Username:       req.Username,
		URI:            req.URI,
		Description:    req.Description,
		ResourceTypeID: &typeID,
		CreatedBy:      actorID,
		ModifiedBy:     actorID,
	}

	err := m.store.Atomically(ctx, func(b store.Bundle) error {
		ok, err := b.ResourceTypes().Exists(ctx, req.ResourceTypeID)
		if err != nil {
			return fmt.Errorf("failed to look up resource type: %w", err)
		}
		if !ok {
			violations.Add("resource_type_id", RuleResourceTypeExists, "This is not a valid resource type.")
		}
		if !violations.Empty() {
			return &ValidationError{Violations: violations}
		}

		if err := b.Resources().Create(ctx, resource); err != nil {
			return fmt.Errorf("failed to create resource: %w", err)
		}
		if err := b.Permissions().Replace(ctx, resource.ID, req.Permissions.rows(resource.ID)); err != nil {
			return fmt.Errorf("failed to write permissions: %w", err)
		}
		if err := b.Secrets().Replace(ctx, resource.ID, req.Secrets.rows(resource.ID)); err != nil {
			return fmt.Errorf("failed to write secrets: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.publisher.Publish(event.New(event.KindResourceCreated, resource.ID, actorID))
	return resource, nil
}

// Update applies a partial update to an active resource. The actor needs
// UPDATE access. Supplied permission and secret lists replace their
// collections wholesale; the secret-completeness rule is checked against
// the post-update authorized user set, using the current secret holders
// when no secret list is supplied, so a permission replacement can never
// leave an authorized user without a readable copy.
func (m *Manager) Update(ctx context.Context, actorID, resourceID string, patch UpdatePatch) (*model.Resource, error) {
	if err := checkID("modified_by", actorID); err != nil {
		return nil, err
	}
	if err := checkID("id", resourceID); err != nil {
		return nil, err
	}

	var updated *model.Resource
	err := m.store.Atomically(ctx, func(b store.Bundle) error {
		resource, current, err := m.fetchActive(ctx, b, resourceID, RuleResourceIsNotSoftDeleted, "The resource cannot be soft deleted.")
		if err != nil {
			return err
		}
		if err := m.authorize(ctx, b, current, actorID, "The user cannot update this resource."); err != nil {
			return err
		}

		violations := Violations{}
		if patch.ResourceTypeID != nil {
			ok, err := b.ResourceTypes().Exists(ctx, *patch.ResourceTypeID)
			if err != nil {
				return fmt.Errorf("failed to look up resource type: %w", err)
			}
			if !ok {
				violations.Add("resource_type_id", RuleResourceTypeExists, "This is not a valid resource type.")
			}
		}

		proposed := PermissionSet(permissionInputs(current))
		if patch.Permissions != nil {
			proposed = patch.Permissions
			if !proposed.HasOwner() {
				violations.Add("permissions", RuleAtLeastOneOwner, "At least one owner permission must be provided.")
			}
		}

		// Secrets are optional on update; the completeness rule only runs
		// when the supplied secrets or the replaced permissions could move
		// the distribution out of lockstep.
		if patch.Secrets != nil || patch.Permissions != nil {
			authorized, err := authorizedUsers(ctx, b, proposed)
			if err != nil {
				return err
			}
			holders := patch.Secrets.AuthorIDs()
			if patch.Secrets == nil {
				stored, err := b.Secrets().ListByResource(ctx, resourceID)
				if err != nil {
					return fmt.Errorf("failed to list secrets: %w", err)
				}
				holders = secretHolders(stored)
			}
			if !coversExactly(holders, authorized) {
				violations.Add("secrets", RuleSecretsProvided, "The secrets of all the users having access to the resource are required.")
			}
		}

		if !violations.Empty() {
			return &ValidationError{Violations: violations}
		}

		applyPatch(resource, patch)
		resource.ModifiedBy = actorID
		if err := b.Resources().Update(ctx, resource); err != nil {
			return fmt.Errorf("failed to update resource: %w", err)
		}

		if patch.Permissions != nil {
			if err := b.Permissions().Replace(ctx, resourceID, patch.Permissions.rows(resourceID)); err != nil {
				return fmt.Errorf("failed to replace permissions: %w", err)
			}
			previous, err := authorizedUsers(ctx, b, PermissionSet(permissionInputs(current)))
			if err != nil {
				return err
			}
			granted, err := authorizedUsers(ctx, b, patch.Permissions)
			if err != nil {
				return err
			}
			if lost := difference(previous, granted); len(lost) > 0 {
				if err := b.Favorites().DeleteByResourceAndUsers(ctx, resourceID, lost); err != nil {
					return fmt.Errorf("failed to delete favorites of users who lost access: %w", err)
				}
			}
		}
		if patch.Secrets != nil {
			if err := b.Secrets().Replace(ctx, resourceID, patch.Secrets.rows(resourceID)); err != nil {
				return fmt.Errorf("failed to replace secrets: %w", err)
			}
		}

		updated = resource
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.publisher.Publish(event.New(event.KindResourceUpdated, resourceID, actorID))
	return updated, nil
}

// SoftDelete retires a resource: flags it deleted, scrubs its sensitive
// metadata and removes all dependent permissions, secrets and favorites in
// one atomic unit. The actor needs UPDATE access. Retiring an already
// deleted resource is reported as a failure, not a silent no-op.
func (m *Manager) SoftDelete(ctx context.Context, actorID, resourceID string) error {
	if err := checkID("modified_by", actorID); err != nil {
		return err
	}
	if err := checkID("id", resourceID); err != nil {
		return err
	}

	err := m.store.Atomically(ctx, func(b store.Bundle) error {
		resource, current, err := m.fetchActive(ctx, b, resourceID, RuleIsNotSoftDeleted, "The resource is already soft deleted.")
		if err != nil {
			return err
		}
		if err := m.authorize(ctx, b, current, actorID, "The user cannot delete this resource."); err != nil {
			return err
		}

		resource.Deleted = true
		resource.Scrub()
		resource.ModifiedBy = actorID
		if err := b.Resources().Update(ctx, resource); err != nil {
			return fmt.Errorf("failed to soft delete resource: %w", err)
		}

		ids := []string{resourceID}
		if err := b.Permissions().DeleteByResources(ctx, ids); err != nil {
			return fmt.Errorf("failed to delete permissions: %w", err)
		}
		if err := b.Secrets().DeleteByResources(ctx, ids); err != nil {
			return fmt.Errorf("failed to delete secrets: %w", err)
		}
		if err := b.Favorites().DeleteByResources(ctx, ids); err != nil {
			return fmt.Errorf("failed to delete favorites: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	m.publisher.Publish(event.New(event.KindResourceSoftDeleted, resourceID, actorID))
	return nil
}

// fetchActive reads the resource row under the transaction's lock and
// rejects the mutation when the row is missing or already retired.
func (m *Manager) fetchActive(ctx context.Context, b store.Bundle, resourceID, deletedRule, deletedMessage string) (*model.Resource, []model.Permission, error) {
	resource, err := b.Resources().Fetch(ctx, resourceID)
	if errors.Is(err, store.ErrResourceNotFound) {
		return nil, nil, newValidationError("id", RuleExists, "The resource does not exist.")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch resource: %w", err)
	}
	if resource.Deleted {
		field := "id"
		if deletedRule == RuleIsNotSoftDeleted {
			field = "deleted"
		}
		return nil, nil, newValidationError(field, deletedRule, deletedMessage)
	}

	perms, err := b.Permissions().ListByResource(ctx, resourceID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list permissions: %w", err)
	}
	return resource, perms, nil
}

func (m *Manager) authorize(ctx context.Context, b store.Bundle, perms []model.Permission, actorID, message string) error {
	groups, err := b.Access().GroupsOfUser(ctx, actorID)
	if err != nil {
		return fmt.Errorf("failed to resolve actor groups: %w", err)
	}
	if !Authorize(perms, actorID, groups, LevelUpdate) {
		return newValidationError("id", RuleHasAccess, message)
	}
	return nil
}

// authorizedUsers materializes the user-id set a permission set grants
// access to: user grantees plus the members of every group grantee,
// deduplicated and sorted.
func authorizedUsers(ctx context.Context, b store.Bundle, perms PermissionSet) ([]string, error) {
	members, err := b.Access().MembersOfGroups(ctx, perms.GroupGrantees())
	if err != nil {
		return nil, fmt.Errorf("failed to expand group grantees: %w", err)
	}

	set := make(map[string]struct{})
	for _, id := range perms.UserGrantees() {
		set[id] = struct{}{}
	}
	for _, id := range members {
		set[id] = struct{}{}
	}

	users := make([]string, 0, len(set))
	for id := range set {
		users = append(users, id)
	}
	sort.Strings(users)
	return users, nil
}

func permissionInputs(rows []model.Permission) []PermissionInput {
	inputs := make([]PermissionInput, 0, len(rows))
	for _, row := range rows {
		inputs = append(inputs, PermissionInput{
			AroType: row.AroType,
			AroID:   row.AroID,
			Type:    Level(row.Type),
		})
	}
	return inputs
}

func secretHolders(rows []model.Secret) []string {
	holders := make([]string, 0, len(rows))
	for _, row := range rows {
		holders = append(holders, row.UserID)
	}
	return holders
}

func applyPatch(resource *model.Resource, patch UpdatePatch) {
	if patch.Name != nil {
		resource.Name = *patch.Name
	}
	if patch.Username != nil {
		resource.Username = patch.Username
	}
	if patch.URI != nil {
		resource.URI = patch.URI
	}
	if patch.Description != nil {
		resource.Description = patch.Description
	}
	if patch.ResourceTypeID != nil {
		resource.ResourceTypeID = patch.ResourceTypeID
	}
}

func difference(from, remove []string) []string {
	keep := make(map[string]struct{}, len(remove))
	for _, id := range remove {
		keep[id] = struct{}{}
	}
	var out []string
	for _, id := range from {
		if _, ok := keep[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}

// checkID rejects identifiers that are not well-formed uuids before any
// work is attempted.
func checkID(field, id string) error {
	if uuid.Validate(id) != nil {
		return newValidationError(field, RuleUUID, "The identifier should be a valid uuid.")
	}
	return nil
}
