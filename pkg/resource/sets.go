package resource

import (
	"github.com/google/uuid"

	"github.com/lockboxhq/lockbox/pkg/model"
)

// PermissionInput is one proposed grant in a create or update request.
type PermissionInput struct {
	AroType string
	AroID   string
	Type    Level
}

// SecretInput is one proposed per-user ciphertext. Data is opaque to the
// engine.
type SecretInput struct {
	UserID string
	Data   []byte
}

// PermissionSet is a proposed permission list, always interpreted as a
// wholesale replacement of the resource's grants.
type PermissionSet []PermissionInput

// HasOwner reports whether at least one entry grants OWNER. This is the
// ownership rule: a bulk replacement can never reduce ownership to zero.
func (s PermissionSet) HasOwner() bool {
	for _, p := range s {
		if p.Type == LevelOwner {
			return true
		}
	}
	return false
}

// UserGrantees returns the ids of user grantees, in input order.
func (s PermissionSet) UserGrantees() []string {
	var users []string
	for _, p := range s {
		if p.AroType == model.AroUser {
			users = append(users, p.AroID)
		}
	}
	return users
}

// GroupGrantees returns the ids of group grantees, in input order.
func (s PermissionSet) GroupGrantees() []string {
	var groups []string
	for _, p := range s {
		if p.AroType == model.AroGroup {
			groups = append(groups, p.AroID)
		}
	}
	return groups
}

func (s PermissionSet) rows(resourceID string) []model.Permission {
	rows := make([]model.Permission, 0, len(s))
	for _, p := range s {
		rows = append(rows, model.Permission{
			ID:         uuid.NewString(),
			ResourceID: resourceID,
			AroType:    p.AroType,
			AroID:      p.AroID,
			Type:       int(p.Type),
		})
	}
	return rows
}

// SecretSet is a proposed secret list, always interpreted as a wholesale
// replacement of the resource's per-user ciphertexts.
type SecretSet []SecretInput

// AuthorIDs returns the user ids the secrets are attributed to, in input
// order, duplicates included.
func (s SecretSet) AuthorIDs() []string {
	ids := make([]string, 0, len(s))
	for _, secret := range s {
		ids = append(ids, secret.UserID)
	}
	return ids
}

func (s SecretSet) rows(resourceID string) []model.Secret {
	rows := make([]model.Secret, 0, len(s))
	for _, secret := range s {
		rows = append(rows, model.Secret{
			ID:         uuid.NewString(),
			ResourceID: resourceID,
			UserID:     secret.UserID,
			Data:       secret.Data,
		})
	}
	return rows
}

// coversExactly reports whether the author list is exactly the authorized
// user set: same cardinality, no missing or extra users, no duplicates.
func coversExactly(authors, authorized []string) bool {
	if len(authors) != len(authorized) {
		return false
	}
	seen := make(map[string]struct{}, len(authors))
	for _, id := range authors {
		if _, dup := seen[id]; dup {
			return false
		}
		seen[id] = struct{}{}
	}
	for _, id := range authorized {
		if _, ok := seen[id]; !ok {
			return false
		}
	}
	return true
}
