package gorm

import (
	"context"

	"gorm.io/gorm"

	"github.com/lockboxhq/lockbox/pkg/model"
	"github.com/lockboxhq/lockbox/pkg/store"
)

// Ensure AccessStore implements store.AccessStore
var _ store.AccessStore = (*AccessStore)(nil)

// AccessStore implements store.AccessStore using GORM
type AccessStore struct {
	db *gorm.DB
}

// NewAccessStore creates a new AccessStore
func NewAccessStore(db *gorm.DB) *AccessStore {
	return &AccessStore{db: db}
}

// GroupsOfUser returns the ids of the groups the user belongs to.
func (s *AccessStore) GroupsOfUser(ctx context.Context, userID string) ([]string, error) {
	var groups []string
	tx := s.db.WithContext(ctx).
		Model(&model.GroupUser{}).
		Where("user_id = ?", userID).
		Pluck("group_id", &groups)
	return groups, tx.Error
}

// MembersOfGroups returns the deduplicated user ids belonging to any of the
// given groups.
func (s *AccessStore) MembersOfGroups(ctx context.Context, groupIDs []string) ([]string, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}
	var users []string
	tx := s.db.WithContext(ctx).
		Model(&model.GroupUser{}).
		Distinct("user_id").
		Where("group_id IN ?", groupIDs).
		Pluck("user_id", &users)
	return users, tx.Error
}
