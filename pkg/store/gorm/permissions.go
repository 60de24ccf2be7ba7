package gorm

import (
	"context"

	"gorm.io/gorm"

	"github.com/lockboxhq/lockbox/pkg/model"
	"github.com/lockboxhq/lockbox/pkg/store"
)

// Ensure PermissionsStore implements store.PermissionStore
var _ store.PermissionStore = (*PermissionsStore)(nil)

// PermissionsStore implements store.PermissionStore using GORM
type PermissionsStore struct {
	db *gorm.DB
}

// NewPermissionsStore creates a new PermissionsStore
func NewPermissionsStore(db *gorm.DB) *PermissionsStore {
	return &PermissionsStore{db: db}
}

// ListByResource returns all grants on a resource.
func (s *PermissionsStore) ListByResource(ctx context.Context, resourceID string) ([]model.Permission, error) {
	var permissions []model.Permission
	tx := s.db.WithContext(ctx).Where("resource_id = ?", resourceID).Find(&permissions)
	return permissions, tx.Error
}

// Replace swaps the resource's grants for the supplied ones.
func (s *PermissionsStore) Replace(ctx context.Context, resourceID string, permissions []model.Permission) error {
	db := s.db.WithContext(ctx)
	if err := db.Where("resource_id = ?", resourceID).Delete(&model.Permission{}).Error; err != nil {
		return err
	}
	if len(permissions) == 0 {
		return nil
	}
	return db.Create(&permissions).Error
}

// DeleteByResources removes all grants on the given resources.
func (s *PermissionsStore) DeleteByResources(ctx context.Context, resourceIDs []string) error {
	return s.db.WithContext(ctx).Where("resource_id IN ?", resourceIDs).Delete(&model.Permission{}).Error
}
