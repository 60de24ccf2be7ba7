package gorm

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/lockboxhq/lockbox/pkg/model"
	"github.com/lockboxhq/lockbox/pkg/store"
)

// Ensure ResourceTypesStore implements store.ResourceTypeStore
var _ store.ResourceTypeStore = (*ResourceTypesStore)(nil)

// ResourceTypesStore implements store.ResourceTypeStore using GORM
type ResourceTypesStore struct {
	db *gorm.DB
}

// NewResourceTypesStore creates a new ResourceTypesStore
func NewResourceTypesStore(db *gorm.DB) *ResourceTypesStore {
	return &ResourceTypesStore{db: db}
}

// Exists reports whether a resource type row exists for the id.
func (s *ResourceTypesStore) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	tx := s.db.WithContext(ctx).
		Model(&model.ResourceType{}).
		Where("id = ?", id).
		Count(&count)
	return count > 0, tx.Error
}

// IDBySlug resolves a type slug to its id.
func (s *ResourceTypesStore) IDBySlug(ctx context.Context, slug string) (string, error) {
	var resourceType model.ResourceType
	tx := s.db.WithContext(ctx).Where("slug = ?", slug).First(&resourceType)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return "", store.ErrResourceTypeNotFound
		}
		return "", tx.Error
	}
	return resourceType.ID, nil
}
