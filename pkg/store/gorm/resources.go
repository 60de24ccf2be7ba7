package gorm

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lockboxhq/lockbox/pkg/model"
	"github.com/lockboxhq/lockbox/pkg/store"
)

// Ensure ResourcesStore implements store.ResourceStore
var _ store.ResourceStore = (*ResourcesStore)(nil)

// ResourcesStore implements store.ResourceStore using GORM
type ResourcesStore struct {
	db        *gorm.DB
	forUpdate bool
}

// NewResourcesStore creates a new ResourcesStore
func NewResourcesStore(db *gorm.DB) *ResourcesStore {
	return &ResourcesStore{db: db}
}

// Fetch retrieves a resource by id. Inside a transaction the row is read
// with FOR UPDATE so concurrent writers to the same resource block.
func (s *ResourcesStore) Fetch(ctx context.Context, id string) (*model.Resource, error) {
	var resource model.Resource
	query := s.db.WithContext(ctx)
	if s.forUpdate {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	tx := query.Where("id = ?", id).First(&resource)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrResourceNotFound
		}
		return nil, tx.Error
	}
	return &resource, nil
}

// Create persists a new resource row.
func (s *ResourcesStore) Create(ctx context.Context, resource *model.Resource) error {
	return s.db.WithContext(ctx).Create(resource).Error
}

// Update persists all columns of an existing resource row.
func (s *ResourcesStore) Update(ctx context.Context, resource *model.Resource) error {
	return s.db.WithContext(ctx).Save(resource).Error
}

// SoftDeleteMany flags the given active resources deleted and scrubs their
// sensitive metadata in a single statement.
func (s *ResourcesStore) SoftDeleteMany(ctx context.Context, ids []string) (int64, error) {
	tx := s.db.WithContext(ctx).
		Model(&model.Resource{}).
		Where("id IN ? AND deleted = ?", ids, false).
		Updates(map[string]interface{}{
			"deleted":     true,
			"username":    nil,
			"uri":         nil,
			"description": nil,
		})
	return tx.RowsAffected, tx.Error
}

// CountMissingResourceType counts resources without a resource type.
func (s *ResourcesStore) CountMissingResourceType(ctx context.Context) (int64, error) {
	var count int64
	tx := s.db.WithContext(ctx).
		Model(&model.Resource{}).
		Where("resource_type_id IS NULL").
		Count(&count)
	return count, tx.Error
}

// BackfillResourceType assigns typeID to every resource without a type.
func (s *ResourcesStore) BackfillResourceType(ctx context.Context, typeID string) (int64, error) {
	tx := s.db.WithContext(ctx).
		Model(&model.Resource{}).
		Where("resource_type_id IS NULL").
		Update("resource_type_id", typeID)
	return tx.RowsAffected, tx.Error
}
