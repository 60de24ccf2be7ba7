package gorm

import (
	"context"

	"gorm.io/gorm"

	"github.com/lockboxhq/lockbox/pkg/model"
	"github.com/lockboxhq/lockbox/pkg/store"
)

// Ensure FavoritesStore implements store.FavoriteStore
var _ store.FavoriteStore = (*FavoritesStore)(nil)

// FavoritesStore implements store.FavoriteStore using GORM
type FavoritesStore struct {
	db *gorm.DB
}

// NewFavoritesStore creates a new FavoritesStore
func NewFavoritesStore(db *gorm.DB) *FavoritesStore {
	return &FavoritesStore{db: db}
}

// DeleteByResources removes all favorites referencing the given resources.
func (s *FavoritesStore) DeleteByResources(ctx context.Context, resourceIDs []string) error {
	return s.db.WithContext(ctx).Where("resource_id IN ?", resourceIDs).Delete(&model.Favorite{}).Error
}

// DeleteByResourceAndUsers removes the given users' favorites on a resource.
func (s *FavoritesStore) DeleteByResourceAndUsers(ctx context.Context, resourceID string, userIDs []string) error {
	return s.db.WithContext(ctx).
		Where("resource_id = ? AND user_id IN ?", resourceID, userIDs).
		Delete(&model.Favorite{}).Error
}
