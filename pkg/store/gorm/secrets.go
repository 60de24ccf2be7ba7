package gorm

import (
	"context"

	"gorm.io/gorm"

	"github.com/lockboxhq/lockbox/pkg/model"
	"github.com/lockboxhq/lockbox/pkg/store"
)

// Ensure SecretsStore implements store.SecretStore
var _ store.SecretStore = (*SecretsStore)(nil)

// SecretsStore implements store.SecretStore using GORM
type SecretsStore struct {
	db *gorm.DB
}

// NewSecretsStore creates a new SecretsStore
func NewSecretsStore(db *gorm.DB) *SecretsStore {
	return &SecretsStore{db: db}
}

// ListByResource returns all per-user secrets of a resource.
func (s *SecretsStore) ListByResource(ctx context.Context, resourceID string) ([]model.Secret, error) {
	var secrets []model.Secret
	tx := s.db.WithContext(ctx).Where("resource_id = ?", resourceID).Find(&secrets)
	return secrets, tx.Error
}

// Replace swaps the resource's secrets for the supplied ones.
func (s *SecretsStore) Replace(ctx context.Context, resourceID string, secrets []model.Secret) error {
	db := s.db.WithContext(ctx)
	if err := db.Where("resource_id = ?", resourceID).Delete(&model.Secret{}).Error; err != nil {
		return err
	}
	if len(secrets) == 0 {
		return nil
	}
	return db.Create(&secrets).Error
}

// DeleteByResources removes all secrets of the given resources.
func (s *SecretsStore) DeleteByResources(ctx context.Context, resourceIDs []string) error {
	return s.db.WithContext(ctx).Where("resource_id IN ?", resourceIDs).Delete(&model.Secret{}).Error
}
