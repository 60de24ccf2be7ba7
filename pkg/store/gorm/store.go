package gorm

import (
	"context"

	"gorm.io/gorm"

	"github.com/lockboxhq/lockbox/pkg/store"
)

// Ensure Store implements store.Store
var _ store.Store = (*Store)(nil)

// Store bundles the GORM-backed collection stores over one connection.
type Store struct {
	db *gorm.DB
	// inTx marks bundles handed to Atomically callbacks; their resource
	// reads take FOR UPDATE locks.
	inTx bool
}

// NewStore creates a new Store
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Resources() store.ResourceStore {
	return &ResourcesStore{db: s.db, forUpdate: s.inTx}
}

func (s *Store) Permissions() store.PermissionStore {
	return &PermissionsStore{db: s.db}
}

func (s *Store) Secrets() store.SecretStore {
	return &SecretsStore{db: s.db}
}

func (s *Store) Favorites() store.FavoriteStore {
	return &FavoritesStore{db: s.db}
}

func (s *Store) ResourceTypes() store.ResourceTypeStore {
	return &ResourceTypesStore{db: s.db}
}

func (s *Store) Access() store.AccessStore {
	return &AccessStore{db: s.db}
}

// Atomically runs fn inside a database transaction. Any error from fn,
// validation errors included, rolls the whole transaction back.
func (s *Store) Atomically(ctx context.Context, fn func(store.Bundle) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx, inTx: true})
	})
}
