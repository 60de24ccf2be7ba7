package model

import "time"

// Favorite is a user's bookmark on a resource. Favorites carry no invariant
// beyond referential validity and are removed when the user loses access or
// the resource is soft deleted.
type Favorite struct {
	ID         string    `gorm:"column:id;primaryKey"`
	UserID     string    `gorm:"column:user_id;not null;uniqueIndex:idx_favorites_user_resource"`
	ResourceID string    `gorm:"column:resource_id;not null;uniqueIndex:idx_favorites_user_resource"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Favorite) TableName() string {
	return "favorites"
}
