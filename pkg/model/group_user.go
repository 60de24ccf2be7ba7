package model

import "time"

// GroupUser is a group membership row. The engine reads these to expand
// group grantees into user ids; membership management itself is external.
type GroupUser struct {
	ID      string    `gorm:"column:id;primaryKey"`
	GroupID string    `gorm:"column:group_id;not null;uniqueIndex:idx_groups_users_group_user"`
	UserID  string    `gorm:"column:user_id;not null;uniqueIndex:idx_groups_users_group_user"`
	IsAdmin bool      `gorm:"column:is_admin;not null"`
	Created time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (GroupUser) TableName() string {
	return "groups_users"
}
