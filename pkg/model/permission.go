package model

import "time"

// Grantee kinds. Group membership resolution lives in the groups_users
// table; the engine otherwise treats a group as an opaque grantee.
const (
	AroUser  = "User"
	AroGroup = "Group"
)

// Permission represents a grant of an access level from a user or group
// onto a resource. Permissions are owned by the resource and replaced
// wholesale whenever an update supplies a new list.
type Permission struct {
	ID         string    `gorm:"column:id;primaryKey"`
	ResourceID string    `gorm:"column:resource_id;not null;uniqueIndex:idx_permissions_resource_aro"`
	AroType    string    `gorm:"column:aro_type;not null"`
	AroID      string    `gorm:"column:aro_id;not null;uniqueIndex:idx_permissions_resource_aro"`
	Type       int       `gorm:"column:type;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	ModifiedAt time.Time `gorm:"column:modified_at;autoUpdateTime"`
}

func (Permission) TableName() string {
	return "permissions"
}

// IsUser reports whether the grantee is a user rather than a group.
func (p Permission) IsUser() bool {
	return p.AroType == AroUser
}
