package model

import "time"

// Secret is the per-user encrypted copy of a resource's payload. The engine
// never decrypts Data; it only enforces that one row exists per authorized
// user. Rows are keyed (resource_id, user_id) unique, which is how duplicate
// authorship is detected at the schema level.
type Secret struct {
	ID         string    `gorm:"column:id;primaryKey"`
	ResourceID string    `gorm:"column:resource_id;not null;uniqueIndex:idx_secrets_resource_user"`
	UserID     string    `gorm:"column:user_id;not null;uniqueIndex:idx_secrets_resource_user"`
	Data       []byte    `gorm:"column:data;type:bytea;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	ModifiedAt time.Time `gorm:"column:modified_at;autoUpdateTime"`
}

func (Secret) TableName() string {
	return "secrets"
}
