package model

import "time"

// Field length caps enforced by the API layer before the engine runs.
const (
	ResourceNameMaxLength        = 64
	ResourceUsernameMaxLength    = 64
	ResourceURIMaxLength         = 1024
	ResourceDescriptionMaxLength = 10000
)

// Resource represents a shared password-manager entry.
//
// While Deleted is false at least one OWNER permission exists for it and the
// set of users holding a Secret matches the set of authorized users.
type Resource struct {
	ID             string    `gorm:"column:id;primaryKey"`
	Name           string    `gorm:"column:name;not null"`
	Username       *string   `gorm:"column:username"`
	URI            *string   `gorm:"column:uri"`
	Description    *string   `gorm:"column:description"`
	Deleted        bool      `gorm:"column:deleted;not null"`
	ResourceTypeID *string   `gorm:"column:resource_type_id"`
	CreatedBy      string    `gorm:"column:created_by;not null"`
	ModifiedBy     string    `gorm:"column:modified_by;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	ModifiedAt     time.Time `gorm:"column:modified_at;autoUpdateTime"`
}

func (Resource) TableName() string {
	return "resources"
}

// Scrub clears the sensitive metadata fields ahead of a soft delete.
func (r *Resource) Scrub() {
	r.Username = nil
	r.URI = nil
	r.Description = nil
}
