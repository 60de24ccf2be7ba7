package model

import "time"

// DefaultResourceTypeSlug identifies the simple password type that missing
// type references are backfilled to.
const DefaultResourceTypeSlug = "password-string"

// ResourceType describes the shape of a resource's secret payload.
type ResourceType struct {
	ID          string    `gorm:"column:id;primaryKey"`
	Slug        string    `gorm:"column:slug;not null;uniqueIndex"`
	Name        string    `gorm:"column:name;not null"`
	Description *string   `gorm:"column:description"`
	Definition  string    `gorm:"column:definition;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	ModifiedAt  time.Time `gorm:"column:modified_at;autoUpdateTime"`
}

func (ResourceType) TableName() string {
	return "resource_types"
}
