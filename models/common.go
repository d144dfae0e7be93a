package models

import (
	"time"

	"gorm.io/gorm"
)

// Timestamps adds GORM auto-times plus soft delete.
// Partners are never hard-deleted, so every root entity embeds this.
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
