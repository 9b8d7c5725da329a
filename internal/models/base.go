package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base is the base model for all entities. IDs are UUID strings so references
// stay stable across environments and test fixtures.
type Base struct {
	ID        string    `json:"id"        gorm:"type:char(36);primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

// StringSlice is a []string that serializes as JSON in the database.
type StringSlice []string
