package models

// CategoryModel represents a post category with a denormalized post counter.
// PostCount is maintained incrementally by the category service and must never
// be written through a read-modify-write cycle.
type CategoryModel struct {
	Base
	Name        string `json:"name"        gorm:"uniqueIndex;not null"`
	Slug        string `json:"slug"        gorm:"index;not null"`
	Description string `json:"description"`
	Color       string `json:"color"       gorm:"default:#007bff"`
	PostCount   int    `json:"postCount"   gorm:"default:0;not null"`
}

func (CategoryModel) TableName() string { return "categories" }
