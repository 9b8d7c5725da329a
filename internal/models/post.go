package models

// PostModel is a blog post. AuthorID is immutable after creation; CategoryID
// must always reference an existing category (checked at write time, there is
// no foreign-key constraint enforcing it).
type PostModel struct {
	Base
	Title         string         `json:"title"         gorm:"not null"`
	Content       string         `json:"content"       gorm:"type:longtext;not null"`
	Excerpt       string         `json:"excerpt"`
	FeaturedImage string         `json:"featuredImage"`
	Tags          StringSlice    `json:"tags"          gorm:"type:json;serializer:json"`
	IsPublished   bool           `json:"isPublished"   gorm:"default:false;index"`
	ViewCount     int            `json:"viewCount"     gorm:"default:0"`
	AuthorID      string         `json:"authorId"      gorm:"index;not null"`
	Author        *UserModel     `json:"author,omitempty"   gorm:"foreignKey:AuthorID"`
	CategoryID    string         `json:"categoryId"    gorm:"index;not null"`
	Category      *CategoryModel `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Comments      []CommentModel `json:"comments,omitempty" gorm:"foreignKey:PostID"`
}

func (PostModel) TableName() string { return "posts" }
