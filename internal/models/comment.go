package models

// CommentModel is a comment owned by its parent post. Comments are append-only:
// no update or delete path exists, and a comment is never addressed outside the
// sequence of the post it belongs to.
type CommentModel struct {
	Base
	PostID  string     `json:"-"       gorm:"index;not null"`
	UserID  string     `json:"userId"  gorm:"index;not null"`
	User    *UserModel `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Content string     `json:"content" gorm:"type:text;not null"`
}

func (CommentModel) TableName() string { return "comments" }
