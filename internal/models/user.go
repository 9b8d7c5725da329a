package models

import "time"

// Role values for UserModel.Role.
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// UserModel represents a registered author or admin.
// Password holds the bcrypt hash and is never serialized.
type UserModel struct {
	Base
	Name          string     `json:"name"     gorm:"not null"`
	Email         string     `json:"email"    gorm:"uniqueIndex;not null"`
	Password      string     `json:"-"        gorm:"not null"`
	Role          string     `json:"role"     gorm:"default:member;not null"`
	IsActive      bool       `json:"isActive" gorm:"default:true"`
	Avatar        string     `json:"avatar"`
	Bio           string     `json:"bio"      gorm:"type:text"`
	LastLoginTime *time.Time `json:"lastLoginTime"`
	LastLoginIP   string     `json:"-"`
}

func (UserModel) TableName() string { return "users" }

// IsAdmin reports whether the user carries the admin role.
func (u *UserModel) IsAdmin() bool { return u.Role == RoleAdmin }
