package models

import "time"

// UserSession tracks signed-in JWT sessions for device/session management.
type UserSession struct {
	Base
	UserID    string     `json:"userId"    gorm:"index;not null"`
	IP        string     `json:"ip"`
	UA        string     `json:"ua"        gorm:"type:text"`
	ExpiresAt time.Time  `json:"expiresAt" gorm:"index;not null"`
	RevokedAt *time.Time `json:"revokedAt" gorm:"index"`
}

func (UserSession) TableName() string { return "user_sessions" }
