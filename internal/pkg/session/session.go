package session

import (
	"strings"
	"time"

	"github.com/inkstone/core/internal/models"
	jwtpkg "github.com/inkstone/core/internal/pkg/jwt"
	"gorm.io/gorm"
)

// Issue creates a DB session and signs a JWT bound to that session.
func Issue(db *gorm.DB, signer *jwtpkg.Signer, userID, ip, ua string) (string, *models.UserSession, error) {
	s := &models.UserSession{
		UserID:    userID,
		IP:        strings.TrimSpace(ip),
		UA:        strings.TrimSpace(ua),
		ExpiresAt: time.Now().Add(signer.TTL()),
	}
	if err := db.Create(s).Error; err != nil {
		return "", nil, err
	}

	token, err := signer.Sign(userID, s.ID)
	if err != nil {
		_ = db.Delete(s).Error
		return "", nil, err
	}
	return token, s, nil
}

// IsActive reports whether the session exists, is unrevoked and unexpired.
func IsActive(db *gorm.DB, userID, sessionID string) (bool, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return false, nil
	}

	var count int64
	err := db.Model(&models.UserSession{}).
		Where("id = ? AND user_id = ? AND revoked_at IS NULL AND expires_at > ?", sessionID, userID, time.Now()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListActive returns the user's live sessions, most recently used first.
func ListActive(db *gorm.DB, userID string) ([]models.UserSession, error) {
	var sessions []models.UserSession
	err := db.Where("user_id = ? AND revoked_at IS NULL AND expires_at > ?", userID, time.Now()).
		Order("updated_at DESC, created_at DESC").
		Find(&sessions).Error
	return sessions, err
}

// Revoke marks a single session as revoked.
func Revoke(db *gorm.DB, userID, sessionID string) error {
	now := time.Now()
	res := db.Model(&models.UserSession{}).
		Where("id = ? AND user_id = ? AND revoked_at IS NULL", sessionID, userID).
		Update("revoked_at", &now)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// RevokeAllExcept revokes every live session of the user except one. Used
// after a password change so stolen tokens stop working.
func RevokeAllExcept(db *gorm.DB, userID, keepSessionID string) error {
	now := time.Now()
	tx := db.Model(&models.UserSession{}).
		Where("user_id = ? AND revoked_at IS NULL", userID)
	if keepSessionID != "" {
		tx = tx.Where("id <> ?", keepSessionID)
	}
	return tx.Update("revoked_at", &now).Error
}

// PurgeExpired deletes sessions that expired or were revoked before cutoff.
// Returns the number of rows removed.
func PurgeExpired(db *gorm.DB, cutoff time.Time) (int64, error) {
	res := db.Where("expires_at < ? OR revoked_at < ?", cutoff, cutoff).
		Delete(&models.UserSession{})
	return res.RowsAffected, res.Error
}
