package middleware

import (
	"fmt"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/inkstone/core/internal/models"
	"github.com/inkstone/core/internal/pkg/apperr"
	jwtpkg "github.com/inkstone/core/internal/pkg/jwt"
	sessionpkg "github.com/inkstone/core/internal/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "test-secret"

func setup(t *testing.T) (*gorm.DB, *jwtpkg.Signer, *models.UserModel, string) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.UserModel{}, &models.UserSession{}))

	u := &models.UserModel{
		Name: "Alice", Email: "alice@example.com",
		Password: "hash", Role: models.RoleMember, IsActive: true,
	}
	require.NoError(t, db.Create(u).Error)

	signer := jwtpkg.NewSigner(testSecret, time.Hour)
	token, _, err := sessionpkg.Issue(db, signer, u.ID, "127.0.0.1", "test")
	require.NoError(t, err)

	return db, signer, u, token
}

func TestResolveIdentity(t *testing.T) {
	db, signer, u, token := setup(t)

	ident, err := ResolveIdentity(db, signer, "Bearer "+token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, ident.UserID)
	assert.Equal(t, models.RoleMember, ident.Role)
	assert.NotEmpty(t, ident.SessionID)
}

func TestResolveIdentityMissingToken(t *testing.T) {
	db, signer, _, _ := setup(t)

	for _, raw := range []string{"", "   ", "Bearer "} {
		_, err := ResolveIdentity(db, signer, raw)
		require.Error(t, err)
		assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
	}
}

func TestResolveIdentityExpiredToken(t *testing.T) {
	db, signer, u, _ := setup(t)

	// Hand-craft an already expired token with the real secret.
	claims := jwtpkg.Claims{
		UserID: u.ID,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwtlib.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	expired, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ResolveIdentity(db, signer, expired)
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestResolveIdentityTamperedToken(t *testing.T) {
	db, signer, u, _ := setup(t)

	otherSigner := jwtpkg.NewSigner("a-different-secret", time.Hour)
	forged, err := otherSigner.Sign(u.ID, "some-session")
	require.NoError(t, err)

	_, err = ResolveIdentity(db, signer, forged)
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestResolveIdentityRevokedSession(t *testing.T) {
	db, signer, u, token := setup(t)

	claims, err := signer.Parse(token)
	require.NoError(t, err)
	require.NoError(t, sessionpkg.Revoke(db, u.ID, claims.SessionID))

	_, err = ResolveIdentity(db, signer, token)
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestResolveIdentityInactiveUser(t *testing.T) {
	db, signer, u, token := setup(t)

	require.NoError(t, db.Model(u).Update("is_active", false).Error)

	_, err := ResolveIdentity(db, signer, token)
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestNormalizeToken(t *testing.T) {
	assert.Equal(t, "abc", NormalizeToken("abc"))
	assert.Equal(t, "abc", NormalizeToken("Bearer abc"))
	assert.Equal(t, "abc", NormalizeToken("bearer abc"))
	assert.Equal(t, "abc", NormalizeToken("  Bearer   abc  "))
	assert.Equal(t, "", NormalizeToken("   "))
}
