package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/inkstone/core/internal/models"
	"github.com/inkstone/core/internal/pkg/apperr"
	jwtpkg "github.com/inkstone/core/internal/pkg/jwt"
	"github.com/inkstone/core/internal/pkg/response"
	sessionpkg "github.com/inkstone/core/internal/pkg/session"
	"gorm.io/gorm"
)

const (
	ContextKeyUserID   = "user_id"
	ContextKeyUserRole = "user_role"
	ContextKeySID      = "session_id"
)

// Identity is the resolved caller identity of an authenticated request.
type Identity struct {
	UserID    string
	Role      string
	SessionID string
}

// Auth returns a middleware that rejects requests without a valid token.
// This is the single entry point every protected operation passes through:
// token signature, expiry, session liveness and user existence/active state
// are all checked here before any handler runs.
func Auth(db *gorm.DB, signer *jwtpkg.Signer) gin.HandlerFunc {
	return func(c *gin.Context) {
		// An upstream OptionalAuth may have resolved the identity already.
		if IsAuthenticated(c) {
			c.Next()
			return
		}
		ident, err := ResolveIdentity(db, signer, extractToken(c))
		if err != nil {
			response.Unauthorized(c, "invalid or missing credentials")
			return
		}
		setIdentity(c, ident)
		c.Next()
	}
}

// OptionalAuth resolves the caller identity if a valid token is present but
// never blocks the request.
func OptionalAuth(db *gorm.DB, signer *jwtpkg.Signer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAuthenticated(c) {
			if ident, err := ResolveIdentity(db, signer, extractToken(c)); err == nil {
				setIdentity(c, ident)
			}
		}
		c.Next()
	}
}

// ResolveIdentity validates a bearer token end to end: parse and verify the
// JWT, confirm the bound session is alive, and confirm the user still exists
// and is active. Every failure collapses into Unauthorized.
func ResolveIdentity(db *gorm.DB, signer *jwtpkg.Signer, rawToken string) (*Identity, error) {
	token := NormalizeToken(rawToken)
	if token == "" {
		return nil, apperr.Unauthorized("token is required")
	}

	claims, err := signer.Parse(token)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnauthorized, "token is not valid", err)
	}

	active, err := sessionpkg.IsActive(db, claims.UserID, claims.SessionID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnauthorized, "session lookup failed", err)
	}
	if !active {
		return nil, apperr.Unauthorized("session expired or revoked")
	}

	var u models.UserModel
	if err := db.First(&u, "id = ?", claims.UserID).Error; err != nil {
		return nil, apperr.Unauthorized("token is not valid")
	}
	if !u.IsActive {
		return nil, apperr.Unauthorized("account is deactivated")
	}

	return &Identity{UserID: u.ID, Role: u.Role, SessionID: claims.SessionID}, nil
}

func setIdentity(c *gin.Context, ident *Identity) {
	c.Set(ContextKeyUserID, ident.UserID)
	c.Set(ContextKeyUserRole, ident.Role)
	if ident.SessionID != "" {
		c.Set(ContextKeySID, ident.SessionID)
	}
}

// CurrentUserID extracts the authenticated user ID from context.
func CurrentUserID(c *gin.Context) string {
	v, _ := c.Get(ContextKeyUserID)
	id, _ := v.(string)
	return id
}

// CurrentUserRole extracts the authenticated user's role from context.
func CurrentUserRole(c *gin.Context) string {
	v, _ := c.Get(ContextKeyUserRole)
	role, _ := v.(string)
	return role
}

// CurrentSessionID extracts the authenticated session ID from context.
func CurrentSessionID(c *gin.Context) string {
	v, _ := c.Get(ContextKeySID)
	id, _ := v.(string)
	return id
}

// IsAuthenticated returns true if the request carries a valid identity.
func IsAuthenticated(c *gin.Context) bool {
	return CurrentUserID(c) != ""
}

func extractToken(c *gin.Context) string {
	return NormalizeToken(c.GetHeader("Authorization"))
}

// NormalizeToken trims spaces and strips the optional Bearer prefix.
func NormalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}
