// Package guard holds the authorization policy: a pure function over the
// caller's identity, the caller's role and the target resource's owner.
// There is no ACL table; two rules cover every mutation in the system.
package guard

import (
	"github.com/inkstone/core/internal/models"
	"github.com/inkstone/core/internal/pkg/apperr"
)

// CanMutatePost reports whether a caller may update or delete a post:
// the caller owns it, or the caller is an admin.
func CanMutatePost(callerID, callerRole, authorID string) bool {
	if callerID == "" {
		return false
	}
	return callerID == authorID || callerRole == models.RoleAdmin
}

// RequirePostMutation returns Forbidden unless the owner-or-admin rule holds.
// Unauthenticated callers never reach this point; the auth middleware rejects
// them with Unauthorized first, which keeps the two outcomes distinct.
func RequirePostMutation(callerID, callerRole, authorID string) error {
	if !CanMutatePost(callerID, callerRole, authorID) {
		return apperr.Forbidden("not authorized to modify this post")
	}
	return nil
}

// RequireAdmin returns Forbidden unless the caller carries the admin role.
// Category mutations are admin-only.
func RequireAdmin(callerRole string) error {
	if callerRole != models.RoleAdmin {
		return apperr.Forbidden("admin privileges required")
	}
	return nil
}
