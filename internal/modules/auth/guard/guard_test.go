package guard

import (
	"testing"

	"github.com/inkstone/core/internal/models"
	"github.com/inkstone/core/internal/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanMutatePost(t *testing.T) {
	assert.True(t, CanMutatePost("u1", models.RoleMember, "u1"), "author may mutate own post")
	assert.True(t, CanMutatePost("u2", models.RoleAdmin, "u1"), "admin may mutate any post")
	assert.False(t, CanMutatePost("u2", models.RoleMember, "u1"), "member may not mutate others' posts")
	assert.False(t, CanMutatePost("", models.RoleAdmin, "u1"), "empty caller is never allowed")
}

func TestRequirePostMutation(t *testing.T) {
	require.NoError(t, RequirePostMutation("u1", models.RoleMember, "u1"))

	err := RequirePostMutation("u2", models.RoleMember, "u1")
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestRequireAdmin(t *testing.T) {
	require.NoError(t, RequireAdmin(models.RoleAdmin))

	for _, role := range []string{models.RoleMember, "", "superuser"} {
		err := RequireAdmin(role)
		require.Error(t, err)
		assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	}
}
