package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/blogpost-backend/internal/apperr"
	"github.com/baharkarakas/blogpost-backend/internal/models"
	"github.com/baharkarakas/blogpost-backend/internal/repository/repotest"
)

func TestUsersWithRole(t *testing.T) {
	ctx := context.Background()
	users := repotest.NewUsers()
	roles := repotest.NewRoles()
	svc := NewRoleService(roles, users)

	regular, err := roles.Create(ctx, models.Role{Name: models.RoleRegular})
	require.NoError(t, err)
	_, err = roles.Create(ctx, models.Role{Name: models.RoleBanned})
	require.NoError(t, err)

	_, err = users.Create(ctx, models.User{Email: "a@example.com", Username: "alice", RoleID: regular.ID})
	require.NoError(t, err)

	withRegular, err := svc.UsersWithRole(ctx, models.RoleRegular)
	require.NoError(t, err)
	assert.Len(t, withRegular, 1)

	// A known role with no members is an empty set, not an error.
	withBanned, err := svc.UsersWithRole(ctx, models.RoleBanned)
	require.NoError(t, err)
	assert.Empty(t, withBanned)
	assert.NotNil(t, withBanned)

	_, err = svc.UsersWithRole(ctx, "no-such-role")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestResolveRoleName(t *testing.T) {
	ctx := context.Background()
	users := repotest.NewUsers()
	roles := repotest.NewRoles()
	svc := NewRoleService(roles, users)

	admin, err := roles.Create(ctx, models.Role{Name: models.RoleAdmin})
	require.NoError(t, err)
	u, err := users.Create(ctx, models.User{Email: "a@example.com", Username: "alice", RoleID: admin.ID})
	require.NoError(t, err)

	name, err := svc.ResolveRoleName(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, name)

	_, err = svc.ResolveRoleName(ctx, "missing-user")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	// A dangling role reference fails the request, it never defaults.
	dangling, err := users.Create(ctx, models.User{Email: "b@example.com", Username: "bob", RoleID: "missing-role"})
	require.NoError(t, err)
	_, err = svc.ResolveRoleName(ctx, dangling.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
