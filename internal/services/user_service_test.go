package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/blogpost-backend/internal/apperr"
	"github.com/baharkarakas/blogpost-backend/internal/auth"
	"github.com/baharkarakas/blogpost-backend/internal/models"
	"github.com/baharkarakas/blogpost-backend/internal/repository/repotest"
)

func newUserServiceFixture(t *testing.T) (*UserService, *repotest.UsersRepo, *repotest.RolesRepo) {
	t.Helper()
	cipher, err := auth.NewCipher("svc-test-enc-key")
	require.NoError(t, err)
	tokens := auth.NewTokenService("svc-test-secret", cipher, time.Hour)

	users := repotest.NewUsers()
	roles := repotest.NewRoles()
	_, err = roles.Create(context.Background(), models.Role{Name: models.RoleRegular, Description: "regular"})
	require.NoError(t, err)

	return NewUserService(users, roles, tokens, nil), users, roles
}

func TestSignUpDuplicateEmailCreatesNothing(t *testing.T) {
	svc, users, _ := newUserServiceFixture(t)
	ctx := context.Background()

	in := SignUpInput{Email: "dup@example.com", Password: "Password123", Username: "first", Country: "AU"}
	_, err := svc.SignUp(ctx, in)
	require.NoError(t, err)

	in.Username = "second"
	_, err = svc.SignUp(ctx, in)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	all, err := users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Equal(t, "first", all[0].Username)
}

func TestSignUpDefaultsToRegularRole(t *testing.T) {
	svc, users, roles := newUserServiceFixture(t)
	ctx := context.Background()

	u, err := svc.SignUp(ctx, SignUpInput{Email: "a@example.com", Password: "Password123", Username: "alice"})
	require.NoError(t, err)

	role, err := roles.GetByID(ctx, u.RoleID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleRegular, role.Name)

	stored, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "Password123", stored.PasswordHash)
}

func TestSignInIssuesDecodableToken(t *testing.T) {
	svc, _, _ := newUserServiceFixture(t)
	ctx := context.Background()

	u, err := svc.SignUp(ctx, SignUpInput{Email: "a@example.com", Password: "Password123", Username: "alice"})
	require.NoError(t, err)

	tok, err := svc.SignIn(ctx, "a@example.com", "Password123")
	require.NoError(t, err)

	claims, err := svc.tokens.DecodeClaims(tok)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, "a@example.com", claims.Email)
}

func TestSignInBadCredentials(t *testing.T) {
	svc, _, _ := newUserServiceFixture(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, SignUpInput{Email: "a@example.com", Password: "Password123", Username: "alice"})
	require.NoError(t, err)

	_, err = svc.SignIn(ctx, "a@example.com", "wrong-password")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.SignIn(ctx, "nobody@example.com", "Password123")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	svc, _, _ := newUserServiceFixture(t)

	_, err := svc.Refresh("garbage")
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)
}
