package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/blogpost-backend/internal/auth"
	"github.com/baharkarakas/blogpost-backend/internal/config"
	"github.com/baharkarakas/blogpost-backend/internal/middleware"
	"github.com/baharkarakas/blogpost-backend/internal/models"
	"github.com/baharkarakas/blogpost-backend/internal/repository/repotest"
	"github.com/baharkarakas/blogpost-backend/internal/services"
	"github.com/baharkarakas/blogpost-backend/internal/worker"
)

type testEnv struct {
	handler http.Handler
	tokens  *auth.TokenService
	users   *repotest.UsersRepo
	posts   *repotest.PostsRepo
	roles   *repotest.RolesRepo
	regular models.Role
	admin   models.Role
	banned  models.Role
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	cipher, err := auth.NewCipher("router-test-enc-key")
	require.NoError(t, err)
	tokens := auth.NewTokenService("router-test-secret", cipher, time.Hour)

	users := repotest.NewUsers()
	roles := repotest.NewRoles()
	posts := repotest.NewPosts()
	logs := repotest.NewAuditLogs()

	regular, err := roles.Create(ctx, models.Role{Name: models.RoleRegular})
	require.NoError(t, err)
	admin, err := roles.Create(ctx, models.Role{Name: models.RoleAdmin})
	require.NoError(t, err)
	banned, err := roles.Create(ctx, models.Role{Name: models.RoleBanned})
	require.NoError(t, err)

	pool := worker.NewPool(1)
	t.Cleanup(pool.Stop)
	audit := services.NewAuditTrail(logs, pool)

	userSvc := services.NewUserService(users, roles, tokens, audit)
	postSvc := services.NewPostService(posts)
	roleSvc := services.NewRoleService(roles, users)
	guard := middleware.NewGuard(tokens, roleSvc, posts, audit)

	handler := NewRouter(config.Config{Env: "test"}, Deps{
		Users: userSvc,
		Posts: postSvc,
		Roles: roleSvc,
		Guard: guard,
	})

	return &testEnv{
		handler: handler,
		tokens:  tokens,
		users:   users,
		posts:   posts,
		roles:   roles,
		regular: regular,
		admin:   admin,
		banned:  banned,
	}
}

func (e *testEnv) addUser(t *testing.T, username, email, password, roleID string) models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	u, err := e.users.Create(context.Background(), models.User{
		Email:        email,
		PasswordHash: hash,
		Username:     username,
		Country:      "Australia",
		RoleID:       roleID,
	})
	require.NoError(t, err)
	return u
}

func (e *testEnv) tokenFor(t *testing.T, u models.User) string {
	t.Helper()
	tok, err := e.tokens.Issue(auth.Claims{UserID: u.ID, Email: u.Email, PasswordHash: u.PasswordHash})
	require.NoError(t, err)
	return tok
}

func (e *testEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}

func TestUpdatePostAuthorization(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.addUser(t, "alice", "alice@example.com", "Password123", env.regular.ID)
	bob := env.addUser(t, "bob", "bob@example.com", "Password123", env.regular.ID)
	carol := env.addUser(t, "carol", "carol@example.com", "Password123", env.admin.ID)

	post, err := env.posts.Create(ctx, models.Post{Title: "original", Content: "body", AuthorID: alice.ID})
	require.NoError(t, err)

	update := map[string]string{"title": "changed"}

	// No token at all.
	rec := env.do(t, http.MethodPut, "/posts/"+post.ID, update, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// A regular user who is not the author.
	rec = env.do(t, http.MethodPut, "/posts/"+post.ID, update, env.tokenFor(t, bob))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	stored, err := env.posts.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", stored.Title)

	// The author.
	sent := env.tokenFor(t, alice)
	rec = env.do(t, http.MethodPut, "/posts/"+post.ID, update, sent)
	assert.Equal(t, http.StatusOK, rec.Code)
	refreshed := rec.Header().Get("X-Refreshed-Token")
	assert.NotEmpty(t, refreshed)
	assert.NotEqual(t, sent, refreshed)
	stored, err = env.posts.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "changed", stored.Title)

	// An admin who is not the author.
	rec = env.do(t, http.MethodPut, "/posts/"+post.ID, map[string]string{"title": "admin edit"}, env.tokenFor(t, carol))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdatePostExpiredToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.addUser(t, "alice", "alice@example.com", "Password123", env.regular.ID)
	post, err := env.posts.Create(ctx, models.Post{Title: "original", AuthorID: alice.ID})
	require.NoError(t, err)

	expiredCipher, err := auth.NewCipher("router-test-enc-key")
	require.NoError(t, err)
	expiredSvc := auth.NewTokenService("router-test-secret", expiredCipher, -time.Minute)
	tok, err := expiredSvc.Issue(auth.Claims{UserID: alice.ID, Email: alice.Email, PasswordHash: alice.PasswordHash})
	require.NoError(t, err)

	rec := env.do(t, http.MethodPut, "/posts/"+post.ID, map[string]string{"title": "x"}, tok)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSignUpAndSignIn(t *testing.T) {
	env := newTestEnv(t)

	signUp := map[string]string{
		"email":    "dana@example.com",
		"password": "Password123",
		"username": "dana",
		"country":  "Latvia",
	}
	rec := env.do(t, http.MethodPost, "/users/sign-up", signUp, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// Same email again: rejected, nothing created.
	rec = env.do(t, http.MethodPost, "/users/sign-up", signUp, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	all, err := env.users.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)

	// Wrong password: no token issued.
	rec = env.do(t, http.MethodPost, "/users/sign-in", map[string]string{"email": "dana@example.com", "password": "nope-nope"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotContains(t, decodeBody(t, rec), "token")

	// Correct credentials: token decodes back to the signed-in user.
	rec = env.do(t, http.MethodPost, "/users/sign-in", map[string]string{"email": "dana@example.com", "password": "Password123"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	tok, _ := decodeBody(t, rec)["token"].(string)
	require.NotEmpty(t, tok)

	claims, err := env.tokens.DecodeClaims(tok)
	require.NoError(t, err)
	assert.Equal(t, all[0].ID, claims.UserID)
	assert.Equal(t, "dana@example.com", claims.Email)
}

func TestTokenRefreshEndpoint(t *testing.T) {
	env := newTestEnv(t)
	alice := env.addUser(t, "alice", "alice@example.com", "Password123", env.regular.ID)
	tok := env.tokenFor(t, alice)

	rec := env.do(t, http.MethodPost, "/users/token-refresh", map[string]string{"token": tok}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	refreshed, _ := decodeBody(t, rec)["token"].(string)
	require.NotEmpty(t, refreshed)
	assert.NotEqual(t, tok, refreshed)

	claims, err := env.tokens.DecodeClaims(refreshed)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, claims.UserID)

	rec = env.do(t, http.MethodPost, "/users/token-refresh", map[string]string{"token": "garbage"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRoleRoutes(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "alice", "alice@example.com", "Password123", env.regular.ID)

	rec := env.do(t, http.MethodGet, "/roles", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	data, _ := decodeBody(t, rec)["data"].([]any)
	assert.Len(t, data, 3)

	rec = env.do(t, http.MethodGet, "/roles/regular", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	data, _ = decodeBody(t, rec)["data"].([]any)
	assert.Len(t, data, 1)

	// A role with no members yields an empty set, not an error.
	rec = env.do(t, http.MethodGet, "/roles/banned", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	require.Contains(t, body, "data")
	assert.Empty(t, body["data"])

	rec = env.do(t, http.MethodGet, "/roles/no-such-role", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminCheckRoute(t *testing.T) {
	env := newTestEnv(t)
	alice := env.addUser(t, "alice", "alice@example.com", "Password123", env.regular.ID)
	carol := env.addUser(t, "carol", "carol@example.com", "Password123", env.admin.ID)

	rec := env.do(t, http.MethodGet, "/users/admin-check", nil, env.tokenFor(t, alice))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodGet, "/users/admin-check", nil, env.tokenFor(t, carol))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPostReadRoutes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.addUser(t, "alice", "alice@example.com", "Password123", env.regular.ID)
	bob := env.addUser(t, "bob", "bob@example.com", "Password123", env.regular.ID)

	_, err := env.posts.Create(ctx, models.Post{Title: "one", AuthorID: alice.ID})
	require.NoError(t, err)
	p2, err := env.posts.Create(ctx, models.Post{Title: "two", AuthorID: bob.ID})
	require.NoError(t, err)

	rec := env.do(t, http.MethodGet, "/posts", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 2, decodeBody(t, rec)["postsCount"])

	rec = env.do(t, http.MethodGet, "/posts/author/"+alice.ID, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, decodeBody(t, rec)["postsCount"])

	rec = env.do(t, http.MethodGet, "/posts/"+p2.ID, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "two", decodeBody(t, rec)["title"])

	rec = env.do(t, http.MethodGet, "/posts/does-not-exist", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateAndDeletePost(t *testing.T) {
	env := newTestEnv(t)
	alice := env.addUser(t, "alice", "alice@example.com", "Password123", env.regular.ID)

	rec := env.do(t, http.MethodPost, "/posts", map[string]string{
		"title":     "fresh",
		"content":   "body",
		"author_id": alice.ID,
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	id, _ := decodeBody(t, rec)["id"].(string)
	require.NotEmpty(t, id)

	rec = env.do(t, http.MethodPost, "/posts", map[string]string{"content": "no title"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodDelete, "/posts/"+id, nil, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodGet, "/posts/"+id, nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
