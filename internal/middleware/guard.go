package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/baharkarakas/blogpost-backend/internal/api/httpx"
	"github.com/baharkarakas/blogpost-backend/internal/auth"
	"github.com/baharkarakas/blogpost-backend/internal/metrics"
	"github.com/baharkarakas/blogpost-backend/internal/models"
	repo "github.com/baharkarakas/blogpost-backend/internal/repository"
	"github.com/baharkarakas/blogpost-backend/internal/services"
)

// Principal is the authenticated caller attached to the request context:
// identity from the token, role read fresh from the store, and the
// refreshed envelope the client must adopt.
type Principal struct {
	UserID string
	Role   string
	Token  string
}

type principalKey struct{}
type postKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// PostFrom returns the post loaded by the ownership check, so the handler
// writes the same document the check saw.
func PostFrom(ctx context.Context) (models.Post, bool) {
	p, ok := ctx.Value(postKey{}).(models.Post)
	return p, ok
}

// Guard is the single authorization decision procedure for every protected
// route. Each stage either rejects terminally or enriches the context.
type Guard struct {
	tokens *auth.TokenService
	roles  *services.RoleService
	posts  repo.Posts
	audit  *services.AuditTrail
}

func NewGuard(tokens *auth.TokenService, roles *services.RoleService, posts repo.Posts, audit *services.AuditTrail) *Guard {
	return &Guard{tokens: tokens, roles: roles, posts: posts, audit: audit}
}

// Authenticate verifies the bearer token, slides its expiry and resolves the
// caller's role from the store. The refreshed envelope goes out in
// X-Refreshed-Token; a client that ignores it loses the session at the
// original expiry.
func (g *Guard) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ah := r.Header.Get("Authorization")
		if ah == "" || !strings.HasPrefix(strings.ToLower(ah), "bearer ") {
			metrics.AuthFailuresTotal.WithLabelValues("token").Inc()
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token", nil)
			return
		}
		raw := strings.TrimSpace(ah[len("Bearer "):])

		refreshed, err := g.tokens.VerifyAndRefresh(raw)
		if err != nil {
			metrics.AuthFailuresTotal.WithLabelValues("token").Inc()
			httpx.WriteAppError(w, err)
			return
		}
		claims, err := g.tokens.DecodeClaims(refreshed)
		if err != nil {
			httpx.WriteAppError(w, err)
			return
		}
		role, err := g.roles.ResolveRoleName(r.Context(), claims.UserID)
		if err != nil {
			metrics.AuthFailuresTotal.WithLabelValues("role").Inc()
			httpx.WriteAppError(w, err)
			return
		}
		metrics.TokenRefreshesTotal.Inc()
		w.Header().Set("X-Refreshed-Token", refreshed)

		p := Principal{UserID: claims.UserID, Role: role, Token: refreshed}
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
	})
}

// RequireAdmin passes only callers whose resolved role is "admin".
func (g *Guard) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFrom(r.Context())
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token", nil)
			return
		}
		if p.Role != models.RoleAdmin {
			g.deny(w, p, "admin_required", r.URL.Path)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdminOrPostAuthor loads the target post exactly once, compares its
// author to the caller and stashes the loaded post in the context for the
// handler's write.
func (g *Guard) RequireAdminOrPostAuthor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFrom(r.Context())
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token", nil)
			return
		}
		post, err := g.posts.GetByID(r.Context(), chi.URLParam(r, "postID"))
		if err != nil {
			httpx.WriteAppError(w, err)
			return
		}
		if p.Role != models.RoleAdmin && post.AuthorID != p.UserID {
			g.deny(w, p, "not_post_author", post.ID)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), postKey{}, post)))
	})
}

func (g *Guard) deny(w http.ResponseWriter, p Principal, reason, target string) {
	metrics.AuthFailuresTotal.WithLabelValues("forbidden").Inc()
	g.audit.Record("user", p.UserID, "authorization_denied", map[string]any{
		"reason": reason,
		"target": target,
		"role":   p.Role,
	})
	httpx.WriteError(w, http.StatusForbidden, "forbidden", "user not authorized", nil)
}
