package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/baharkarakas/blogpost-backend/internal/api/handlers"
	"github.com/baharkarakas/blogpost-backend/internal/config"
	"github.com/baharkarakas/blogpost-backend/internal/metrics"
	"github.com/baharkarakas/blogpost-backend/internal/middleware"
	"github.com/baharkarakas/blogpost-backend/internal/services"
)

type Deps struct {
	Users *services.UserService
	Posts *services.PostService
	Roles *services.RoleService
	Guard *middleware.Guard
}

func NewRouter(cfg config.Config, d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.RateLimit(cfg.RateRPS), middleware.HTTPMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	uh := handlers.NewUserHandler(d.Users)
	ph := handlers.NewPostHandler(d.Posts)
	rh := handlers.NewRoleHandler(d.Roles)

	r.Route("/users", func(r chi.Router) {
		r.Post("/sign-up", uh.SignUp)
		r.Post("/sign-in", uh.SignIn)
		r.Post("/token-refresh", uh.Refresh)
		r.Get("/", uh.List)
		r.With(d.Guard.Authenticate, d.Guard.RequireAdmin).Get("/admin-check", uh.AdminCheck)
		r.Get("/{userID}", uh.Get)
		r.Put("/{userID}", uh.Update)
		r.Delete("/{userID}", uh.Delete)
	})

	r.Route("/posts", func(r chi.Router) {
		r.Get("/", ph.List)
		r.Get("/author/{authorID}", ph.ListByAuthor)
		r.Get("/{postID}", ph.Get)
		r.Post("/", ph.Create)
		r.With(d.Guard.Authenticate, d.Guard.RequireAdminOrPostAuthor).Put("/{postID}", ph.Update)
		r.Delete("/{postID}", ph.Delete)
	})

	r.Route("/roles", func(r chi.Router) {
		r.Get("/", rh.List)
		r.Get("/{roleName}", rh.UsersWithRole)
	})

	return r
}
