package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/baharkarakas/blogpost-backend/internal/api"
	"github.com/baharkarakas/blogpost-backend/internal/auth"
	"github.com/baharkarakas/blogpost-backend/internal/config"
	"github.com/baharkarakas/blogpost-backend/internal/db"
	"github.com/baharkarakas/blogpost-backend/internal/logger"
	"github.com/baharkarakas/blogpost-backend/internal/metrics"
	"github.com/baharkarakas/blogpost-backend/internal/middleware"
	"github.com/baharkarakas/blogpost-backend/internal/repository/postgres"
	"github.com/baharkarakas/blogpost-backend/internal/services"
	"github.com/baharkarakas/blogpost-backend/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if os.Getenv("APP_MIGRATE") == "true" {
		if err := db.RunMigrations(ctx, pool); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}

	metrics.Init()

	repos := postgres.NewRepositories(pool)
	wp := worker.NewPool(4)
	defer wp.Stop()

	cipher, err := auth.NewCipher(cfg.EncKey)
	if err != nil {
		log.Error("cipher init", "err", err)
		os.Exit(1)
	}
	tokens := auth.NewTokenService(cfg.JWTSecret, cipher, cfg.TokenTTL)
	audit := services.NewAuditTrail(repos.AuditLogs, wp)

	userSvc := services.NewUserService(repos.Users, repos.Roles, tokens, audit)
	postSvc := services.NewPostService(repos.Posts)
	roleSvc := services.NewRoleService(repos.Roles, repos.Users)
	guard := middleware.NewGuard(tokens, roleSvc, repos.Posts, audit)

	r := api.NewRouter(cfg, api.Deps{
		Users: userSvc,
		Posts: postSvc,
		Roles: roleSvc,
		Guard: guard,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
