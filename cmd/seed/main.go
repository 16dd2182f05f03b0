// Seeds the database with the fixed role set, a couple of demo users and a
// few posts. SEED_WIPE=true empties the tables first.
package main

import (
	"context"
	"log/slog"
	"math/rand"
	"os"

	"github.com/baharkarakas/blogpost-backend/internal/auth"
	"github.com/baharkarakas/blogpost-backend/internal/config"
	"github.com/baharkarakas/blogpost-backend/internal/db"
	"github.com/baharkarakas/blogpost-backend/internal/logger"
	"github.com/baharkarakas/blogpost-backend/internal/models"
	"github.com/baharkarakas/blogpost-backend/internal/repository/postgres"
)

var roles = []models.Role{
	{Name: models.RoleRegular, Description: "Can view, create and read data; edits and deletes only their own."},
	{Name: models.RoleAdmin, Description: "Full access to everything within this API."},
	{Name: models.RoleBanned, Description: "Read-only; cannot change anything."},
}

var users = []models.User{
	{Username: "seedUser1", Email: "seed1@email.com", Country: "Australia"},
	{Username: "seedUser2", Email: "seed2@email.com", Country: "Latvia"},
}

var posts = []models.Post{
	{Title: "Some seeded post", Content: "The first of the seeded posts."},
	{Title: "Some other seeded post", Content: "The second of the seeded posts."},
	{Title: "Another seeded post", Content: "The third of the seeded posts."},
}

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, pool); err != nil {
		log.Error("migrations", "err", err)
		os.Exit(1)
	}

	if cfg.SeedWipe {
		if _, err := pool.Exec(ctx, `TRUNCATE audit_logs, posts, users, roles`); err != nil {
			log.Error("wipe", "err", err)
			os.Exit(1)
		}
		log.Info("old data deleted")
	}

	repos := postgres.NewRepositories(pool)

	created := make([]models.Role, 0, len(roles))
	for _, r := range roles {
		role, err := repos.Roles.Create(ctx, r)
		if err != nil {
			log.Error("seed role", "name", r.Name, "err", err)
			os.Exit(1)
		}
		created = append(created, role)
	}

	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		password = "SomeRandomPassword1"
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Error("hash seed password", "err", err)
		os.Exit(1)
	}

	seededUsers := make([]models.User, 0, len(users))
	for _, u := range users {
		u.PasswordHash = hash
		u.RoleID = created[rand.Intn(len(created))].ID
		user, err := repos.Users.Create(ctx, u)
		if err != nil {
			log.Error("seed user", "email", u.Email, "err", err)
			os.Exit(1)
		}
		seededUsers = append(seededUsers, user)
	}

	for _, p := range posts {
		p.AuthorID = seededUsers[rand.Intn(len(seededUsers))].ID
		if _, err := repos.Posts.Create(ctx, p); err != nil {
			log.Error("seed post", "title", p.Title, "err", err)
			os.Exit(1)
		}
	}

	log.Info("seed complete", "roles", len(created), "users", len(seededUsers), "posts", len(posts))
}
