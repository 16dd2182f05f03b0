package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	repo "github.com/baharkarakas/blogpost-backend/internal/repository"
)

type Repositories struct {
	Users     repo.Users
	Roles     repo.Roles
	Posts     repo.Posts
	AuditLogs repo.AuditLogs
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Users:     &usersRepo{pool},
		Roles:     &rolesRepo{pool},
		Posts:     &postsRepo{pool},
		AuditLogs: &auditLogsRepo{pool},
	}
}
