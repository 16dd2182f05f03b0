package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/baharkarakas/blogpost-backend/internal/apperr"
	"github.com/baharkarakas/blogpost-backend/internal/models"
	"github.com/baharkarakas/blogpost-backend/internal/repository"
)

type usersRepo struct{ pool *pgxpool.Pool }

func NewUsers(pool *pgxpool.Pool) repository.Users {
	return &usersRepo{pool: pool}
}

const userCols = `id, email, password_hash, username, country, role_id, created_at, updated_at`

func scanUser(row pgx.Row) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Username, &u.Country, &u.RoleID, &u.CreatedAt, &u.UpdatedAt)
	return u, mapErr(err)
}

func (r *usersRepo) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = uuid.NewString()
	_, err := r.pool.Exec(ctx,
		`INSERT INTO users(id, email, password_hash, username, country, role_id) VALUES($1,$2,$3,$4,$5,$6)`,
		u.ID, u.Email, u.PasswordHash, u.Username, u.Country, u.RoleID,
	)
	if err != nil {
		return models.User{}, mapErr(err)
	}
	return r.GetByID(ctx, u.ID)
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE id=$1`, id))
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE email=$1`, email))
}

func (r *usersRepo) List(ctx context.Context) ([]models.User, error) {
	return r.listWhere(ctx, `SELECT `+userCols+` FROM users ORDER BY created_at DESC`)
}

func (r *usersRepo) ListByRole(ctx context.Context, roleID string) ([]models.User, error) {
	return r.listWhere(ctx, `SELECT `+userCols+` FROM users WHERE role_id=$1 ORDER BY created_at DESC`, roleID)
}

func (r *usersRepo) listWhere(ctx context.Context, sql string, args ...any) ([]models.User, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Username, &u.Country, &u.RoleID, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, mapErr(err)
		}
		out = append(out, u)
	}
	return out, mapErr(rows.Err())
}

func (r *usersRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email=$1)`, email).Scan(&exists)
	return exists, mapErr(err)
}

func (r *usersRepo) Update(ctx context.Context, u models.User) (models.User, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET email=$2, username=$3, country=$4, role_id=$5, updated_at=now() WHERE id=$1`,
		u.ID, u.Email, u.Username, u.Country, u.RoleID,
	)
	if err != nil {
		return models.User{}, mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return models.User{}, apperr.ErrNotFound
	}
	return r.GetByID(ctx, u.ID)
}

func (r *usersRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
