package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/baharkarakas/blogpost-backend/internal/models"
	"github.com/baharkarakas/blogpost-backend/internal/repository"
)

type rolesRepo struct{ pool *pgxpool.Pool }

func NewRoles(pool *pgxpool.Pool) repository.Roles {
	return &rolesRepo{pool: pool}
}

func scanRole(row pgx.Row) (models.Role, error) {
	var role models.Role
	err := row.Scan(&role.ID, &role.Name, &role.Description)
	return role, mapErr(err)
}

func (r *rolesRepo) Create(ctx context.Context, role models.Role) (models.Role, error) {
	role.ID = uuid.NewString()
	_, err := r.pool.Exec(ctx,
		`INSERT INTO roles(id, name, description) VALUES($1,$2,$3)`,
		role.ID, role.Name, role.Description,
	)
	if err != nil {
		return models.Role{}, mapErr(err)
	}
	return role, nil
}

func (r *rolesRepo) GetByID(ctx context.Context, id string) (models.Role, error) {
	return scanRole(r.pool.QueryRow(ctx, `SELECT id, name, description FROM roles WHERE id=$1`, id))
}

func (r *rolesRepo) GetByName(ctx context.Context, name string) (models.Role, error) {
	return scanRole(r.pool.QueryRow(ctx, `SELECT id, name, description FROM roles WHERE name=$1`, name))
}

func (r *rolesRepo) List(ctx context.Context) ([]models.Role, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, description FROM roles ORDER BY name`)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := []models.Role{}
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description); err != nil {
			return nil, mapErr(err)
		}
		out = append(out, role)
	}
	return out, mapErr(rows.Err())
}
