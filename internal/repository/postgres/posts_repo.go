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

type postsRepo struct{ pool *pgxpool.Pool }

func NewPosts(pool *pgxpool.Pool) repository.Posts {
	return &postsRepo{pool: pool}
}

const postCols = `id, title, content, author_id, created_at, updated_at`

func scanPost(row pgx.Row) (models.Post, error) {
	var p models.Post
	err := row.Scan(&p.ID, &p.Title, &p.Content, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt)
	return p, mapErr(err)
}

func (r *postsRepo) Create(ctx context.Context, p models.Post) (models.Post, error) {
	p.ID = uuid.NewString()
	_, err := r.pool.Exec(ctx,
		`INSERT INTO posts(id, title, content, author_id) VALUES($1,$2,$3,$4)`,
		p.ID, p.Title, p.Content, p.AuthorID,
	)
	if err != nil {
		return models.Post{}, mapErr(err)
	}
	return r.GetByID(ctx, p.ID)
}

func (r *postsRepo) GetByID(ctx context.Context, id string) (models.Post, error) {
	return scanPost(r.pool.QueryRow(ctx, `SELECT `+postCols+` FROM posts WHERE id=$1`, id))
}

func (r *postsRepo) List(ctx context.Context) ([]models.Post, error) {
	return r.listWhere(ctx, `SELECT `+postCols+` FROM posts ORDER BY created_at DESC`)
}

func (r *postsRepo) ListByAuthor(ctx context.Context, authorID string) ([]models.Post, error) {
	return r.listWhere(ctx, `SELECT `+postCols+` FROM posts WHERE author_id=$1 ORDER BY created_at DESC`, authorID)
}

func (r *postsRepo) listWhere(ctx context.Context, sql string, args ...any) ([]models.Post, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := []models.Post{}
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, mapErr(err)
		}
		out = append(out, p)
	}
	return out, mapErr(rows.Err())
}

func (r *postsRepo) Update(ctx context.Context, p models.Post) (models.Post, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE posts SET title=$2, content=$3, updated_at=now() WHERE id=$1`,
		p.ID, p.Title, p.Content,
	)
	if err != nil {
		return models.Post{}, mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return models.Post{}, apperr.ErrNotFound
	}
	return r.GetByID(ctx, p.ID)
}

func (r *postsRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id=$1`, id)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
