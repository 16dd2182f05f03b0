// Package repotest provides in-memory repository implementations for tests.
// They honor the same error contract as the postgres repositories.
package repotest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/baharkarakas/blogpost-backend/internal/apperr"
	"github.com/baharkarakas/blogpost-backend/internal/models"
)

type UsersRepo struct {
	mu   sync.Mutex
	byID map[string]models.User
}

func NewUsers() *UsersRepo {
	return &UsersRepo{byID: map[string]models.User{}}
}

func (r *UsersRepo) Create(_ context.Context, u models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return models.User{}, fmt.Errorf("%w: duplicate value", apperr.ErrValidation)
		}
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.byID[u.ID] = u
	return u, nil
}

func (r *UsersRepo) GetByID(_ context.Context, id string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return models.User{}, apperr.ErrNotFound
	}
	return u, nil
}

func (r *UsersRepo) GetByEmail(_ context.Context, email string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, apperr.ErrNotFound
}

func (r *UsersRepo) List(_ context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.User{}
	for _, u := range r.byID {
		out = append(out, u)
	}
	return out, nil
}

func (r *UsersRepo) ListByRole(_ context.Context, roleID string) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.User{}
	for _, u := range r.byID {
		if u.RoleID == roleID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *UsersRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *UsersRepo) Update(_ context.Context, u models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[u.ID]; !ok {
		return models.User{}, apperr.ErrNotFound
	}
	u.UpdatedAt = time.Now()
	r.byID[u.ID] = u
	return u, nil
}

func (r *UsersRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

type RolesRepo struct {
	mu   sync.Mutex
	byID map[string]models.Role
}

func NewRoles() *RolesRepo {
	return &RolesRepo{byID: map[string]models.Role{}}
}

func (r *RolesRepo) Create(_ context.Context, role models.Role) (models.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	role.ID = uuid.NewString()
	r.byID[role.ID] = role
	return role, nil
}

func (r *RolesRepo) GetByID(_ context.Context, id string) (models.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	role, ok := r.byID[id]
	if !ok {
		return models.Role{}, apperr.ErrNotFound
	}
	return role, nil
}

func (r *RolesRepo) GetByName(_ context.Context, name string) (models.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, role := range r.byID {
		if role.Name == name {
			return role, nil
		}
	}
	return models.Role{}, apperr.ErrNotFound
}

func (r *RolesRepo) List(_ context.Context) ([]models.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Role{}
	for _, role := range r.byID {
		out = append(out, role)
	}
	return out, nil
}

type PostsRepo struct {
	mu   sync.Mutex
	byID map[string]models.Post
}

func NewPosts() *PostsRepo {
	return &PostsRepo{byID: map[string]models.Post{}}
}

func (r *PostsRepo) Create(_ context.Context, p models.Post) (models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	r.byID[p.ID] = p
	return p, nil
}

func (r *PostsRepo) GetByID(_ context.Context, id string) (models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return models.Post{}, apperr.ErrNotFound
	}
	return p, nil
}

func (r *PostsRepo) List(_ context.Context) ([]models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Post{}
	for _, p := range r.byID {
		out = append(out, p)
	}
	return out, nil
}

func (r *PostsRepo) ListByAuthor(_ context.Context, authorID string) ([]models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Post{}
	for _, p := range r.byID {
		if p.AuthorID == authorID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *PostsRepo) Update(_ context.Context, p models.Post) (models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[p.ID]; !ok {
		return models.Post{}, apperr.ErrNotFound
	}
	p.UpdatedAt = time.Now()
	r.byID[p.ID] = p
	return p, nil
}

func (r *PostsRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

type AuditLogsRepo struct {
	mu      sync.Mutex
	Entries []models.AuditLog
}

func NewAuditLogs() *AuditLogsRepo { return &AuditLogsRepo{} }

func (r *AuditLogsRepo) Create(_ context.Context, l models.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l.ID = uuid.NewString()
	l.CreatedAt = time.Now()
	r.Entries = append(r.Entries, l)
	return nil
}
