package services

import (
	"context"

	"github.com/baharkarakas/blogpost-backend/internal/models"
	repo "github.com/baharkarakas/blogpost-backend/internal/repository"
)

type RoleService struct {
	roles repo.Roles
	users repo.Users
}

func NewRoleService(roles repo.Roles, users repo.Users) *RoleService {
	return &RoleService{roles: roles, users: users}
}

func (s *RoleService) List(ctx context.Context) ([]models.Role, error) {
	return s.roles.List(ctx)
}

// UsersWithRole returns every user holding the named role. An unknown role
// name is a not-found error; a known role with no users is an empty list.
func (s *RoleService) UsersWithRole(ctx context.Context, name string) ([]models.User, error) {
	role, err := s.roles.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return s.users.ListByRole(ctx, role.ID)
}

// ResolveRoleName reads the caller's role fresh from the store: user first,
// then the referenced role. A dangling role reference fails the request
// rather than defaulting.
func (s *RoleService) ResolveRoleName(ctx context.Context, userID string) (string, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	role, err := s.roles.GetByID(ctx, u.RoleID)
	if err != nil {
		return "", err
	}
	return role.Name, nil
}
