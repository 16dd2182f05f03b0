package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/baharkarakas/blogpost-backend/internal/apperr"
	"github.com/baharkarakas/blogpost-backend/internal/auth"
	"github.com/baharkarakas/blogpost-backend/internal/metrics"
	"github.com/baharkarakas/blogpost-backend/internal/models"
	repo "github.com/baharkarakas/blogpost-backend/internal/repository"
)

type UserService struct {
	users  repo.Users
	roles  repo.Roles
	tokens *auth.TokenService
	audit  *AuditTrail
}

func NewUserService(users repo.Users, roles repo.Roles, tokens *auth.TokenService, audit *AuditTrail) *UserService {
	return &UserService{users: users, roles: roles, tokens: tokens, audit: audit}
}

type SignUpInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
	Country  string `json:"country"`
	RoleID   string `json:"role_id"`
}

// SignUp creates a user after the uniqueness check; no record is written
// when the email is already registered. An empty role falls back to the
// seeded "regular" role.
func (s *UserService) SignUp(ctx context.Context, in SignUpInput) (models.User, error) {
	email := strings.TrimSpace(in.Email)
	taken, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return models.User{}, err
	}
	if taken {
		return models.User{}, fmt.Errorf("%w: an account with this email address already exists", apperr.ErrValidation)
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", apperr.ErrValidation, err)
	}
	roleID := in.RoleID
	if roleID == "" {
		role, err := s.roles.GetByName(ctx, models.RoleRegular)
		if err != nil {
			return models.User{}, err
		}
		roleID = role.ID
	}
	u := models.User{
		Email:        email,
		PasswordHash: hash,
		Username:     strings.TrimSpace(in.Username),
		Country:      strings.TrimSpace(in.Country),
		RoleID:       roleID,
	}
	if err := u.Validate(); err != nil {
		return models.User{}, err
	}
	return s.users.Create(ctx, u)
}

// SignIn issues a session token for valid credentials. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *UserService) SignIn(ctx context.Context, email, password string) (string, error) {
	u, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			metrics.SignInsTotal.WithLabelValues("failed").Inc()
			s.audit.Record("user", "", "sign_in_failed", map[string]any{"email": email})
			return "", fmt.Errorf("%w: invalid user details provided", apperr.ErrValidation)
		}
		return "", err
	}
	if !auth.VerifyPassword(password, u.PasswordHash) {
		metrics.SignInsTotal.WithLabelValues("failed").Inc()
		s.audit.Record("user", u.ID, "sign_in_failed", nil)
		return "", fmt.Errorf("%w: invalid user details provided", apperr.ErrValidation)
	}
	tok, err := s.tokens.Issue(auth.Claims{UserID: u.ID, Email: u.Email, PasswordHash: u.PasswordHash})
	if err != nil {
		return "", err
	}
	metrics.SignInsTotal.WithLabelValues("ok").Inc()
	s.audit.Record("user", u.ID, "sign_in", nil)
	return tok, nil
}

// Refresh validates the presented token and returns one with a fresh expiry.
func (s *UserService) Refresh(token string) (string, error) {
	return s.tokens.VerifyAndRefresh(token)
}

func (s *UserService) Get(ctx context.Context, id string) (models.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

type UpdateUserInput struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Country  string `json:"country"`
	RoleID   string `json:"role_id"`
}

// Update applies the non-empty fields of in to the stored user.
func (s *UserService) Update(ctx context.Context, id string, in UpdateUserInput) (models.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	if in.Email != "" && in.Email != u.Email {
		taken, err := s.users.ExistsByEmail(ctx, in.Email)
		if err != nil {
			return models.User{}, err
		}
		if taken {
			return models.User{}, fmt.Errorf("%w: an account with this email address already exists", apperr.ErrValidation)
		}
		u.Email = in.Email
	}
	if in.Username != "" {
		u.Username = in.Username
	}
	if in.Country != "" {
		u.Country = in.Country
	}
	if in.RoleID != "" {
		u.RoleID = in.RoleID
	}
	if err := u.Validate(); err != nil {
		return models.User{}, err
	}
	return s.users.Update(ctx, u)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}
