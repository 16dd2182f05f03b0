package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/baharkarakas/blogpost-backend/internal/apperr"
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Username     string    `json:"username"`
	Country      string    `json:"country"`
	RoleID       string    `json:"role_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) Validate() error {
	if len(strings.TrimSpace(u.Username)) < 3 {
		return fmt.Errorf("%w: username too short", apperr.ErrValidation)
	}
	if !strings.Contains(u.Email, "@") {
		return fmt.Errorf("%w: invalid email", apperr.ErrValidation)
	}
	if u.RoleID == "" {
		return fmt.Errorf("%w: role required", apperr.ErrValidation)
	}
	return nil
}
