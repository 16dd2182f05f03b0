package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/baharkarakas/blogpost-backend/internal/apperr"
)

type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	AuthorID  string    `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Post) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("%w: title required", apperr.ErrValidation)
	}
	if p.AuthorID == "" {
		return fmt.Errorf("%w: author required", apperr.ErrValidation)
	}
	return nil
}
