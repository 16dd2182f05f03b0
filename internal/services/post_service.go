package services

import (
	"context"

	"github.com/baharkarakas/blogpost-backend/internal/models"
	repo "github.com/baharkarakas/blogpost-backend/internal/repository"
)

type PostService struct {
	posts repo.Posts
}

func NewPostService(posts repo.Posts) *PostService { return &PostService{posts: posts} }

func (s *PostService) Create(ctx context.Context, title, content, authorID string) (models.Post, error) {
	p := models.Post{Title: title, Content: content, AuthorID: authorID}
	if err := p.Validate(); err != nil {
		return models.Post{}, err
	}
	return s.posts.Create(ctx, p)
}

func (s *PostService) Get(ctx context.Context, id string) (models.Post, error) {
	return s.posts.GetByID(ctx, id)
}

func (s *PostService) List(ctx context.Context) ([]models.Post, error) {
	return s.posts.List(ctx)
}

func (s *PostService) ListByAuthor(ctx context.Context, authorID string) ([]models.Post, error) {
	return s.posts.ListByAuthor(ctx, authorID)
}

// Update persists an already-loaded post; callers pass the document the
// authorization check fetched so check and write see the same record.
func (s *PostService) Update(ctx context.Context, p models.Post) (models.Post, error) {
	if err := p.Validate(); err != nil {
		return models.Post{}, err
	}
	return s.posts.Update(ctx, p)
}

func (s *PostService) Delete(ctx context.Context, id string) error {
	return s.posts.Delete(ctx, id)
}
