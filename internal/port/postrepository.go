package port

import (
	"context"

	"github.com/strogmv/postapi/internal/domain"
)

// Sortable post fields accepted by PostQuery.SortField.
const (
	SortByID    = "id"
	SortByTitle = "title"
	SortByDesc  = "desc"
	SortByImage = "image"
)

// PostQuery selects a page of posts. An empty Tag matches every post and an
// empty SortField orders by id.
type PostQuery struct {
	Tag       string
	SortField string
	SortDesc  bool
	Skip      int
	Limit     int
}

// PostRepository defines storage operations for Post.
// Lookups of unknown or malformed ids return a NotFound *errors.AppError.
type PostRepository interface {
	Create(ctx context.Context, entity *domain.Post) error
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	ReplaceTags(ctx context.Context, id string, tagIDs []string) (*domain.Post, error)
	List(ctx context.Context, q PostQuery) ([]domain.Post, error)
	Search(ctx context.Context, keyword string) ([]domain.Post, error)
	ListByTag(ctx context.Context, tagID string) ([]domain.Post, error)
	DeleteAll(ctx context.Context) (int64, error)
}
