package port

import (
	"context"

	"github.com/strogmv/postapi/internal/domain"
)

// TagRepository defines storage operations for Tag
type TagRepository interface {
	Create(ctx context.Context, entity *domain.Tag) error
	// FindByIDs skips ids that do not resolve to a tag.
	FindByIDs(ctx context.Context, ids []string) ([]domain.Tag, error)
	DeleteAll(ctx context.Context) (int64, error)
}
