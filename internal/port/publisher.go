package port

import (
	"context"

	"github.com/strogmv/postapi/internal/domain"
)

type Publisher interface {
	PublishPostCreated(ctx context.Context, event domain.PostCreated) error
	PublishTagCreated(ctx context.Context, event domain.TagCreated) error
	PublishPostTagsAssigned(ctx context.Context, event domain.PostTagsAssigned) error
}
