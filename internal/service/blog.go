package service

import (
	"context"
	"mime"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/strogmv/postapi/internal/domain"
	"github.com/strogmv/postapi/internal/pkg/errors"
	"github.com/strogmv/postapi/internal/pkg/logger"
	"github.com/strogmv/postapi/internal/port"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

type BlogImpl struct {
	PostRepo  port.PostRepository
	TagRepo   port.TagRepository
	Storage   port.FileStorage
	Publisher port.Publisher

	now func() time.Time
}

func NewBlogImpl(postRepo port.PostRepository, tagRepo port.TagRepository, storage port.FileStorage, publisher port.Publisher) *BlogImpl {
	return &BlogImpl{PostRepo: postRepo, TagRepo: tagRepo, Storage: storage, Publisher: publisher, now: time.Now}
}

// CreatePost uploads the staged image and then persists the post. The two
// steps are not atomic: if the insert fails the uploaded object stays in the
// bucket and its key is logged.
func (s *BlogImpl) CreatePost(ctx context.Context, req port.CreatePostRequest) (domain.Post, error) {
	if err := req.Validate(); err != nil {
		return domain.Post{}, err
	}

	contentType := mediaType(req.Image.ContentType)
	if !allowedImageTypes[contentType] {
		return domain.Post{}, errors.InvalidInput("image must be a JPEG, PNG, GIF or WebP file")
	}

	key := StorageKey(s.now(), req.Image.OriginalName)
	_, err := s.Storage.Upload(ctx, key, req.Image.Body, port.UploadOptions{
		ContentType: contentType,
		Metadata: map[string]string{
			"download-token": uuid.NewString(),
		},
	})
	if err != nil {
		return domain.Post{}, upstream("upload image", err)
	}

	post := domain.Post{
		Title: req.Title,
		Desc:  req.Desc,
		Image: key,
		Tags:  []string{},
	}
	if err := s.PostRepo.Create(ctx, &post); err != nil {
		logger.From(ctx).Warn("post not saved, uploaded image left orphaned", "image", key, "error", err)
		return domain.Post{}, upstream("save post", err)
	}

	s.published(ctx, "post created", s.Publisher.PublishPostCreated(ctx, domain.PostCreated{
		PostID: post.ID,
		Title:  post.Title,
		Image:  post.Image,
	}))
	return post, nil
}

func (s *BlogImpl) ListPosts(ctx context.Context, req port.ListPostsRequest) ([]domain.Post, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	posts, err := s.PostRepo.List(ctx, req.Query())
	if err != nil {
		return nil, upstream("list posts", err)
	}
	return normalized(posts), nil
}

// SearchPosts matches the keyword literally; an empty keyword returns every post.
func (s *BlogImpl) SearchPosts(ctx context.Context, req port.SearchPostsRequest) ([]domain.Post, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	posts, err := s.PostRepo.Search(ctx, req.Keyword)
	if err != nil {
		return nil, upstream("search posts", err)
	}
	return normalized(posts), nil
}

func (s *BlogImpl) FilterPosts(ctx context.Context, req port.FilterPostsRequest) ([]domain.Post, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	posts, err := s.PostRepo.ListByTag(ctx, req.Tag)
	if err != nil {
		return nil, upstream("filter posts", err)
	}
	return normalized(posts), nil
}

func (s *BlogImpl) CreateTag(ctx context.Context, req port.CreateTagRequest) (domain.Tag, error) {
	if err := req.Validate(); err != nil {
		return domain.Tag{}, err
	}
	tag := domain.Tag{Name: req.Name}
	if err := s.TagRepo.Create(ctx, &tag); err != nil {
		return domain.Tag{}, upstream("save tag", err)
	}

	s.published(ctx, "tag created", s.Publisher.PublishTagCreated(ctx, domain.TagCreated{
		TagID: tag.ID,
		Name:  tag.Name,
	}))
	return tag, nil
}

// AssignTags replaces the post's tags with the requested ids that resolve
// to existing tags. Unknown ids are dropped without error. The read and the
// write are separate round trips, so concurrent calls are last-write-wins.
func (s *BlogImpl) AssignTags(ctx context.Context, req port.AssignTagsRequest) (domain.Post, error) {
	if err := req.Validate(); err != nil {
		return domain.Post{}, err
	}

	post, err := s.PostRepo.FindByID(ctx, req.PostID)
	if err != nil {
		return domain.Post{}, upstream("find post", err)
	}

	tags, err := s.TagRepo.FindByIDs(ctx, dedupe(req.TagIDs))
	if err != nil {
		return domain.Post{}, upstream("find tags", err)
	}
	tagIDs := make([]string, 0, len(tags))
	for _, t := range tags {
		tagIDs = append(tagIDs, t.ID)
	}

	updated, err := s.PostRepo.ReplaceTags(ctx, post.ID, tagIDs)
	if err != nil {
		return domain.Post{}, upstream("save post tags", err)
	}
	updated.Normalize()

	s.published(ctx, "post tags assigned", s.Publisher.PublishPostTagsAssigned(ctx, domain.PostTagsAssigned{
		PostID: updated.ID,
		TagIDs: updated.Tags,
	}))
	return *updated, nil
}

// published logs a failed event; events never fail the request that caused them.
func (s *BlogImpl) published(ctx context.Context, event string, err error) {
	if err != nil {
		logger.From(ctx).Warn("event not published", "event", event, "error", err)
	}
}

// upstream keeps classified errors as they are and marks the rest as
// dependency failures.
func upstream(op string, err error) error {
	var appErr *errors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return errors.Upstream(op, err)
}

func mediaType(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return mt
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func normalized(posts []domain.Post) []domain.Post {
	if posts == nil {
		return []domain.Post{}
	}
	for i := range posts {
		posts[i].Normalize()
	}
	return posts
}

var _ port.Blog = (*BlogImpl)(nil)
