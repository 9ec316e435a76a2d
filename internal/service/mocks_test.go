package service

import (
	"context"
	"io"
	"strconv"
	"time"

	"github.com/strogmv/postapi/internal/domain"
	"github.com/strogmv/postapi/internal/port"
)

type PostRepositoryMock struct {
	CreateFunc      func(ctx context.Context, entity *domain.Post) error
	FindByIDFunc    func(ctx context.Context, id string) (*domain.Post, error)
	ReplaceTagsFunc func(ctx context.Context, id string, tagIDs []string) (*domain.Post, error)
	ListFunc        func(ctx context.Context, q port.PostQuery) ([]domain.Post, error)
	SearchFunc      func(ctx context.Context, keyword string) ([]domain.Post, error)
	ListByTagFunc   func(ctx context.Context, tagID string) ([]domain.Post, error)
	DeleteAllFunc   func(ctx context.Context) (int64, error)
}

func (m *PostRepositoryMock) Create(ctx context.Context, entity *domain.Post) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, entity)
	}
	return nil
}

func (m *PostRepositoryMock) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *PostRepositoryMock) ReplaceTags(ctx context.Context, id string, tagIDs []string) (*domain.Post, error) {
	if m.ReplaceTagsFunc != nil {
		return m.ReplaceTagsFunc(ctx, id, tagIDs)
	}
	return nil, nil
}

func (m *PostRepositoryMock) List(ctx context.Context, q port.PostQuery) ([]domain.Post, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, q)
	}
	return nil, nil
}

func (m *PostRepositoryMock) Search(ctx context.Context, keyword string) ([]domain.Post, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, keyword)
	}
	return nil, nil
}

func (m *PostRepositoryMock) ListByTag(ctx context.Context, tagID string) ([]domain.Post, error) {
	if m.ListByTagFunc != nil {
		return m.ListByTagFunc(ctx, tagID)
	}
	return nil, nil
}

func (m *PostRepositoryMock) DeleteAll(ctx context.Context) (int64, error) {
	if m.DeleteAllFunc != nil {
		return m.DeleteAllFunc(ctx)
	}
	return 0, nil
}

type TagRepositoryMock struct {
	CreateFunc    func(ctx context.Context, entity *domain.Tag) error
	FindByIDsFunc func(ctx context.Context, ids []string) ([]domain.Tag, error)
	DeleteAllFunc func(ctx context.Context) (int64, error)
}

func (m *TagRepositoryMock) Create(ctx context.Context, entity *domain.Tag) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, entity)
	}
	return nil
}

func (m *TagRepositoryMock) FindByIDs(ctx context.Context, ids []string) ([]domain.Tag, error) {
	if m.FindByIDsFunc != nil {
		return m.FindByIDsFunc(ctx, ids)
	}
	return nil, nil
}

func (m *TagRepositoryMock) DeleteAll(ctx context.Context) (int64, error) {
	if m.DeleteAllFunc != nil {
		return m.DeleteAllFunc(ctx)
	}
	return 0, nil
}

type FileStorageMock struct {
	UploadFunc func(ctx context.Context, key string, reader io.Reader, opts port.UploadOptions) (string, error)
}

func (m *FileStorageMock) Upload(ctx context.Context, key string, reader io.Reader, opts port.UploadOptions) (string, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, key, reader, opts)
	}
	return key, nil
}

type PublisherMock struct {
	PostCreated      []domain.PostCreated
	TagCreated       []domain.TagCreated
	PostTagsAssigned []domain.PostTagsAssigned
	Err              error
}

func (m *PublisherMock) PublishPostCreated(ctx context.Context, event domain.PostCreated) error {
	m.PostCreated = append(m.PostCreated, event)
	return m.Err
}

func (m *PublisherMock) PublishTagCreated(ctx context.Context, event domain.TagCreated) error {
	m.TagCreated = append(m.TagCreated, event)
	return m.Err
}

func (m *PublisherMock) PublishPostTagsAssigned(ctx context.Context, event domain.PostTagsAssigned) error {
	m.PostTagsAssigned = append(m.PostTagsAssigned, event)
	return m.Err
}

type BlogMock struct {
	CreatePostFunc  func(ctx context.Context, req port.CreatePostRequest) (domain.Post, error)
	ListPostsFunc   func(ctx context.Context, req port.ListPostsRequest) ([]domain.Post, error)
	SearchPostsFunc func(ctx context.Context, req port.SearchPostsRequest) ([]domain.Post, error)
	FilterPostsFunc func(ctx context.Context, req port.FilterPostsRequest) ([]domain.Post, error)
	CreateTagFunc   func(ctx context.Context, req port.CreateTagRequest) (domain.Tag, error)
	AssignTagsFunc  func(ctx context.Context, req port.AssignTagsRequest) (domain.Post, error)
	Calls           map[string]int
}

func NewBlogMock() *BlogMock {
	return &BlogMock{Calls: map[string]int{}}
}

func (m *BlogMock) CreatePost(ctx context.Context, req port.CreatePostRequest) (domain.Post, error) {
	m.Calls["CreatePost"]++
	if m.CreatePostFunc != nil {
		return m.CreatePostFunc(ctx, req)
	}
	return domain.Post{}, nil
}

func (m *BlogMock) ListPosts(ctx context.Context, req port.ListPostsRequest) ([]domain.Post, error) {
	m.Calls["ListPosts"]++
	if m.ListPostsFunc != nil {
		return m.ListPostsFunc(ctx, req)
	}
	return []domain.Post{}, nil
}

func (m *BlogMock) SearchPosts(ctx context.Context, req port.SearchPostsRequest) ([]domain.Post, error) {
	m.Calls["SearchPosts"]++
	if m.SearchPostsFunc != nil {
		return m.SearchPostsFunc(ctx, req)
	}
	return []domain.Post{}, nil
}

func (m *BlogMock) FilterPosts(ctx context.Context, req port.FilterPostsRequest) ([]domain.Post, error) {
	m.Calls["FilterPosts"]++
	if m.FilterPostsFunc != nil {
		return m.FilterPostsFunc(ctx, req)
	}
	return []domain.Post{}, nil
}

func (m *BlogMock) CreateTag(ctx context.Context, req port.CreateTagRequest) (domain.Tag, error) {
	m.Calls["CreateTag"]++
	if m.CreateTagFunc != nil {
		return m.CreateTagFunc(ctx, req)
	}
	return domain.Tag{}, nil
}

func (m *BlogMock) AssignTags(ctx context.Context, req port.AssignTagsRequest) (domain.Post, error) {
	m.Calls["AssignTags"]++
	if m.AssignTagsFunc != nil {
		return m.AssignTagsFunc(ctx, req)
	}
	return domain.Post{}, nil
}

// mapCache is an in-process port.Cache.
type mapCache struct {
	data   map[string][]byte
	getErr error
}

func newMapCache() *mapCache {
	return &mapCache{data: map[string][]byte{}}
}

func (c *mapCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *mapCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.data[key] = value
	return nil
}

func (c *mapCache) Incr(ctx context.Context, key string) (int64, error) {
	n, _ := strconv.ParseInt(string(c.data[key]), 10, 64)
	n++
	c.data[key] = []byte(strconv.FormatInt(n, 10))
	return n, nil
}
