package service

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strogmv/postapi/internal/domain"
	"github.com/strogmv/postapi/internal/pkg/errors"
	"github.com/strogmv/postapi/internal/port"
)

func TestBlogCachedServesRepeatedReadsFromCache(t *testing.T) {
	ctx := context.Background()
	base := NewBlogMock()
	base.ListPostsFunc = func(ctx context.Context, req port.ListPostsRequest) ([]domain.Post, error) {
		return []domain.Post{{ID: "1", Title: "a", Tags: []string{}}}, nil
	}
	svc := NewBlogCached(base, newMapCache(), time.Minute)

	first, err := svc.ListPosts(ctx, port.ListPostsRequest{SortField: "title"})
	require.NoError(t, err)
	second, err := svc.ListPosts(ctx, port.ListPostsRequest{SortField: "title"})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, base.Calls["ListPosts"])

	_, err = svc.ListPosts(ctx, port.ListPostsRequest{SortField: "title", Skip: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, base.Calls["ListPosts"])
}

func TestBlogCachedWritesInvalidate(t *testing.T) {
	ctx := context.Background()
	base := NewBlogMock()
	svc := NewBlogCached(base, newMapCache(), time.Minute)

	read := func() {
		_, err := svc.SearchPosts(ctx, port.SearchPostsRequest{Keyword: "go"})
		require.NoError(t, err)
		_, err = svc.FilterPosts(ctx, port.FilterPostsRequest{Tag: "t1"})
		require.NoError(t, err)
	}

	read()
	read()
	assert.Equal(t, 1, base.Calls["SearchPosts"])
	assert.Equal(t, 1, base.Calls["FilterPosts"])

	_, err := svc.CreatePost(ctx, port.CreatePostRequest{})
	require.NoError(t, err)
	read()
	assert.Equal(t, 2, base.Calls["SearchPosts"])
	assert.Equal(t, 2, base.Calls["FilterPosts"])

	_, err = svc.AssignTags(ctx, port.AssignTagsRequest{PostID: "p"})
	require.NoError(t, err)
	read()
	assert.Equal(t, 3, base.Calls["SearchPosts"])

	// tags are not part of any cached read
	_, err = svc.CreateTag(ctx, port.CreateTagRequest{Name: "x"})
	require.NoError(t, err)
	read()
	assert.Equal(t, 3, base.Calls["SearchPosts"])
	assert.Equal(t, 1, base.Calls["CreateTag"])
}

func TestBlogCachedFailedWriteKeepsEntries(t *testing.T) {
	ctx := context.Background()
	base := NewBlogMock()
	base.CreatePostFunc = func(ctx context.Context, req port.CreatePostRequest) (domain.Post, error) {
		return domain.Post{}, errors.InvalidInput("title is required")
	}
	svc := NewBlogCached(base, newMapCache(), time.Minute)

	_, err := svc.SearchPosts(ctx, port.SearchPostsRequest{})
	require.NoError(t, err)
	_, err = svc.CreatePost(ctx, port.CreatePostRequest{})
	require.Error(t, err)
	_, err = svc.SearchPosts(ctx, port.SearchPostsRequest{})
	require.NoError(t, err)

	assert.Equal(t, 1, base.Calls["SearchPosts"])
}

func TestBlogCachedFallsBackWhenCacheFails(t *testing.T) {
	ctx := context.Background()
	base := NewBlogMock()
	cache := newMapCache()
	cache.getErr = stderrors.New("redis down")
	svc := NewBlogCached(base, cache, time.Minute)

	for i := 0; i < 2; i++ {
		_, err := svc.SearchPosts(ctx, port.SearchPostsRequest{Keyword: "x"})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, base.Calls["SearchPosts"])
}

func TestBlogCachedValidatesBeforeCaching(t *testing.T) {
	base := NewBlogMock()
	svc := NewBlogCached(base, newMapCache(), time.Minute)

	_, err := svc.ListPosts(context.Background(), port.ListPostsRequest{SortField: "bogus"})
	require.Error(t, err)
	assert.Equal(t, errors.KindInvalidInput, errors.KindOf(err))

	_, err = svc.FilterPosts(context.Background(), port.FilterPostsRequest{})
	require.Error(t, err)
	assert.Equal(t, errors.KindInvalidInput, errors.KindOf(err))

	assert.Zero(t, base.Calls["ListPosts"])
	assert.Zero(t, base.Calls["FilterPosts"])
}

func TestBlogCachedDoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	base := NewBlogMock()
	base.SearchPostsFunc = func(ctx context.Context, req port.SearchPostsRequest) ([]domain.Post, error) {
		return nil, errors.Upstream("search posts", stderrors.New("timeout"))
	}
	svc := NewBlogCached(base, newMapCache(), time.Minute)

	_, err := svc.SearchPosts(ctx, port.SearchPostsRequest{})
	require.Error(t, err)
	_, err = svc.SearchPosts(ctx, port.SearchPostsRequest{})
	require.Error(t, err)
	assert.Equal(t, 2, base.Calls["SearchPosts"])
}
