package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/strogmv/postapi/internal/domain"
	"github.com/strogmv/postapi/internal/pkg/logger"
	"github.com/strogmv/postapi/internal/port"
)

const (
	cachePrefix        = "postapi:posts"
	cacheGenerationKey = cachePrefix + ":gen"
)

// BlogCached serves post reads from the cache. Every post write bumps a
// generation counter that is part of each read key, so a write makes all
// earlier entries unreachable. Cache failures fall back to the base service.
type BlogCached struct {
	base  port.Blog
	cache port.Cache
	ttl   time.Duration
}

func NewBlogCached(base port.Blog, cache port.Cache, ttl time.Duration) *BlogCached {
	return &BlogCached{base: base, cache: cache, ttl: ttl}
}

func (c *BlogCached) CreatePost(ctx context.Context, req port.CreatePostRequest) (domain.Post, error) {
	post, err := c.base.CreatePost(ctx, req)
	if err == nil {
		c.invalidate(ctx)
	}
	return post, err
}

func (c *BlogCached) ListPosts(ctx context.Context, req port.ListPostsRequest) ([]domain.Post, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	params := url.Values{
		"tag":   {req.Tag},
		"sort":  {req.SortField},
		"desc":  {strconv.FormatBool(req.SortDesc)},
		"limit": {strconv.Itoa(req.Limit)},
		"skip":  {strconv.Itoa(req.Skip)},
	}
	return c.read(ctx, "list", params, func() ([]domain.Post, error) {
		return c.base.ListPosts(ctx, req)
	})
}

func (c *BlogCached) SearchPosts(ctx context.Context, req port.SearchPostsRequest) ([]domain.Post, error) {
	return c.read(ctx, "search", url.Values{"keyword": {req.Keyword}}, func() ([]domain.Post, error) {
		return c.base.SearchPosts(ctx, req)
	})
}

func (c *BlogCached) FilterPosts(ctx context.Context, req port.FilterPostsRequest) ([]domain.Post, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return c.read(ctx, "filter", url.Values{"tag": {req.Tag}}, func() ([]domain.Post, error) {
		return c.base.FilterPosts(ctx, req)
	})
}

func (c *BlogCached) CreateTag(ctx context.Context, req port.CreateTagRequest) (domain.Tag, error) {
	return c.base.CreateTag(ctx, req)
}

func (c *BlogCached) AssignTags(ctx context.Context, req port.AssignTagsRequest) (domain.Post, error) {
	post, err := c.base.AssignTags(ctx, req)
	if err == nil {
		c.invalidate(ctx)
	}
	return post, err
}

func (c *BlogCached) read(ctx context.Context, op string, params url.Values, load func() ([]domain.Post, error)) ([]domain.Post, error) {
	log := logger.From(ctx)

	gen, err := c.generation(ctx)
	if err != nil {
		log.Warn("cache unavailable", "error", err)
		return load()
	}
	key := fmt.Sprintf("%s:%d:%s:%s", cachePrefix, gen, op, params.Encode())

	raw, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		log.Warn("cache read failed", "key", key, "error", err)
		return load()
	}
	if ok {
		var posts []domain.Post
		if err := json.Unmarshal(raw, &posts); err == nil {
			return posts, nil
		}
		log.Warn("cache entry unreadable", "key", key)
	}

	posts, err := load()
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(posts); err == nil {
		if err := c.cache.Set(ctx, key, data, c.ttl); err != nil {
			log.Warn("cache write failed", "key", key, "error", err)
		}
	}
	return posts, nil
}

func (c *BlogCached) generation(ctx context.Context) (int64, error) {
	raw, ok, err := c.cache.Get(ctx, cacheGenerationKey)
	if err != nil || !ok {
		return 0, err
	}
	gen, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse cache generation %q: %w", raw, err)
	}
	return gen, nil
}

func (c *BlogCached) invalidate(ctx context.Context) {
	if _, err := c.cache.Incr(ctx, cacheGenerationKey); err != nil {
		logger.From(ctx).Warn("cache invalidation failed", "error", err)
	}
}

var _ port.Blog = (*BlogCached)(nil)
