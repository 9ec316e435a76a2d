package service

import (
	"context"
	"fmt"

	"github.com/strogmv/postapi/internal/domain"
	"github.com/strogmv/postapi/internal/port"
)

type SeedResult struct {
	DeletedPosts int64
	DeletedTags  int64
	Tags         []domain.Tag
	Posts        []domain.Post
}

var (
	seedTagNames = []string{"Tag 1", "Tag 2", "Tag 3"}
	seedPosts    = []domain.Post{
		{Title: "Post 1", Desc: "Description for Post 1", Image: "image1.jpg"},
		{Title: "Post 2", Desc: "Description for Post 2", Image: "image2.jpg"},
	}
)

// Seed wipes both collections and loads the sample tags and posts. Every
// sample post references every sample tag.
func Seed(ctx context.Context, posts port.PostRepository, tags port.TagRepository) (SeedResult, error) {
	var res SeedResult
	var err error

	if res.DeletedPosts, err = posts.DeleteAll(ctx); err != nil {
		return res, fmt.Errorf("delete posts: %w", err)
	}
	if res.DeletedTags, err = tags.DeleteAll(ctx); err != nil {
		return res, fmt.Errorf("delete tags: %w", err)
	}

	tagIDs := make([]string, 0, len(seedTagNames))
	for _, name := range seedTagNames {
		tag := domain.Tag{Name: name}
		if err := tags.Create(ctx, &tag); err != nil {
			return res, fmt.Errorf("create tag %q: %w", name, err)
		}
		res.Tags = append(res.Tags, tag)
		tagIDs = append(tagIDs, tag.ID)
	}

	for _, sample := range seedPosts {
		post := sample
		post.Tags = append([]string{}, tagIDs...)
		if err := posts.Create(ctx, &post); err != nil {
			return res, fmt.Errorf("create post %q: %w", post.Title, err)
		}
		res.Posts = append(res.Posts, post)
	}
	return res, nil
}
