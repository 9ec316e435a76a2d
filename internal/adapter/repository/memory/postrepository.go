// Package memory provides an in-memory implementation of the repository.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/strogmv/postapi/internal/domain"
	"github.com/strogmv/postapi/internal/pkg/errors"
	"github.com/strogmv/postapi/internal/port"
)

type PostRepository struct {
	mu   sync.RWMutex
	data map[string]*domain.Post
}

func NewPostRepository() *PostRepository {
	return &PostRepository{
		data: make(map[string]*domain.Post),
	}
}

func (r *PostRepository) Create(ctx context.Context, entity *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entity == nil {
		return fmt.Errorf("entity is required")
	}
	entity.ID = newID()
	entity.Normalize()
	r.data[entity.ID] = clonePost(entity)
	return nil
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entity, ok := r.data[id]
	if !ok {
		return nil, errors.NotFound("post not found")
	}
	return clonePost(entity), nil
}

func (r *PostRepository) ReplaceTags(ctx context.Context, id string, tagIDs []string) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entity, ok := r.data[id]
	if !ok {
		return nil, errors.NotFound("post not found")
	}
	entity.Tags = append([]string{}, tagIDs...)
	return clonePost(entity), nil
}

func (r *PostRepository) List(ctx context.Context, q port.PostQuery) ([]domain.Post, error) {
	res := r.filter(func(p *domain.Post) bool {
		return q.Tag == "" || hasTag(p, q.Tag)
	})
	sortPosts(res, q.SortField, q.SortDesc)

	// Apply pagination
	if q.Skip >= len(res) {
		return []domain.Post{}, nil
	}
	end := len(res)
	if q.Limit > 0 && q.Limit < end-q.Skip {
		end = q.Skip + q.Limit
	}
	return res[q.Skip:end], nil
}

func (r *PostRepository) Search(ctx context.Context, keyword string) ([]domain.Post, error) {
	needle := strings.ToLower(keyword)
	res := r.filter(func(p *domain.Post) bool {
		return strings.Contains(strings.ToLower(p.Title), needle) ||
			strings.Contains(strings.ToLower(p.Desc), needle)
	})
	sortPosts(res, port.SortByID, false)
	return res, nil
}

func (r *PostRepository) ListByTag(ctx context.Context, tagID string) ([]domain.Post, error) {
	res := r.filter(func(p *domain.Post) bool {
		return hasTag(p, tagID)
	})
	sortPosts(res, port.SortByID, false)
	return res, nil
}

func (r *PostRepository) DeleteAll(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := int64(len(r.data))
	r.data = make(map[string]*domain.Post)
	return n, nil
}

func (r *PostRepository) filter(match func(p *domain.Post) bool) []domain.Post {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := []domain.Post{}
	for _, item := range r.data {
		if item == nil || !match(item) {
			continue
		}
		res = append(res, *clonePost(item))
	}
	return res
}

func hasTag(p *domain.Post, tagID string) bool {
	for _, t := range p.Tags {
		if t == tagID {
			return true
		}
	}
	return false
}

func sortPosts(res []domain.Post, field string, desc bool) {
	key := func(p domain.Post) string {
		switch field {
		case port.SortByTitle:
			return p.Title
		case port.SortByDesc:
			return p.Desc
		case port.SortByImage:
			return p.Image
		default:
			return p.ID
		}
	}
	sort.SliceStable(res, func(i, j int) bool {
		ki, kj := key(res[i]), key(res[j])
		if ki == kj {
			return res[i].ID < res[j].ID
		}
		if desc {
			return ki > kj
		}
		return ki < kj
	})
}

func clonePost(p *domain.Post) *domain.Post {
	cp := *p
	cp.Tags = append([]string{}, p.Tags...)
	return &cp
}

// newID mirrors the document store: ObjectID hex, increasing within a process.
func newID() string {
	return primitive.NewObjectID().Hex()
}
