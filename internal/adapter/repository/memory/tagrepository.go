package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/strogmv/postapi/internal/domain"
)

type TagRepository struct {
	mu   sync.RWMutex
	data map[string]*domain.Tag
}

func NewTagRepository() *TagRepository {
	return &TagRepository{
		data: make(map[string]*domain.Tag),
	}
}

func (r *TagRepository) Create(ctx context.Context, entity *domain.Tag) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entity == nil {
		return fmt.Errorf("entity is required")
	}
	entity.ID = newID()
	cp := *entity
	r.data[entity.ID] = &cp
	return nil
}

func (r *TagRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Tag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := []domain.Tag{}
	for _, id := range ids {
		if item, ok := r.data[id]; ok {
			res = append(res, *item)
		}
	}
	return res, nil
}

func (r *TagRepository) DeleteAll(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := int64(len(r.data))
	r.data = make(map[string]*domain.Tag)
	return n, nil
}
