package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Apurer/go-gin-shop-api/internal/domains/members/domain"
	"github.com/Apurer/go-gin-shop-api/internal/domains/members/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory member persistence adapter.
type Repository struct {
	mu      sync.RWMutex
	members map[int64]*domain.Member
	nextID  int64
}

func NewRepository() *Repository {
	return &Repository{members: map[int64]*domain.Member{}}
}

func (r *Repository) Save(_ context.Context, member *domain.Member) (*domain.Member, error) {
	if member == nil {
		return nil, errors.New("member is nil")
	}
	clone := *member
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if _, ok := r.members[clone.ID]; !ok {
		return nil, ports.ErrNotFound
	}
	r.members[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	member, ok := r.members[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *member
	return &clone, nil
}

func (r *Repository) FindByName(_ context.Context, name string) ([]*domain.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*domain.Member
	for _, member := range r.members {
		if member.Name == name {
			clone := *member
			list = append(list, &clone)
		}
	}
	sortByID(list)
	return list, nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Member, 0, len(r.members))
	for _, member := range r.members {
		clone := *member
		list = append(list, &clone)
	}
	sortByID(list)
	return list, nil
}

func sortByID(list []*domain.Member) {
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
}
