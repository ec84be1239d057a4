package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order persistence adapter.
type Repository struct {
	mu             sync.RWMutex
	orders         map[int64]*domain.Order
	nextOrderID    int64
	nextDeliveryID int64
	nextItemID     int64
}

func NewRepository() *Repository {
	return &Repository{orders: map[int64]*domain.Order{}}
}

func (r *Repository) Save(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	clone := order.Clone()
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == 0 {
		if err := clone.Validate(); err != nil {
			return nil, err
		}
		r.nextOrderID++
		clone.ID = r.nextOrderID
		r.nextDeliveryID++
		clone.Delivery.ID = r.nextDeliveryID
		for _, item := range clone.Items {
			r.nextItemID++
			item.ID = r.nextItemID
			item.OrderID = clone.ID
		}
		r.orders[clone.ID] = clone
		return clone.Clone(), nil
	}
	stored, ok := r.orders[clone.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	stored.Status = clone.Status
	if clone.Delivery != nil {
		stored.Delivery.Status = clone.Delivery.Status
	}
	return stored.Clone(), nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return order.Clone(), nil
}

// snapshot returns clones of every order ordered by id.
func (r *Repository) snapshot() []*domain.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		list = append(list, order.Clone())
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}
