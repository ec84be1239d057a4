package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	catalogdomain "github.com/Apurer/go-gin-shop-api/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-gin-shop-api/internal/domains/catalog/ports"
	memberports "github.com/Apurer/go-gin-shop-api/internal/domains/members/ports"
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-shop-api/internal/shared/unitofwork"
)

// Service orchestrates order placement and cancellation.
type Service struct {
	orders  ports.Repository
	members memberports.Repository
	items   catalogports.Repository
	uow     unitofwork.Manager
	now     func() time.Time

	idempotency ports.IdempotencyStore
}

type Option func(*Service)

// WithUnitOfWork runs every use case inside the given transaction manager.
func WithUnitOfWork(m unitofwork.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.uow = m
		}
	}
}

// WithClock overrides the order date source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIdempotencyStore replays placements that carry an already used
// idempotency key instead of placing a second order.
func WithIdempotencyStore(store ports.IdempotencyStore) Option {
	return func(s *Service) {
		s.idempotency = store
	}
}

func NewService(orders ports.Repository, members memberports.Repository, items catalogports.Repository, opts ...Option) *Service {
	s := &Service{
		orders:  orders,
		members: members,
		items:   items,
		uow:     unitofwork.Noop{},
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// PlaceOrder takes stock for every line and stores the order with a READY
// delivery to the member's address. A known idempotency key returns the order
// placed the first time.
func (s *Service) PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (int64, error) {
	if len(input.Lines) == 0 {
		return 0, mapError(domain.ErrNoItems)
	}
	var fingerprint string
	if input.IdempotencyKey != "" && s.idempotency != nil {
		var err error
		if fingerprint, err = FingerprintPlaceOrder(input); err != nil {
			return 0, fmt.Errorf("fingerprint order placement: %w", err)
		}
	}
	var id int64
	err := s.uow.Do(ctx, unitofwork.Options{}, func(ctx context.Context) error {
		if fingerprint != "" {
			record, err := s.idempotency.Get(ctx, input.IdempotencyKey)
			if err != nil {
				return err
			}
			if record != nil {
				if record.RequestHash != fingerprint {
					return fmt.Errorf("%w: %w", ErrConflict, ports.ErrIdempotencyConflict)
				}
				id = record.OrderID
				return nil
			}
		}
		member, err := s.members.GetByID(ctx, input.MemberID)
		if err != nil {
			return referenceError("member", input.MemberID, err, memberports.ErrNotFound)
		}
		stock := newStockLedger(s.items)
		lines := make([]*domain.OrderItem, 0, len(input.Lines))
		for _, requested := range input.Lines {
			item, err := stock.get(ctx, requested.ItemID)
			if err != nil {
				return referenceError("item", requested.ItemID, err, catalogports.ErrNotFound)
			}
			line, err := domain.NewOrderItem(item, item.Price, requested.Count)
			if err != nil {
				return mapError(err)
			}
			lines = append(lines, line)
		}
		order, err := domain.NewOrder(member.ID, domain.NewDelivery(member.Address), s.now(), lines...)
		if err != nil {
			return mapError(err)
		}
		// Stock is written only once every line is accepted.
		if err := stock.flush(ctx); err != nil {
			return err
		}
		saved, err := s.orders.Save(ctx, order)
		if err != nil {
			return err
		}
		id = saved.ID
		if fingerprint == "" {
			return nil
		}
		_, err = s.idempotency.Save(ctx, ports.IdempotencyRecord{
			Key:         input.IdempotencyKey,
			RequestHash: fingerprint,
			OrderID:     saved.ID,
		})
		if errors.Is(err, ports.ErrIdempotencyConflict) {
			return fmt.Errorf("%w: %w", ErrConflict, err)
		}
		return err
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// CancelOrder cancels the order and returns every line's units to stock.
func (s *Service) CancelOrder(ctx context.Context, id int64) (*domain.Order, error) {
	var cancelled *domain.Order
	err := s.uow.Do(ctx, unitofwork.Options{}, func(ctx context.Context) error {
		order, err := s.orders.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := order.Cancel(); err != nil {
			return mapError(err)
		}
		stock := newStockLedger(s.items)
		for _, line := range order.Items {
			item, err := stock.get(ctx, line.ItemID)
			if err != nil {
				return err
			}
			if err := line.Restock(item); err != nil {
				return mapError(err)
			}
		}
		if err := stock.flush(ctx); err != nil {
			return err
		}
		cancelled, err = s.orders.Save(ctx, order)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

func (s *Service) FindOne(ctx context.Context, id int64) (*domain.Order, error) {
	var order *domain.Order
	err := s.uow.Do(ctx, unitofwork.Options{ReadOnly: true}, func(ctx context.Context) error {
		var err error
		order, err = s.orders.GetByID(ctx, id)
		return err
	})
	return order, err
}

// stockLedger loads each catalog item once per use case so repeated lines
// for the same item see each other's stock changes.
type stockLedger struct {
	repo  catalogports.Repository
	items map[int64]*catalogdomain.Item
	order []int64
}

func newStockLedger(repo catalogports.Repository) *stockLedger {
	return &stockLedger{repo: repo, items: map[int64]*catalogdomain.Item{}}
}

func (l *stockLedger) get(ctx context.Context, id int64) (*catalogdomain.Item, error) {
	if item, ok := l.items[id]; ok {
		return item, nil
	}
	item, err := l.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	l.items[id] = item
	l.order = append(l.order, id)
	return item, nil
}

func (l *stockLedger) flush(ctx context.Context) error {
	for _, id := range l.order {
		if _, err := l.repo.Save(ctx, l.items[id]); err != nil {
			return err
		}
	}
	return nil
}

func referenceError(kind string, id int64, err, notFound error) error {
	if errors.Is(err, notFound) {
		return fmt.Errorf("%w: %s %d", ErrReferenceNotFound, kind, id)
	}
	return err
}

var _ ports.Service = (*Service)(nil)
