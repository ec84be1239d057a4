package application

import (
	"context"
	"fmt"

	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-shop-api/internal/shared/unitofwork"
)

// DefaultPageLimit applies when a paged listing omits the limit.
const DefaultPageLimit = 100

// QueryService runs each listing strategy inside a read-only unit of work.
type QueryService struct {
	repo         ports.QueryRepository
	uow          unitofwork.Manager
	defaultLimit int
}

type QueryOption func(*QueryService)

// WithQueryUnitOfWork runs every query inside the given transaction manager.
func WithQueryUnitOfWork(m unitofwork.Manager) QueryOption {
	return func(s *QueryService) {
		if m != nil {
			s.uow = m
		}
	}
}

// WithDefaultPageLimit overrides DefaultPageLimit.
func WithDefaultPageLimit(limit int) QueryOption {
	return func(s *QueryService) {
		if limit > 0 {
			s.defaultLimit = limit
		}
	}
}

func NewQueryService(repo ports.QueryRepository, opts ...QueryOption) *QueryService {
	s := &QueryService{repo: repo, uow: unitofwork.Noop{}, defaultLimit: DefaultPageLimit}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// OrdersNaive backs /api/v1/orders and /api/v2/orders.
func (s *QueryService) OrdersNaive(ctx context.Context, search types.OrderSearch) ([]types.OrderGraph, error) {
	return read(ctx, s.uow, func(ctx context.Context) ([]types.OrderGraph, error) {
		return s.repo.FindGraphsNaive(ctx, search.Normalize(), types.Fetch{Items: true})
	})
}

// OrdersFetchJoin backs /api/v3/orders.
func (s *QueryService) OrdersFetchJoin(ctx context.Context, search types.OrderSearch) ([]types.OrderGraph, error) {
	return read(ctx, s.uow, func(ctx context.Context) ([]types.OrderGraph, error) {
		return s.repo.FindGraphsWithItems(ctx, search.Normalize())
	})
}

// OrdersPaged backs /api/v3.1/orders. A zero limit falls back to the default.
func (s *QueryService) OrdersPaged(ctx context.Context, search types.OrderSearch, page types.Page) ([]types.OrderGraph, error) {
	if page.Offset < 0 || page.Limit < 0 {
		return nil, fmt.Errorf("%w: offset and limit must not be negative", ErrInvalidInput)
	}
	if page.Limit == 0 {
		page.Limit = s.defaultLimit
	}
	return read(ctx, s.uow, func(ctx context.Context) ([]types.OrderGraph, error) {
		return s.repo.FindGraphsWithMemberDelivery(ctx, search.Normalize(), page, types.Fetch{Items: true})
	})
}

// OrderDtos backs /api/v4/orders.
func (s *QueryService) OrderDtos(ctx context.Context, search types.OrderSearch) ([]types.OrderQueryDto, error) {
	return read(ctx, s.uow, func(ctx context.Context) ([]types.OrderQueryDto, error) {
		return s.repo.FindOrderQueryDtos(ctx, search.Normalize())
	})
}

// OrderDtosBatched backs /api/v5/orders.
func (s *QueryService) OrderDtosBatched(ctx context.Context, search types.OrderSearch) ([]types.OrderQueryDto, error) {
	return read(ctx, s.uow, func(ctx context.Context) ([]types.OrderQueryDto, error) {
		return s.repo.FindOrderQueryDtosBatched(ctx, search.Normalize())
	})
}

// OrderDtosFlat backs /api/v6/orders.
func (s *QueryService) OrderDtosFlat(ctx context.Context, search types.OrderSearch) ([]types.OrderQueryDto, error) {
	return read(ctx, s.uow, func(ctx context.Context) ([]types.OrderQueryDto, error) {
		rows, err := s.repo.FindOrderFlats(ctx, search.Normalize())
		if err != nil {
			return nil, err
		}
		return GroupFlats(rows), nil
	})
}

// SimpleOrdersNaive backs /api/v1/simple-orders and /api/v2/simple-orders.
func (s *QueryService) SimpleOrdersNaive(ctx context.Context, search types.OrderSearch) ([]types.OrderGraph, error) {
	return read(ctx, s.uow, func(ctx context.Context) ([]types.OrderGraph, error) {
		return s.repo.FindGraphsNaive(ctx, search.Normalize(), types.Fetch{})
	})
}

// SimpleOrdersFetchJoin backs /api/v3/simple-orders.
func (s *QueryService) SimpleOrdersFetchJoin(ctx context.Context, search types.OrderSearch) ([]types.OrderGraph, error) {
	return read(ctx, s.uow, func(ctx context.Context) ([]types.OrderGraph, error) {
		return s.repo.FindGraphsWithMemberDelivery(ctx, search.Normalize(), types.Page{}, types.Fetch{})
	})
}

// SimpleOrderDtos backs /api/v4/simple-orders.
func (s *QueryService) SimpleOrderDtos(ctx context.Context, search types.OrderSearch) ([]types.SimpleOrderQueryDto, error) {
	return read(ctx, s.uow, func(ctx context.Context) ([]types.SimpleOrderQueryDto, error) {
		return s.repo.FindSimpleOrderDtos(ctx, search.Normalize())
	})
}

func read[T any](ctx context.Context, uow unitofwork.Manager, fn func(context.Context) ([]T, error)) ([]T, error) {
	var result []T
	err := uow.Do(ctx, unitofwork.Options{ReadOnly: true}, func(ctx context.Context) error {
		var err error
		result, err = fn(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

var _ ports.QueryService = (*QueryService)(nil)
