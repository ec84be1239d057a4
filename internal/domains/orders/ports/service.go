package ports

import (
	"context"

	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/domain"
)

// Service exposes order commands to adapters.
type Service interface {
	PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (int64, error)
	CancelOrder(ctx context.Context, id int64) (*domain.Order, error)
	FindOne(ctx context.Context, id int64) (*domain.Order, error)
}

// QueryService exposes one read use case per listing endpoint.
type QueryService interface {
	OrdersNaive(ctx context.Context, search types.OrderSearch) ([]types.OrderGraph, error)
	OrdersFetchJoin(ctx context.Context, search types.OrderSearch) ([]types.OrderGraph, error)
	OrdersPaged(ctx context.Context, search types.OrderSearch, page types.Page) ([]types.OrderGraph, error)
	OrderDtos(ctx context.Context, search types.OrderSearch) ([]types.OrderQueryDto, error)
	OrderDtosBatched(ctx context.Context, search types.OrderSearch) ([]types.OrderQueryDto, error)
	OrderDtosFlat(ctx context.Context, search types.OrderSearch) ([]types.OrderQueryDto, error)
	SimpleOrdersNaive(ctx context.Context, search types.OrderSearch) ([]types.OrderGraph, error)
	SimpleOrdersFetchJoin(ctx context.Context, search types.OrderSearch) ([]types.OrderGraph, error)
	SimpleOrderDtos(ctx context.Context, search types.OrderSearch) ([]types.SimpleOrderQueryDto, error)
}
