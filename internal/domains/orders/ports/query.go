package ports

import (
	"context"

	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/application/types"
)

// QueryRepository reads orders through explicit fetch strategies. Every method
// returns orders by ascending id and lines by ascending order item id.
type QueryRepository interface {
	// FindGraphsNaive loads matching orders (capped at types.NaiveResultLimit)
	// and then issues separate lookups per order for the member, the delivery,
	// and with fetch.Items the lines and each line's item.
	FindGraphsNaive(ctx context.Context, search types.OrderSearch, fetch types.Fetch) ([]types.OrderGraph, error)
	// FindGraphsWithItems loads orders, members, deliveries, items and catalog
	// items in one joined query and deduplicates the rows by order id. Not pageable.
	FindGraphsWithItems(ctx context.Context, search types.OrderSearch) ([]types.OrderGraph, error)
	// FindGraphsWithMemberDelivery pages over orders joined with member and
	// delivery, then with fetch.Items loads lines in batches of order ids.
	FindGraphsWithMemberDelivery(ctx context.Context, search types.OrderSearch, page types.Page, fetch types.Fetch) ([]types.OrderGraph, error)
	// FindOrderQueryDtos projects headers, then items with one query per order.
	FindOrderQueryDtos(ctx context.Context, search types.OrderSearch) ([]types.OrderQueryDto, error)
	// FindOrderQueryDtosBatched projects headers, then all items with one IN query.
	FindOrderQueryDtosBatched(ctx context.Context, search types.OrderSearch) ([]types.OrderQueryDto, error)
	// FindOrderFlats projects one row per order item.
	FindOrderFlats(ctx context.Context, search types.OrderSearch) ([]types.OrderFlatDto, error)
	// FindSimpleOrderDtos projects headers only.
	FindSimpleOrderDtos(ctx context.Context, search types.OrderSearch) ([]types.SimpleOrderQueryDto, error)
}
