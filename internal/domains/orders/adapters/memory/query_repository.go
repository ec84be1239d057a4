package memory

import (
	"context"
	"fmt"
	"sort"

	catalogports "github.com/Apurer/go-gin-shop-api/internal/domains/catalog/ports"
	memberports "github.com/Apurer/go-gin-shop-api/internal/domains/members/ports"
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/ports"
)

var _ ports.QueryRepository = (*QueryRepository)(nil)

// QueryRepository answers every listing strategy from the in-memory stores.
// There are no round trips to save, so all strategies share one assembly path.
type QueryRepository struct {
	orders  *Repository
	members memberports.Repository
	items   catalogports.Repository
}

func NewQueryRepository(orders *Repository, members memberports.Repository, items catalogports.Repository) *QueryRepository {
	return &QueryRepository{orders: orders, members: members, items: items}
}

func (q *QueryRepository) FindGraphsNaive(ctx context.Context, search types.OrderSearch, fetch types.Fetch) ([]types.OrderGraph, error) {
	return q.graphs(ctx, search, types.Page{Limit: types.NaiveResultLimit}, fetch)
}

func (q *QueryRepository) FindGraphsWithItems(ctx context.Context, search types.OrderSearch) ([]types.OrderGraph, error) {
	return q.graphs(ctx, search, types.Page{}, types.Fetch{Items: true})
}

func (q *QueryRepository) FindGraphsWithMemberDelivery(ctx context.Context, search types.OrderSearch, page types.Page, fetch types.Fetch) ([]types.OrderGraph, error) {
	return q.graphs(ctx, search, page, fetch)
}

func (q *QueryRepository) FindOrderQueryDtos(ctx context.Context, search types.OrderSearch) ([]types.OrderQueryDto, error) {
	graphs, err := q.graphs(ctx, search, types.Page{}, types.Fetch{Items: true})
	if err != nil {
		return nil, err
	}
	result := make([]types.OrderQueryDto, 0, len(graphs))
	for _, graph := range graphs {
		dto := types.OrderQueryDto{
			OrderID:     graph.Order.ID,
			Name:        graph.Member.Name,
			OrderDate:   graph.Order.OrderDate,
			OrderStatus: graph.Order.Status,
			Address:     graph.Order.Delivery.Address,
			OrderItems:  make([]types.OrderItemQueryDto, 0, len(graph.Lines)),
		}
		for _, line := range graph.Lines {
			dto.OrderItems = append(dto.OrderItems, types.OrderItemQueryDto{
				OrderID:    graph.Order.ID,
				ItemName:   line.Item.Name,
				OrderPrice: line.OrderItem.OrderPrice,
				Count:      line.OrderItem.Count,
			})
		}
		result = append(result, dto)
	}
	return result, nil
}

func (q *QueryRepository) FindOrderQueryDtosBatched(ctx context.Context, search types.OrderSearch) ([]types.OrderQueryDto, error) {
	return q.FindOrderQueryDtos(ctx, search)
}

func (q *QueryRepository) FindOrderFlats(ctx context.Context, search types.OrderSearch) ([]types.OrderFlatDto, error) {
	dtos, err := q.FindOrderQueryDtos(ctx, search)
	if err != nil {
		return nil, err
	}
	var rows []types.OrderFlatDto
	for _, dto := range dtos {
		for _, item := range dto.OrderItems {
			rows = append(rows, types.OrderFlatDto{
				OrderID:     dto.OrderID,
				Name:        dto.Name,
				OrderDate:   dto.OrderDate,
				OrderStatus: dto.OrderStatus,
				Address:     dto.Address,
				ItemName:    item.ItemName,
				OrderPrice:  item.OrderPrice,
				Count:       item.Count,
			})
		}
	}
	return rows, nil
}

func (q *QueryRepository) FindSimpleOrderDtos(ctx context.Context, search types.OrderSearch) ([]types.SimpleOrderQueryDto, error) {
	graphs, err := q.graphs(ctx, search, types.Page{}, types.Fetch{})
	if err != nil {
		return nil, err
	}
	result := make([]types.SimpleOrderQueryDto, 0, len(graphs))
	for _, graph := range graphs {
		result = append(result, types.SimpleOrderQueryDto{
			OrderID:     graph.Order.ID,
			Name:        graph.Member.Name,
			OrderDate:   graph.Order.OrderDate,
			OrderStatus: graph.Order.Status,
			Address:     graph.Order.Delivery.Address,
		})
	}
	return result, nil
}

func (q *QueryRepository) graphs(ctx context.Context, search types.OrderSearch, page types.Page, fetch types.Fetch) ([]types.OrderGraph, error) {
	var matched []types.OrderGraph
	for _, order := range q.orders.snapshot() {
		member, err := q.members.GetByID(ctx, order.MemberID)
		if err != nil {
			return nil, fmt.Errorf("load member %d of order %d: %w", order.MemberID, order.ID, err)
		}
		if !search.Matches(member.Name, order.Status) {
			continue
		}
		matched = append(matched, types.OrderGraph{
			Order: order,
			Member: types.MemberView{
				ID:      member.ID,
				Name:    member.Name,
				Address: member.Address,
			},
		})
	}
	matched = window(matched, page)
	for i := range matched {
		order := matched[i].Order
		if fetch.Items {
			lines, err := q.lines(ctx, order.Items)
			if err != nil {
				return nil, err
			}
			matched[i].Lines = lines
		}
		order.Items = nil
	}
	return matched, nil
}

func (q *QueryRepository) lines(ctx context.Context, orderItems []*domain.OrderItem) ([]types.OrderLine, error) {
	sorted := append([]*domain.OrderItem(nil), orderItems...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	lines := make([]types.OrderLine, 0, len(sorted))
	for _, orderItem := range sorted {
		item, err := q.items.GetByID(ctx, orderItem.ItemID)
		if err != nil {
			return nil, fmt.Errorf("load item %d of order item %d: %w", orderItem.ItemID, orderItem.ID, err)
		}
		lines = append(lines, types.OrderLine{
			OrderItem: orderItem,
			Item: types.ItemView{
				ID:            item.ID,
				Name:          item.Name,
				Price:         item.Price,
				StockQuantity: item.StockQuantity,
			},
		})
	}
	return lines, nil
}

func window(graphs []types.OrderGraph, page types.Page) []types.OrderGraph {
	if page.Offset >= len(graphs) {
		return nil
	}
	graphs = graphs[page.Offset:]
	if page.Limit > 0 && page.Limit < len(graphs) {
		graphs = graphs[:page.Limit]
	}
	return graphs
}
