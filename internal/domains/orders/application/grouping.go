package application

import (
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-shop-api/internal/shared/address"
)

// flatHeader is comparable; the date is kept as nanoseconds so equal
// instants in different locations group together.
type flatHeader struct {
	orderID   int64
	name      string
	orderDate int64
	status    domain.Status
	address   address.Address
}

// GroupFlats folds flat rows into order DTOs keyed by the full header.
// Groups keep the order in which their first row appeared; items keep row order.
func GroupFlats(rows []types.OrderFlatDto) []types.OrderQueryDto {
	index := make(map[flatHeader]int, len(rows))
	result := make([]types.OrderQueryDto, 0)
	for _, row := range rows {
		key := flatHeader{
			orderID:   row.OrderID,
			name:      row.Name,
			orderDate: row.OrderDate.UnixNano(),
			status:    row.OrderStatus,
			address:   row.Address,
		}
		pos, ok := index[key]
		if !ok {
			pos = len(result)
			index[key] = pos
			result = append(result, types.OrderQueryDto{
				OrderID:     row.OrderID,
				Name:        row.Name,
				OrderDate:   row.OrderDate,
				OrderStatus: row.OrderStatus,
				Address:     row.Address,
				OrderItems:  []types.OrderItemQueryDto{},
			})
		}
		result[pos].OrderItems = append(result[pos].OrderItems, types.OrderItemQueryDto{
			OrderID:    row.OrderID,
			ItemName:   row.ItemName,
			OrderPrice: row.OrderPrice,
			Count:      row.Count,
		})
	}
	return result
}
