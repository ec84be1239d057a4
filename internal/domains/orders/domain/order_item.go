package domain

import (
	"fmt"

	catalogdomain "github.com/Apurer/go-gin-shop-api/internal/domains/catalog/domain"
)

// OrderItem is one line of an order. Price and count never change after creation.
type OrderItem struct {
	ID         int64
	OrderID    int64
	ItemID     int64
	OrderPrice int
	Count      int
}

// NewOrderItem takes count units out of the item's stock and records the
// unit price paid.
func NewOrderItem(item *catalogdomain.Item, orderPrice, count int) (*OrderItem, error) {
	if item == nil || item.ID <= 0 {
		return nil, ErrInvalidItem
	}
	if count <= 0 {
		return nil, ErrInvalidCount
	}
	if orderPrice < 0 {
		return nil, ErrInvalidPrice
	}
	if err := item.RemoveStock(count); err != nil {
		return nil, err
	}
	return &OrderItem{ItemID: item.ID, OrderPrice: orderPrice, Count: count}, nil
}

// Restock returns this line's units to the item's stock.
func (oi *OrderItem) Restock(item *catalogdomain.Item) error {
	if item == nil || item.ID != oi.ItemID {
		return fmt.Errorf("%w: order item %d belongs to item %d", ErrInvalidItem, oi.ID, oi.ItemID)
	}
	return item.AddStock(oi.Count)
}

// TotalPrice is the unit price times the count.
func (oi *OrderItem) TotalPrice() int {
	return oi.OrderPrice * oi.Count
}
