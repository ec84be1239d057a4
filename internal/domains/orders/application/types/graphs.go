package types

import (
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-shop-api/internal/shared/address"
)

// MemberView is the slice of a member loaded alongside an order.
type MemberView struct {
	ID      int64
	Name    string
	Address address.Address
}

// ItemView is the slice of a catalog item loaded alongside an order line.
type ItemView struct {
	ID            int64
	Name          string
	Price         int
	StockQuantity int
}

// OrderLine pairs an order item with its catalog item.
type OrderLine struct {
	OrderItem *domain.OrderItem
	Item      ItemView
}

// OrderGraph is an order with its member, delivery and (optionally) lines
// loaded explicitly. Order.Items is left empty; Lines carries the items.
type OrderGraph struct {
	Order  *domain.Order
	Member MemberView
	Lines  []OrderLine
}
