package types

import (
	"time"

	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-shop-api/internal/shared/address"
)

// OrderQueryDto is an order header projected straight from the store plus its item summaries.
type OrderQueryDto struct {
	OrderID     int64
	Name        string
	OrderDate   time.Time
	OrderStatus domain.Status
	Address     address.Address
	OrderItems  []OrderItemQueryDto
}

// OrderItemQueryDto summarizes one order line.
type OrderItemQueryDto struct {
	OrderID    int64
	ItemName   string
	OrderPrice int
	Count      int
}

// OrderFlatDto is one row of the fully joined projection: header columns repeated per item.
type OrderFlatDto struct {
	OrderID     int64
	Name        string
	OrderDate   time.Time
	OrderStatus domain.Status
	Address     address.Address
	ItemName    string
	OrderPrice  int
	Count       int
}

// SimpleOrderQueryDto is an order header without items.
type SimpleOrderQueryDto struct {
	OrderID     int64
	Name        string
	OrderDate   time.Time
	OrderStatus domain.Status
	Address     address.Address
}
