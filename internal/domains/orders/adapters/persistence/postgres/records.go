package postgres

import (
	"time"

	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-shop-api/internal/shared/address"
)

type orderRecord struct {
	ID         int64     `gorm:"primaryKey;column:id"`
	MemberID   int64     `gorm:"column:member_id"`
	DeliveryID int64     `gorm:"column:delivery_id"`
	OrderDate  time.Time `gorm:"column:order_date"`
	Status     string    `gorm:"column:status"`
}

func (orderRecord) TableName() string { return "orders" }

type deliveryRecord struct {
	ID      int64           `gorm:"primaryKey;column:id"`
	Address address.Address `gorm:"embedded"`
	Status  string          `gorm:"column:status"`
}

func (deliveryRecord) TableName() string { return "deliveries" }

type orderItemRecord struct {
	ID         int64 `gorm:"primaryKey;column:id"`
	OrderID    int64 `gorm:"column:order_id"`
	ItemID     int64 `gorm:"column:item_id"`
	OrderPrice int   `gorm:"column:order_price"`
	Count      int   `gorm:"column:count"`
}

func (orderItemRecord) TableName() string { return "order_items" }

// memberRecord and itemRecord are read-only views of tables owned by other contexts.
type memberRecord struct {
	ID      int64           `gorm:"primaryKey;column:id"`
	Name    string          `gorm:"column:name"`
	Address address.Address `gorm:"embedded"`
}

func (memberRecord) TableName() string { return "members" }

type itemRecord struct {
	ID            int64  `gorm:"primaryKey;column:id"`
	Name          string `gorm:"column:name"`
	Price         int    `gorm:"column:price"`
	StockQuantity int    `gorm:"column:stock_quantity"`
}

func (itemRecord) TableName() string { return "items" }

func toDeliveryRecord(delivery *domain.Delivery) deliveryRecord {
	return deliveryRecord{
		ID:      delivery.ID,
		Address: delivery.Address,
		Status:  string(delivery.Status),
	}
}

func (r deliveryRecord) toDomain() *domain.Delivery {
	return &domain.Delivery{
		ID:      r.ID,
		Address: r.Address,
		Status:  domain.DeliveryStatus(r.Status),
	}
}

func toOrderItemRecords(orderID int64, items []*domain.OrderItem) []orderItemRecord {
	records := make([]orderItemRecord, 0, len(items))
	for _, item := range items {
		records = append(records, orderItemRecord{
			OrderID:    orderID,
			ItemID:     item.ItemID,
			OrderPrice: item.OrderPrice,
			Count:      item.Count,
		})
	}
	return records
}

func (r orderItemRecord) toDomain() *domain.OrderItem {
	return &domain.OrderItem{
		ID:         r.ID,
		OrderID:    r.OrderID,
		ItemID:     r.ItemID,
		OrderPrice: r.OrderPrice,
		Count:      r.Count,
	}
}

func (r orderRecord) toDomain(delivery *domain.Delivery, items []*domain.OrderItem) *domain.Order {
	return &domain.Order{
		ID:        r.ID,
		MemberID:  r.MemberID,
		Delivery:  delivery,
		Items:     items,
		OrderDate: r.OrderDate,
		Status:    domain.Status(r.Status),
	}
}
