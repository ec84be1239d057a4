package migrations

import (
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/go-gin-shop-api/internal/shared/address"
)

// Run applies the schema for the bounded contexts. Adapters never migrate on their own.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&memberRecord{},
		&itemRecord{},
		&deliveryRecord{},
		&orderRecord{},
		&orderItemRecord{},
		&orderIdempotencyRecord{},
	)
}

// Member schema mirrors the members Postgres adapter. The name index is not
// unique: duplicate names are rejected by the member service.
type memberRecord struct {
	ID      int64           `gorm:"primaryKey;column:id"`
	Name    string          `gorm:"column:name;not null;index"`
	Address address.Address `gorm:"embedded"`
}

func (memberRecord) TableName() string { return "members" }

// Item schema mirrors the catalog Postgres adapter (single table for all kinds).
type itemRecord struct {
	ID            int64  `gorm:"primaryKey;column:id"`
	Kind          string `gorm:"column:kind;type:varchar(16);not null;index"`
	Name          string `gorm:"column:name;not null"`
	Price         int    `gorm:"column:price"`
	StockQuantity int    `gorm:"column:stock_quantity"`
	Author        string `gorm:"column:author"`
	ISBN          string `gorm:"column:isbn"`
	Artist        string `gorm:"column:artist"`
	Etc           string `gorm:"column:etc"`
	Director      string `gorm:"column:director"`
	Actor         string `gorm:"column:actor"`
}

func (itemRecord) TableName() string { return "items" }

// Delivery, order and order item schemas mirror the orders Postgres adapter.
type deliveryRecord struct {
	ID      int64           `gorm:"primaryKey;column:id"`
	Address address.Address `gorm:"embedded"`
	Status  string          `gorm:"column:status;type:varchar(16);not null"`
}

func (deliveryRecord) TableName() string { return "deliveries" }

type orderRecord struct {
	ID         int64     `gorm:"primaryKey;column:id"`
	MemberID   int64     `gorm:"column:member_id;not null;index"`
	DeliveryID int64     `gorm:"column:delivery_id;not null;uniqueIndex"`
	OrderDate  time.Time `gorm:"column:order_date;not null"`
	Status     string    `gorm:"column:status;type:varchar(16);not null;index"`
}

func (orderRecord) TableName() string { return "orders" }

type orderItemRecord struct {
	ID         int64 `gorm:"primaryKey;column:id"`
	OrderID    int64 `gorm:"column:order_id;not null;index"`
	ItemID     int64 `gorm:"column:item_id;not null;index"`
	OrderPrice int   `gorm:"column:order_price;not null"`
	Count      int   `gorm:"column:count;not null"`
}

func (orderItemRecord) TableName() string { return "order_items" }

type orderIdempotencyRecord struct {
	Key         string    `gorm:"primaryKey;column:key;size:255"`
	RequestHash string    `gorm:"column:request_hash;size:128;not null"`
	OrderID     int64     `gorm:"column:order_id;not null"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (orderIdempotencyRecord) TableName() string { return "order_idempotency_keys" }
