package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/ports"
	platformpostgres "github.com/Apurer/go-gin-shop-api/internal/platform/postgres"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists the order aggregate across the orders, deliveries and
// order_items tables. Schema is owned by platform/migrations.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Save inserts a new aggregate, or writes the order and delivery statuses of an existing one.
func (r *Repository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	db := platformpostgres.Conn(ctx, r.db)
	if order.ID == 0 {
		var id int64
		err := db.Transaction(func(tx *gorm.DB) error {
			delivery := toDeliveryRecord(order.Delivery)
			delivery.ID = 0
			if err := tx.Create(&delivery).Error; err != nil {
				return err
			}
			record := orderRecord{
				MemberID:   order.MemberID,
				DeliveryID: delivery.ID,
				OrderDate:  order.OrderDate,
				Status:     string(order.Status),
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
			items := toOrderItemRecords(record.ID, order.Items)
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
			id = record.ID
			return nil
		})
		if err != nil {
			return nil, err
		}
		return r.GetByID(ctx, id)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var record orderRecord
		if err := tx.Select("id", "delivery_id").First(&record, "id = ?", order.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ports.ErrNotFound
			}
			return err
		}
		if err := tx.Model(&orderRecord{}).
			Where("id = ?", order.ID).
			Update("status", string(order.Status)).Error; err != nil {
			return err
		}
		return tx.Model(&deliveryRecord{}).
			Where("id = ?", record.DeliveryID).
			Update("status", string(order.Delivery.Status)).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, order.ID)
}

// GetByID loads the order with its delivery and items ordered by id.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	db := platformpostgres.Conn(ctx, r.db)
	var record orderRecord
	if err := db.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	var delivery deliveryRecord
	if err := db.First(&delivery, "id = ?", record.DeliveryID).Error; err != nil {
		return nil, err
	}
	var items []orderItemRecord
	if err := db.Where("order_id = ?", record.ID).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	lines := make([]*domain.OrderItem, 0, len(items))
	for i := range items {
		lines = append(lines, items[i].toDomain())
	}
	return record.toDomain(delivery.toDomain(), lines), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}
