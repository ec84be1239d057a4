package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Apurer/go-gin-shop-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-shop-api/internal/domains/catalog/ports"
	platformpostgres "github.com/Apurer/go-gin-shop-api/internal/platform/postgres"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists every item kind in a single "items" table.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type itemRecord struct {
	ID            int64  `gorm:"primaryKey;column:id"`
	Kind          string `gorm:"column:kind"`
	Name          string `gorm:"column:name"`
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

// Save inserts a new item or rewrites every column of an existing one.
func (r *Repository) Save(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if item == nil {
		return nil, errors.New("item is nil")
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(item)
	db := platformpostgres.Conn(ctx, r.db)
	if record.ID == 0 {
		if err := db.Create(&record).Error; err != nil {
			return nil, err
		}
		return record.toDomain(), nil
	}
	result := db.Model(&itemRecord{}).
		Where("id = ?", record.ID).
		Updates(map[string]any{
			"kind":           record.Kind,
			"name":           record.Name,
			"price":          record.Price,
			"stock_quantity": record.StockQuantity,
			"author":         record.Author,
			"isbn":           record.ISBN,
			"artist":         record.Artist,
			"etc":            record.Etc,
			"director":       record.Director,
			"actor":          record.Actor,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return record.toDomain(), nil
}

// GetByID fetches an item by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record itemRecord
	if err := platformpostgres.Conn(ctx, r.db).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// List returns all items ordered by id.
func (r *Repository) List(ctx context.Context) ([]*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []itemRecord
	if err := platformpostgres.Conn(ctx, r.db).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	items := make([]*domain.Item, 0, len(records))
	for i := range records {
		items = append(items, records[i].toDomain())
	}
	return items, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres item repository not configured")
	}
	return nil
}

func toRecord(item *domain.Item) itemRecord {
	return itemRecord{
		ID:            item.ID,
		Kind:          string(item.Kind),
		Name:          item.Name,
		Price:         item.Price,
		StockQuantity: item.StockQuantity,
		Author:        item.Attributes.Author,
		ISBN:          item.Attributes.ISBN,
		Artist:        item.Attributes.Artist,
		Etc:           item.Attributes.Etc,
		Director:      item.Attributes.Director,
		Actor:         item.Attributes.Actor,
	}
}

func (r itemRecord) toDomain() *domain.Item {
	return &domain.Item{
		ID:            r.ID,
		Kind:          domain.Kind(r.Kind),
		Name:          r.Name,
		Price:         r.Price,
		StockQuantity: r.StockQuantity,
		Attributes: domain.Attributes{
			Author:   r.Author,
			ISBN:     r.ISBN,
			Artist:   r.Artist,
			Etc:      r.Etc,
			Director: r.Director,
			Actor:    r.Actor,
		},
	}
}
