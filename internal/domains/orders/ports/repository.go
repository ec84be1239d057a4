package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/domain"
)

var ErrNotFound = errors.New("order not found")

// Repository persists the order aggregate. Save inserts the order, its delivery
// and its items when the ID is zero; for an existing order only the order and
// delivery statuses change.
type Repository interface {
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
}
