package ports

import (
	"context"

	"github.com/Apurer/go-gin-shop-api/internal/domains/catalog/domain"
)

// Service exposes catalog use cases to adapters.
type Service interface {
	SaveItem(ctx context.Context, item *domain.Item) (*domain.Item, error)
	FindItems(ctx context.Context) ([]*domain.Item, error)
	FindOne(ctx context.Context, id int64) (*domain.Item, error)
}
