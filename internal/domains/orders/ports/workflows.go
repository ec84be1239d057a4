package ports

import (
	"context"

	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/application/types"
)

// WorkflowOrchestrator runs order placement, durably when a workflow engine is available.
type WorkflowOrchestrator interface {
	PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (int64, error)
}
