package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	orderapp "github.com/Apurer/go-gin-shop-api/internal/domains/orders/application"
	ordertypes "github.com/Apurer/go-gin-shop-api/internal/domains/orders/application/types"
	orderports "github.com/Apurer/go-gin-shop-api/internal/domains/orders/ports"
)

const (
	// PlaceOrderActivityName takes stock and stores a new order.
	PlaceOrderActivityName = "orders.activities.PlaceOrder"
)

// Application error types carried back to workflow callers. Errors of these
// types are never retried.
const (
	ErrorTypeInvalidInput      = "OrderInvalidInput"
	ErrorTypeReferenceNotFound = "OrderReferenceNotFound"
	ErrorTypeConflict          = "OrderConflict"
)

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	service orderports.Service
}

func NewActivities(service orderports.Service) *Activities {
	return &Activities{service: service}
}

// PlaceOrder runs the placement use case and returns the new order id.
func (a *Activities) PlaceOrder(ctx context.Context, input ordertypes.PlaceOrderInput) (int64, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("place order activity not initialized", "memberId", input.MemberID)
		return 0, errors.New("place order activity not initialized")
	}
	logger.Info("PlaceOrder activity started", "memberId", input.MemberID, "lines", len(input.Lines))
	id, err := a.service.PlaceOrder(ctx, input)
	if err != nil {
		logger.Error("PlaceOrder activity failed", "memberId", input.MemberID, "error", err)
		return 0, classify(err)
	}
	logger.Info("PlaceOrder activity completed", "orderId", id)
	return id, nil
}

// classify marks business failures as non-retryable; store errors keep the retry policy.
func classify(err error) error {
	switch {
	case errors.Is(err, orderapp.ErrInvalidInput):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrorTypeInvalidInput, err)
	case errors.Is(err, orderapp.ErrReferenceNotFound):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrorTypeReferenceNotFound, err)
	case errors.Is(err, orderapp.ErrConflict):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrorTypeConflict, err)
	default:
		return err
	}
}
