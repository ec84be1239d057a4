package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	ordertypes "github.com/Apurer/go-gin-shop-api/internal/domains/orders/application/types"
	orderactivities "github.com/Apurer/go-gin-shop-api/internal/platform/temporal/activities/orders"
)

// RunOrderPlacementSequence executes the activities that place an order.
func RunOrderPlacementSequence(ctx workflow.Context, input ordertypes.PlaceOrderInput) (int64, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order placement sequence started", "memberId", input.MemberID)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    3,
		},
	}

	var orderID int64
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, options), orderactivities.PlaceOrderActivityName, input).Get(ctx, &orderID)
	if err != nil {
		logger.Error("order placement sequence failed", "memberId", input.MemberID, "error", err)
		return 0, err
	}
	logger.Info("order placement sequence completed", "orderId", orderID)
	return orderID, nil
}
