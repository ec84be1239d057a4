package orders

import (
	"go.temporal.io/sdk/workflow"

	ordertypes "github.com/Apurer/go-gin-shop-api/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-shop-api/internal/platform/temporal/sequences"
)

const (
	// OrderPlacementWorkflowName is the public identifier for registering the workflow.
	OrderPlacementWorkflowName = "orders.workflows.Placement"
	// OrderPlacementTaskQueue is the queue consumed by the worker processing order workflows.
	OrderPlacementTaskQueue = "PLACE_ORDER"
)

// OrderPlacementWorkflowInput captures the order command plus the caller's trace id.
type OrderPlacementWorkflowInput struct {
	Command ordertypes.PlaceOrderInput
	TraceID string
}

// OrderPlacementWorkflow places an order and returns its id.
func OrderPlacementWorkflow(ctx workflow.Context, input OrderPlacementWorkflowInput) (int64, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("OrderPlacementWorkflow started", withTraceID(input.TraceID, "memberId", input.Command.MemberID)...)
	orderID, err := sequences.RunOrderPlacementSequence(ctx, input.Command)
	if err != nil {
		logger.Error("OrderPlacementWorkflow failed", withTraceID(input.TraceID, "memberId", input.Command.MemberID, "error", err)...)
		return 0, err
	}
	logger.Info("OrderPlacementWorkflow completed", withTraceID(input.TraceID, "orderId", orderID)...)
	return orderID, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
