package workflows

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/converter"
	"go.temporal.io/sdk/temporal"

	orderapp "github.com/Apurer/go-gin-shop-api/internal/domains/orders/application"
	ordertypes "github.com/Apurer/go-gin-shop-api/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/ports"
	orderactivities "github.com/Apurer/go-gin-shop-api/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/Apurer/go-gin-shop-api/internal/platform/temporal/workflows/orders"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalOrderWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineOrderWorkflows)(nil)
)

// TemporalOrderWorkflows starts order workflows on a Temporal cluster.
type TemporalOrderWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalOrderWorkflows wires a Temporal client into the orchestrator.
func NewTemporalOrderWorkflows(c client.Client) *TemporalOrderWorkflows {
	return &TemporalOrderWorkflows{client: c, taskQueue: orderworkflows.OrderPlacementTaskQueue}
}

// requestHashMemo is the memo field holding the fingerprint of a keyed placement.
const requestHashMemo = "requestHash"

// PlaceOrder starts the placement workflow and waits for the order id. A
// repeated idempotency key returns the result of the first run when the
// request matches it and ErrConflict when it does not.
func (o *TemporalOrderWorkflows) PlaceOrder(ctx context.Context, input ordertypes.PlaceOrderInput) (int64, error) {
	if o == nil || o.client == nil {
		return 0, errors.New("temporal order workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	workflowID := buildOrderPlacementWorkflowID(input, traceComponent)
	options := client.StartWorkflowOptions{
		ID:                    workflowID,
		TaskQueue:             o.taskQueue,
		WorkflowIDReusePolicy: enumspb.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE,
	}
	var requestHash string
	if strings.TrimSpace(input.IdempotencyKey) != "" {
		hash, err := orderapp.FingerprintPlaceOrder(input)
		if err != nil {
			return 0, err
		}
		requestHash = hash
		options.Memo = map[string]interface{}{requestHashMemo: requestHash}
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		orderworkflows.OrderPlacementWorkflowName,
		orderworkflows.OrderPlacementWorkflowInput{Command: input, TraceID: traceComponent},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) && requestHash != "" {
			if err := o.ensureSameRequest(ctx, workflowID, alreadyStarted.RunId, requestHash); err != nil {
				return 0, err
			}
			var orderID int64
			if err := o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId).Get(ctx, &orderID); err != nil {
				return 0, translateWorkflowError(err)
			}
			return orderID, nil
		}
		return 0, err
	}
	var orderID int64
	if err := run.Get(ctx, &orderID); err != nil {
		return 0, translateWorkflowError(err)
	}
	return orderID, nil
}

// ensureSameRequest compares the fingerprint recorded on the running or
// completed workflow with the one of the repeated request. Runs started
// without the memo are trusted.
func (o *TemporalOrderWorkflows) ensureSameRequest(ctx context.Context, workflowID, runID, requestHash string) error {
	desc, err := o.client.DescribeWorkflowExecution(ctx, workflowID, runID)
	if err != nil {
		return err
	}
	payload, ok := desc.GetWorkflowExecutionInfo().GetMemo().GetFields()[requestHashMemo]
	if !ok {
		return nil
	}
	var stored string
	if err := converter.GetDefaultDataConverter().FromPayload(payload, &stored); err != nil {
		return fmt.Errorf("decode placement memo: %w", err)
	}
	if stored != requestHash {
		return fmt.Errorf("%w: %w", orderapp.ErrConflict, ports.ErrIdempotencyConflict)
	}
	return nil
}

// InlineOrderWorkflows executes the service directly without Temporal, useful for tests or dev fallbacks.
type InlineOrderWorkflows struct {
	service ports.Service
}

func NewInlineOrderWorkflows(service ports.Service) *InlineOrderWorkflows {
	return &InlineOrderWorkflows{service: service}
}

func (o *InlineOrderWorkflows) PlaceOrder(ctx context.Context, input ordertypes.PlaceOrderInput) (int64, error) {
	if o == nil || o.service == nil {
		return 0, errors.New("inline order workflows not configured")
	}
	return o.service.PlaceOrder(ctx, input)
}

// translateWorkflowError restores the application sentinels that the
// activity encoded as Temporal application error types.
func translateWorkflowError(err error) error {
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return err
	}
	switch appErr.Type() {
	case orderactivities.ErrorTypeInvalidInput:
		return fmt.Errorf("%w: %s", orderapp.ErrInvalidInput, appErr.Message())
	case orderactivities.ErrorTypeReferenceNotFound:
		return fmt.Errorf("%w: %s", orderapp.ErrReferenceNotFound, appErr.Message())
	case orderactivities.ErrorTypeConflict:
		return fmt.Errorf("%w: %s", orderapp.ErrConflict, appErr.Message())
	default:
		return err
	}
}

func buildOrderPlacementWorkflowID(input ordertypes.PlaceOrderInput, traceComponent string) string {
	if key := strings.TrimSpace(input.IdempotencyKey); key != "" {
		return fmt.Sprintf("order-placement-idem-%s", hashIdempotencyKey(key))
	}
	return fmt.Sprintf("order-placement-%d-%s", input.MemberID, traceComponent)
}

func hashIdempotencyKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:8])
}

func workflowTraceComponent(ctx context.Context) string {
	if traceID := workflowTraceID(ctx); traceID != "" {
		return traceID
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
