package orders

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	types "github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/application/types"
	orderactivities "github.com/johithjpr-lab/ecommerce-platform/internal/platform/temporal/activities/orders"
)

const (
	// OrderPlacementWorkflowName is the public identifier for registering the workflow.
	OrderPlacementWorkflowName = "orders.workflows.Placement"
	// OrderPlacementTaskQueue is the queue consumed by the worker processing order workflows.
	OrderPlacementTaskQueue = "ORDER_PLACEMENT"
)

// OrderPlacementWorkflowInput captures the payload required to place an order.
type OrderPlacementWorkflowInput struct {
	Command types.PlaceOrderInput
	TraceID string
}

// OrderPlacementWorkflow runs the checkout sequence as a single activity.
// The charge inside is not idempotent, so the activity never retries; the
// placement attempt record covers partial failures instead.
func OrderPlacementWorkflow(ctx workflow.Context, input OrderPlacementWorkflowInput) (*types.PlacementResult, error) {
	logger := workflow.GetLogger(ctx)
	customerID := input.Command.CustomerID.String()
	logger.Info("OrderPlacementWorkflow started", withTraceID(input.TraceID, "customerId", customerID)...)

	options := workflow.ActivityOptions{
		StartToCloseTimeout: 2 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var result types.PlacementResult
	if err := workflow.ExecuteActivity(ctx, orderactivities.PlaceOrderActivityName, input.Command).Get(ctx, &result); err != nil {
		logger.Error("OrderPlacementWorkflow failed", withTraceID(input.TraceID, "customerId", customerID, "error", err)...)
		return nil, err
	}
	if result.Order != nil {
		logger.Info("OrderPlacementWorkflow completed", withTraceID(input.TraceID, "orderNumber", result.Order.OrderNumber)...)
	} else {
		logger.Info("OrderPlacementWorkflow completed", withTraceID(input.TraceID)...)
	}
	return &result, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
