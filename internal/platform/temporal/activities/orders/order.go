package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	types "github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/application/types"
	ordersports "github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/ports"
)

// PlaceOrderActivityName runs the full checkout sequence against the orders service.
const PlaceOrderActivityName = "orders.activities.PlaceOrder"

// Activities groups activities operating on the orders bounded context.
type Activities struct {
	service ordersports.Service
}

// NewActivities wires the orders service into the Temporal activities bundle.
func NewActivities(service ordersports.Service) *Activities {
	return &Activities{service: service}
}

// PlaceOrder validates the cart, charges the payment method, and persists the
// order with its payment and shipment records.
func (a *Activities) PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (*types.PlacementResult, error) {
	logger := activity.GetLogger(ctx)
	customerID := input.CustomerID.String()
	if a == nil || a.service == nil {
		logger.Error("order placement activity not initialized", "customerId", customerID)
		return nil, errors.New("order placement activity not initialized")
	}
	logger.Info("PlaceOrder activity started", "customerId", customerID)
	result, err := a.service.PlaceOrder(ctx, input)
	if err != nil {
		logger.Error("PlaceOrder activity failed", "customerId", customerID, "error", err)
		return nil, err
	}
	if result.Order != nil {
		logger.Info("PlaceOrder activity completed", "orderNumber", result.Order.OrderNumber)
	} else {
		logger.Info("PlaceOrder activity completed", "requiresAction", result.RequiresAction)
	}
	return result, nil
}
