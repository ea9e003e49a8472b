package ports

import (
	"context"

	types "github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/application/types"
)

// PlacementOrchestrator runs the checkout sequence, either inline or through
// a durable workflow engine.
type PlacementOrchestrator interface {
	PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (*types.PlacementResult, error)
}
