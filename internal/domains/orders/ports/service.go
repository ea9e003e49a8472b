package ports

import (
	"context"

	"github.com/google/uuid"

	types "github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/application/types"
	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/domain"
)

// Service exposes the order use cases to transports and workflows.
type Service interface {
	PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (*types.PlacementResult, error)
	AdvanceStatus(ctx context.Context, input types.AdvanceStatusInput) (*domain.Order, error)
	GetOrder(ctx context.Context, customerID, orderID uuid.UUID) (*types.OrderDetail, error)
	ListOrders(ctx context.Context, customerID uuid.UUID) ([]*domain.Order, error)
	ListAllOrders(ctx context.Context, input types.AdminListInput) (*types.OrderPage, error)
}
