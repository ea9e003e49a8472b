package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/shipments/domain"
)

// Tracker exposes the shipment lifecycle to the order workflow and the
// tracking API.
type Tracker interface {
	CreateForOrder(ctx context.Context, input CreateShipmentInput) (*domain.Shipment, error)
	AdvanceStatus(ctx context.Context, shipmentID uuid.UUID, status domain.Status, note string) (*domain.Shipment, error)
	AdvanceStatusByOrder(ctx context.Context, orderID uuid.UUID, status domain.Status, note string) (*domain.Shipment, error)
	UpdateLocation(ctx context.Context, shipmentID uuid.UUID, lat, lng float64, address string) (*domain.Shipment, error)
	GetByOrder(ctx context.Context, orderID uuid.UUID) (*domain.Shipment, error)
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*domain.Shipment, error)
	ListAll(ctx context.Context) ([]*domain.Shipment, error)
}

// CreateShipmentInput carries what a new shipment needs from the order.
type CreateShipmentInput struct {
	OrderID           uuid.UUID
	CustomerID        uuid.UUID
	Destination       domain.Location
	EstimatedDelivery time.Time
}
