package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/shipments/domain"
)

var ErrNotFound = errors.New("shipment not found")

// Repository persists shipments and their tracking history.
type Repository interface {
	Save(ctx context.Context, shipment *domain.Shipment) (*domain.Shipment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Shipment, error)
	GetByOrderID(ctx context.Context, orderID uuid.UUID) (*domain.Shipment, error)
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*domain.Shipment, error)
	List(ctx context.Context) ([]*domain.Shipment, error)
}
