package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/shipments/domain"
	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/shipments/ports"
)

// Service implements the shipment tracker use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// CreateForOrder creates the single shipment attached to a new order.
func (s *Service) CreateForOrder(ctx context.Context, input ports.CreateShipmentInput) (*domain.Shipment, error) {
	if input.OrderID == uuid.Nil {
		return nil, errors.New("order id is required")
	}
	shipment := domain.New(input.OrderID, input.CustomerID, input.Destination, input.EstimatedDelivery)
	return s.repo.Save(ctx, shipment)
}

// AdvanceStatus moves a shipment forward and appends a tracking entry.
func (s *Service) AdvanceStatus(ctx context.Context, shipmentID uuid.UUID, status domain.Status, note string) (*domain.Shipment, error) {
	shipment, err := s.repo.GetByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	return s.advance(ctx, shipment, status, note)
}

// AdvanceStatusByOrder is the order-status-machine entry point: it resolves
// the shipment through its order before advancing.
func (s *Service) AdvanceStatusByOrder(ctx context.Context, orderID uuid.UUID, status domain.Status, note string) (*domain.Shipment, error) {
	shipment, err := s.repo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return s.advance(ctx, shipment, status, note)
}

// UpdateLocation records a GPS fix; the shipment status is untouched.
func (s *Service) UpdateLocation(ctx context.Context, shipmentID uuid.UUID, lat, lng float64, address string) (*domain.Shipment, error) {
	shipment, err := s.repo.GetByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	shipment.UpdateLocation(lat, lng, address)
	return s.repo.Save(ctx, shipment)
}

func (s *Service) GetByOrder(ctx context.Context, orderID uuid.UUID) (*domain.Shipment, error) {
	return s.repo.GetByOrderID(ctx, orderID)
}

func (s *Service) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*domain.Shipment, error) {
	return s.repo.GetByTrackingNumber(ctx, trackingNumber)
}

func (s *Service) ListAll(ctx context.Context) ([]*domain.Shipment, error) {
	return s.repo.List(ctx)
}

func (s *Service) advance(ctx context.Context, shipment *domain.Shipment, status domain.Status, note string) (*domain.Shipment, error) {
	if err := shipment.Advance(status, note); err != nil {
		return nil, fmt.Errorf("advance shipment %s: %w", shipment.ID, err)
	}
	return s.repo.Save(ctx, shipment)
}

var _ ports.Tracker = (*Service)(nil)
