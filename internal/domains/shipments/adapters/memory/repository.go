package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/shipments/domain"
	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/shipments/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory shipment persistence adapter.
type Repository struct {
	mu        sync.RWMutex
	shipments map[uuid.UUID]*domain.Shipment
}

func NewRepository() *Repository {
	return &Repository{shipments: map[uuid.UUID]*domain.Shipment{}}
}

func (r *Repository) Save(_ context.Context, shipment *domain.Shipment) (*domain.Shipment, error) {
	if shipment == nil {
		return nil, errors.New("shipment is nil")
	}
	clone := cloneShipment(shipment)
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == uuid.Nil {
		clone.ID = uuid.New()
	}
	r.shipments[clone.ID] = clone
	return cloneShipment(clone), nil
}

func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*domain.Shipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	shipment, ok := r.shipments[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneShipment(shipment), nil
}

func (r *Repository) GetByOrderID(_ context.Context, orderID uuid.UUID) (*domain.Shipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, shipment := range r.shipments {
		if shipment.OrderID == orderID {
			return cloneShipment(shipment), nil
		}
	}
	return nil, ports.ErrNotFound
}

func (r *Repository) GetByTrackingNumber(_ context.Context, trackingNumber string) (*domain.Shipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, shipment := range r.shipments {
		if shipment.TrackingNumber == trackingNumber {
			return cloneShipment(shipment), nil
		}
	}
	return nil, ports.ErrNotFound
}

func (r *Repository) List(_ context.Context) ([]*domain.Shipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Shipment, 0, len(r.shipments))
	for _, shipment := range r.shipments {
		list = append(list, cloneShipment(shipment))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func cloneShipment(s *domain.Shipment) *domain.Shipment {
	clone := *s
	clone.TrackingHistory = append([]domain.TrackingEvent(nil), s.TrackingHistory...)
	if s.CurrentLocation != nil {
		location := *s.CurrentLocation
		clone.CurrentLocation = &location
	}
	if s.ActualDelivery != nil {
		actual := *s.ActualDelivery
		clone.ActualDelivery = &actual
	}
	return &clone
}
