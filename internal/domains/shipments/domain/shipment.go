package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/johithjpr-lab/ecommerce-platform/internal/shared/refid"
)

// Status enumerates shipment progression. Ordered; a shipment never moves
// backwards through this sequence.
type Status string

const (
	StatusPreparing      Status = "preparing"
	StatusPickedUp       Status = "picked_up"
	StatusInTransit      Status = "in_transit"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
)

var statusRank = map[Status]int{
	StatusPreparing:      0,
	StatusPickedUp:       1,
	StatusInTransit:      2,
	StatusOutForDelivery: 3,
	StatusDelivered:      4,
}

var (
	ErrInvalidStatus = errors.New("shipment status is invalid")
	// ErrStatusRegression indicates an attempt to move a shipment backwards.
	ErrStatusRegression = errors.New("shipment status cannot regress")
)

// Location is a point on the shipment's journey.
type Location struct {
	Lat     float64
	Lng     float64
	Address string
}

// TrackingEvent is one append-only entry in the shipment's history.
type TrackingEvent struct {
	Status      Status
	Location    *Location
	Timestamp   time.Time
	Description string
}

// Shipment tracks the physical delivery of one order.
type Shipment struct {
	ID                uuid.UUID
	OrderID           uuid.UUID
	CustomerID        uuid.UUID
	TrackingNumber    string
	Carrier           string
	Status            Status
	CurrentLocation   *Location
	Origin            Location
	Destination       Location
	EstimatedDelivery time.Time
	ActualDelivery    *time.Time
	TrackingHistory   []TrackingEvent
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// WarehouseOrigin is the fixed dispatch point for every shipment.
var WarehouseOrigin = Location{
	Lat:     19.076,
	Lng:     72.8777,
	Address: "GadgetZone Warehouse, Mumbai, Maharashtra",
}

// NewTrackingNumber mints a GZT-prefixed tracking reference.
func NewTrackingNumber() string {
	return "GZT" + refid.TimeToken() + refid.Suffix(4)
}

// New creates a shipment in the preparing state with its initial history entry.
func New(orderID, customerID uuid.UUID, destination Location, estimatedDelivery time.Time) *Shipment {
	now := time.Now().UTC()
	shipment := &Shipment{
		ID:                uuid.New(),
		OrderID:           orderID,
		CustomerID:        customerID,
		TrackingNumber:    NewTrackingNumber(),
		Carrier:           "GadgetZone Logistics",
		Status:            StatusPreparing,
		Origin:            WarehouseOrigin,
		Destination:       destination,
		EstimatedDelivery: estimatedDelivery,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	shipment.appendEvent(TrackingEvent{
		Status:      StatusPreparing,
		Location:    &Location{Address: "GadgetZone Warehouse, Mumbai"},
		Description: "Order confirmed, preparing for shipment",
	})
	return shipment
}

// ParseStatus validates a raw status tag.
func ParseStatus(raw string) (Status, error) {
	status := Status(raw)
	if _, ok := statusRank[status]; !ok {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// Advance moves the shipment to newStatus and appends a history entry.
// Delivery stamps the actual-delivery timestamp. Regressions are rejected.
func (s *Shipment) Advance(newStatus Status, note string) error {
	newRank, ok := statusRank[newStatus]
	if !ok {
		return ErrInvalidStatus
	}
	if newRank < statusRank[s.Status] {
		return fmt.Errorf("%w: %s -> %s", ErrStatusRegression, s.Status, newStatus)
	}
	s.Status = newStatus
	if note == "" {
		note = fmt.Sprintf("Status updated to %s", newStatus)
	}
	if newStatus == StatusDelivered {
		now := time.Now().UTC()
		s.ActualDelivery = &now
	}
	s.appendEvent(TrackingEvent{Status: newStatus, Location: s.CurrentLocation, Description: note})
	return nil
}

// UpdateLocation records a GPS fix without touching the status.
func (s *Shipment) UpdateLocation(lat, lng float64, address string) {
	location := Location{Lat: lat, Lng: lng, Address: address}
	s.CurrentLocation = &location
	s.appendEvent(TrackingEvent{
		Status:      s.Status,
		Location:    &location,
		Description: fmt.Sprintf("Location updated: %s", address),
	})
}

func (s *Shipment) appendEvent(event TrackingEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	s.TrackingHistory = append(s.TrackingHistory, event)
	s.UpdatedAt = event.Timestamp
}
