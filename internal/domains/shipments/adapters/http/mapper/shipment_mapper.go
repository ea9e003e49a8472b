package mapper

import (
	"time"

	"github.com/google/uuid"

	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/shipments/domain"
)

// Location is the HTTP representation of a point on the route.
type Location struct {
	Lat     float64 `json:"lat,omitempty"`
	Lng     float64 `json:"lng,omitempty"`
	Address string  `json:"address,omitempty"`
}

// TrackingEvent is one entry of the tracking history.
type TrackingEvent struct {
	Status      string    `json:"status"`
	Location    *Location `json:"location,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description,omitempty"`
}

// Shipment is the HTTP representation of a shipment.
type Shipment struct {
	ID                uuid.UUID       `json:"id"`
	OrderID           uuid.UUID       `json:"orderId"`
	TrackingNumber    string          `json:"trackingNumber"`
	Carrier           string          `json:"carrier"`
	Status            string          `json:"status"`
	CurrentLocation   *Location       `json:"currentLocation,omitempty"`
	Origin            Location        `json:"origin"`
	Destination       Location        `json:"destination"`
	EstimatedDelivery time.Time       `json:"estimatedDelivery"`
	ActualDelivery    *time.Time      `json:"actualDelivery,omitempty"`
	TrackingHistory   []TrackingEvent `json:"trackingHistory,omitempty"`
}

// FromShipment maps the domain shipment to its HTTP representation.
func FromShipment(s *domain.Shipment) Shipment {
	history := make([]TrackingEvent, 0, len(s.TrackingHistory))
	for _, event := range s.TrackingHistory {
		history = append(history, TrackingEvent{
			Status:      string(event.Status),
			Location:    fromLocationPtr(event.Location),
			Timestamp:   event.Timestamp,
			Description: event.Description,
		})
	}
	return Shipment{
		ID:                s.ID,
		OrderID:           s.OrderID,
		TrackingNumber:    s.TrackingNumber,
		Carrier:           s.Carrier,
		Status:            string(s.Status),
		CurrentLocation:   fromLocationPtr(s.CurrentLocation),
		Origin:            fromLocation(s.Origin),
		Destination:       fromLocation(s.Destination),
		EstimatedDelivery: s.EstimatedDelivery,
		ActualDelivery:    s.ActualDelivery,
		TrackingHistory:   history,
	}
}

// FromShipments maps a list of shipments.
func FromShipments(shipments []*domain.Shipment) []Shipment {
	list := make([]Shipment, 0, len(shipments))
	for _, shipment := range shipments {
		list = append(list, FromShipment(shipment))
	}
	return list
}

// LocationUpdateRequest carries a courier GPS fix.
type LocationUpdateRequest struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

func fromLocation(l domain.Location) Location {
	return Location{Lat: l.Lat, Lng: l.Lng, Address: l.Address}
}

func fromLocationPtr(l *domain.Location) *Location {
	if l == nil {
		return nil
	}
	location := fromLocation(*l)
	return &location
}
