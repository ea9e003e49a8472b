package domain

import (
	"errors"
	"fmt"
	"time"

	paymentsdomain "github.com/johithjpr-lab/ecommerce-platform/internal/domains/payments/domain"
	shipmentsdomain "github.com/johithjpr-lab/ecommerce-platform/internal/domains/shipments/domain"
)

// Status enumerates the order lifecycle.
type Status string

const (
	StatusConfirmed      Status = "confirmed"
	StatusProcessing     Status = "processing"
	StatusShipped        Status = "shipped"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
)

// Progression rank along the happy path. Cancelled sits outside it.
var statusRank = map[Status]int{
	StatusConfirmed:      0,
	StatusProcessing:     1,
	StatusShipped:        2,
	StatusOutForDelivery: 3,
	StatusDelivered:      4,
}

var (
	ErrInvalidStatus     = errors.New("order status is invalid")
	ErrInvalidTransition = errors.New("order status transition is not allowed")
)

// ParseStatus validates a raw status tag.
func ParseStatus(raw string) (Status, error) {
	status := Status(raw)
	if status == StatusCancelled {
		return status, nil
	}
	if _, ok := statusRank[status]; !ok {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// Terminal reports whether the status admits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Transition moves the order to newStatus and appends a history entry.
// Legal moves are forward along the happy path, or to cancelled from any
// non-terminal state. Cancellation performs no restock or refund.
func (o *Order) Transition(newStatus Status, note string) error {
	if _, err := ParseStatus(string(newStatus)); err != nil {
		return err
	}
	if o.Status.Terminal() {
		return fmt.Errorf("%w: order is already %s", ErrInvalidTransition, o.Status)
	}
	if newStatus != StatusCancelled {
		if statusRank[newStatus] <= statusRank[o.Status] {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, newStatus)
		}
	}
	now := time.Now().UTC()
	o.Status = newStatus
	o.UpdatedAt = now
	o.StatusHistory = append(o.StatusHistory, StatusChange{Status: newStatus, Timestamp: now, Note: note})
	return nil
}

// SettleCashOnDelivery flips the order-level payment view once cash is
// collected at the door.
func (o *Order) SettleCashOnDelivery() bool {
	if o.PaymentMethod != paymentsdomain.MethodCOD || o.Status != StatusDelivered {
		return false
	}
	o.PaymentStatus = PaymentPaid
	o.UpdatedAt = time.Now().UTC()
	return true
}

// shipmentStatusFor maps an order status to the shipment status it implies.
// Confirmed and cancelled leave the shipment as-is.
var shipmentStatusFor = map[Status]shipmentsdomain.Status{
	StatusProcessing:     shipmentsdomain.StatusPreparing,
	StatusShipped:        shipmentsdomain.StatusInTransit,
	StatusOutForDelivery: shipmentsdomain.StatusOutForDelivery,
	StatusDelivered:      shipmentsdomain.StatusDelivered,
}

// ShipmentStatusFor returns the shipment status an order status maps to,
// and whether such a mapping exists.
func ShipmentStatusFor(status Status) (shipmentsdomain.Status, bool) {
	mapped, ok := shipmentStatusFor[status]
	return mapped, ok
}
