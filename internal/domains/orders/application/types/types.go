// Package types holds the transport-neutral inputs and projections of the
// orders bounded context, shared by the HTTP layer and the durable workflow.
package types

import (
	"github.com/google/uuid"

	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/domain"
	paymentsdomain "github.com/johithjpr-lab/ecommerce-platform/internal/domains/payments/domain"
	shipmentsdomain "github.com/johithjpr-lab/ecommerce-platform/internal/domains/shipments/domain"
)

// CartItemInput references a product by id; everything else is resolved from
// the live catalog during validation.
type CartItemInput struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

// PlaceOrderInput is the full checkout request.
type PlaceOrderInput struct {
	CustomerID      uuid.UUID       `json:"customerId"`
	Items           []CartItemInput `json:"items"`
	ShippingAddress domain.Address  `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`

	// Method-specific credentials; only the field matching PaymentMethod is read.
	PaymentMethodID string `json:"paymentMethodId,omitempty"`
	UPIID           string `json:"upiId,omitempty"`
	PayPalOrderID   string `json:"paypalOrderId,omitempty"`

	// IdempotencyKey is supplied via header, never part of the fingerprint.
	IdempotencyKey string `json:"-"`
}

// PlacementResult is what checkout returns. When RequiresAction is set no
// order exists yet; the client must finish card confirmation first.
type PlacementResult struct {
	RequiresAction bool   `json:"requiresAction,omitempty"`
	ClientSecret   string `json:"clientSecret,omitempty"`

	Order    *domain.Order             `json:"order,omitempty"`
	Payment  *paymentsdomain.Payment   `json:"payment,omitempty"`
	Shipment *shipmentsdomain.Shipment `json:"shipment,omitempty"`
}

// AdvanceStatusInput is the admin request to move an order through its
// lifecycle.
type AdvanceStatusInput struct {
	OrderID uuid.UUID
	Status  string
	Note    string
}

// OrderDetail composes an order with its shipment and payment records.
// Shipment and Payment are nil when the respective record does not exist.
type OrderDetail struct {
	Order    *domain.Order
	Payment  *paymentsdomain.Payment
	Shipment *shipmentsdomain.Shipment
}

// AdminListInput filters and paginates the admin order listing.
type AdminListInput struct {
	Status string
	Page   int
	Limit  int
}

// OrderPage is one page of the admin order listing.
type OrderPage struct {
	Orders []*domain.Order
	Total  int64
	Page   int
	Pages  int
}
