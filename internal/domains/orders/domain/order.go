package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	paymentsdomain "github.com/johithjpr-lab/ecommerce-platform/internal/domains/payments/domain"
	"github.com/johithjpr-lab/ecommerce-platform/internal/shared/refid"
)

// PaymentStatus is the order-level view of how the payment stands.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

var (
	ErrNoItems        = errors.New("order must contain at least one item")
	ErrMissingAddress = errors.New("shipping address is required")
)

// Tax and shipping rules. Single jurisdiction, flat rates.
var (
	taxRate           = decimal.NewFromFloat(0.18)
	freeShippingAbove = decimal.NewFromInt(1000)
	flatShippingFee   = decimal.NewFromInt(99)
)

// Address is the shipping address snapshot stored with the order.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// Empty reports whether the address carries no usable destination.
func (a Address) Empty() bool {
	return a.Street == "" && a.City == ""
}

// Line returns the single-line rendition used for shipment destinations.
func (a Address) Line() string {
	return fmt.Sprintf("%s, %s, %s %s", a.Street, a.City, a.State, a.ZipCode)
}

// LineItem is a product snapshot taken at validation time. Later catalog
// mutations never touch it.
type LineItem struct {
	ProductID uuid.UUID
	Name      string
	Price     decimal.Decimal
	Quantity  int
	Image     string
}

// Subtotal is price times quantity for this line.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// StatusChange is one append-only entry in the order's status history.
type StatusChange struct {
	Status    Status
	Timestamp time.Time
	Note      string
}

// Totals carries the derived money amounts, computed once at creation.
type Totals struct {
	Subtotal     decimal.Decimal
	Tax          decimal.Decimal
	ShippingCost decimal.Decimal
	Total        decimal.Decimal
}

// ComputeTotals derives tax, shipping, and total from the line items:
// 18% flat tax rounded to two places, free shipping above 1000, 99 otherwise.
func ComputeTotals(items []LineItem) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Subtotal())
	}
	tax := subtotal.Mul(taxRate).Round(2)
	shipping := flatShippingFee
	if subtotal.GreaterThan(freeShippingAbove) {
		shipping = decimal.Zero
	}
	return Totals{
		Subtotal:     subtotal,
		Tax:          tax,
		ShippingCost: shipping,
		Total:        subtotal.Add(tax).Add(shipping),
	}
}

// NewOrderNumber mints a GZ-prefixed order reference.
func NewOrderNumber() string {
	return fmt.Sprintf("GZ-%s-%s", refid.TimeToken(), refid.Suffix(4))
}

// Order is the purchase aggregate. Created atomically by the placement
// workflow; its status only moves through Transition.
type Order struct {
	ID                uuid.UUID
	OrderNumber       string
	CustomerID        uuid.UUID
	Items             []LineItem
	ShippingAddress   Address
	PaymentMethod     paymentsdomain.Method
	PaymentStatus     PaymentStatus
	Status            Status
	Subtotal          decimal.Decimal
	Tax               decimal.Decimal
	ShippingCost      decimal.Decimal
	Total             decimal.Decimal
	EstimatedDelivery time.Time
	StatusHistory     []StatusChange
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// New validates and assembles a confirmed order with computed totals, an
// estimated delivery date, and the initial status-history entry.
func New(customerID uuid.UUID, items []LineItem, address Address, method paymentsdomain.Method) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	if address.Empty() {
		return nil, ErrMissingAddress
	}
	if _, err := paymentsdomain.ParseMethod(string(method)); err != nil {
		return nil, err
	}
	totals := ComputeTotals(items)
	now := time.Now().UTC()

	// Cash buys ride a slower lane; prepaid parcels leave sooner.
	deliveryDays := 5
	paymentStatus := PaymentPaid
	if method == paymentsdomain.MethodCOD {
		deliveryDays = 7
		paymentStatus = PaymentPending
	}

	order := &Order{
		ID:                uuid.New(),
		OrderNumber:       NewOrderNumber(),
		CustomerID:        customerID,
		Items:             items,
		ShippingAddress:   address,
		PaymentMethod:     method,
		PaymentStatus:     paymentStatus,
		Status:            StatusConfirmed,
		Subtotal:          totals.Subtotal,
		Tax:               totals.Tax,
		ShippingCost:      totals.ShippingCost,
		Total:             totals.Total,
		EstimatedDelivery: now.AddDate(0, 0, deliveryDays),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	order.StatusHistory = []StatusChange{{
		Status:    StatusConfirmed,
		Timestamp: now,
		Note:      "Order placed successfully",
	}}
	return order, nil
}
