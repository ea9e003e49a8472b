package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/payments/domain"
)

// ErrUnsupportedMethod indicates no gateway is registered for the method.
var ErrUnsupportedMethod = errors.New("unsupported payment method")

// ChargeRequest carries everything a gateway needs to attempt a charge.
// Method-specific credentials are optional and only read by the matching
// gateway implementation.
type ChargeRequest struct {
	CustomerID uuid.UUID
	Amount     decimal.Decimal
	Currency   string
	// PaymentMethodID is the stored card token for immediate card charges.
	PaymentMethodID string
	// UPIID is the UPI virtual payment address.
	UPIID string
	// PayPalOrderID references an order approved on the PayPal side.
	PayPalOrderID string
	// WalletID identifies the already-debited wallet for bookkeeping.
	WalletID uuid.UUID
}

// Outcome is the normalized result every gateway returns.
// Charges are not idempotent at this layer; callers must not re-invoke a
// charge they are unsure about.
type Outcome struct {
	Success       bool
	TransactionID string
	Status        domain.Status
	// RequiresAction signals the two-phase card flow: the client must finish
	// confirmation using ClientSecret before the order can complete.
	RequiresAction bool
	ClientSecret   string
	// Reason holds the gateway-reported failure cause when Success is false.
	Reason string
}

// Gateway charges a payment method and reports a normalized outcome.
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (Outcome, error)
}

// GatewayResolver picks the gateway implementation for a method.
type GatewayResolver interface {
	Resolve(method domain.Method) (Gateway, error)
}
