package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Method enumerates the supported ways to pay for an order.
type Method string

const (
	MethodCard   Method = "card"
	MethodUPI    Method = "upi"
	MethodPayPal Method = "paypal"
	MethodWallet Method = "wallet"
	MethodCOD    Method = "cod"
)

// Status enumerates payment settlement states.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusRefunded  Status = "refunded"
)

var (
	ErrInvalidMethod = errors.New("payment method is invalid")
	ErrInvalidAmount = errors.New("payment amount must be positive")
)

// ParseMethod validates a client-supplied method tag.
func ParseMethod(raw string) (Method, error) {
	method := Method(raw)
	switch method {
	case MethodCard, MethodUPI, MethodPayPal, MethodWallet, MethodCOD:
		return method, nil
	default:
		return "", ErrInvalidMethod
	}
}

// GatewayName returns the gateway a method settles through.
func (m Method) GatewayName() string {
	switch m {
	case MethodCard:
		return "stripe"
	case MethodPayPal:
		return "paypal"
	case MethodUPI:
		return "razorpay"
	case MethodCOD:
		return "cod"
	default:
		return "internal"
	}
}

// Payment records a single settlement attempt for an order. Exactly one is
// created per order at order-creation time.
type Payment struct {
	ID            uuid.UUID
	OrderID       uuid.UUID
	CustomerID    uuid.UUID
	Method        Method
	Gateway       string
	Amount        decimal.Decimal
	Status        Status
	TransactionID string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewPayment validates and constructs a payment record.
func NewPayment(orderID, customerID uuid.UUID, method Method, amount decimal.Decimal, status Status, transactionID string) (*Payment, error) {
	if _, err := ParseMethod(string(method)); err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	now := time.Now().UTC()
	return &Payment{
		ID:            uuid.New(),
		OrderID:       orderID,
		CustomerID:    customerID,
		Method:        method,
		Gateway:       method.GatewayName(),
		Amount:        amount,
		Status:        status,
		TransactionID: transactionID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Settle marks the payment completed. Used for cash-on-delivery settlement
// once the order is delivered.
func (p *Payment) Settle() {
	p.Status = StatusCompleted
	p.UpdatedAt = time.Now().UTC()
}
