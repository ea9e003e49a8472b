package application

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest signals the checkout payload violated a domain invariant.
	ErrInvalidRequest = errors.New("invalid order request")
	// ErrInsufficientStock signals a cart line could not be covered by inventory.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrInsufficientFunds signals the customer's wallet cannot cover the total.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrPaymentFailed signals the gateway declined or errored on the charge.
	ErrPaymentFailed = errors.New("payment failed")
)

// StockError carries the product name for the client-facing availability
// message.
type StockError struct {
	ProductName string
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock: %s unavailable or insufficient stock", e.ProductName)
}

func (e *StockError) Unwrap() error { return ErrInsufficientStock }

// PaymentError carries the gateway-reported decline reason.
type PaymentError struct {
	Reason string
}

func (e *PaymentError) Error() string {
	if e.Reason == "" {
		return "payment failed"
	}
	return fmt.Sprintf("payment failed: %s", e.Reason)
}

func (e *PaymentError) Unwrap() error { return ErrPaymentFailed }
