package api

import (
	"errors"

	ordersapp "github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/application"
	ordersports "github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/ports"
	paymentsapp "github.com/johithjpr-lab/ecommerce-platform/internal/domains/payments/application"
	paymentsports "github.com/johithjpr-lab/ecommerce-platform/internal/domains/payments/ports"
	shipmentsdomain "github.com/johithjpr-lab/ecommerce-platform/internal/domains/shipments/domain"
	shipmentsports "github.com/johithjpr-lab/ecommerce-platform/internal/domains/shipments/ports"
	apierrors "github.com/johithjpr-lab/ecommerce-platform/internal/shared/errors"
)

// newResponder chains the per-context error mappers in front of the default
// RFC 7807 handling.
func newResponder() *apierrors.ChainedResponder {
	return apierrors.NewChainedResponder("", mapOrderErrors, mapPaymentErrors, mapShipmentErrors)
}

func mapOrderErrors(err error) (apierrors.ProblemDetail, bool) {
	var stockErr *ordersapp.StockError
	if errors.As(err, &stockErr) {
		return apierrors.NewInsufficientStockProblem(stockErr.ProductName), true
	}
	var paymentErr *ordersapp.PaymentError
	if errors.As(err, &paymentErr) {
		return apierrors.NewPaymentFailedProblem(paymentErr.Reason), true
	}
	switch {
	case errors.Is(err, ordersapp.ErrInsufficientFunds):
		return apierrors.ErrInsufficientFunds.WithDetail(err.Error()), true
	case errors.Is(err, ordersapp.ErrInvalidRequest):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, ordersports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail("order not found"), true
	case errors.Is(err, ordersports.ErrIdempotencyConflict):
		return apierrors.ErrConflict.WithDetail("idempotency key was already used with a different payload"), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapPaymentErrors(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, paymentsapp.ErrInsufficientBalance):
		return apierrors.ErrInsufficientFunds.WithDetail(err.Error()), true
	case errors.Is(err, paymentsapp.ErrInvalidAmount):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, paymentsports.ErrPaymentNotFound):
		return apierrors.ErrNotFound.WithDetail("payment not found"), true
	case errors.Is(err, paymentsports.ErrWalletNotFound):
		return apierrors.ErrNotFound.WithDetail("wallet not found"), true
	case errors.Is(err, paymentsports.ErrUnsupportedMethod):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapShipmentErrors(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, shipmentsports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail("shipment not found"), true
	case errors.Is(err, shipmentsdomain.ErrInvalidStatus), errors.Is(err, shipmentsdomain.ErrStatusRegression):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}
