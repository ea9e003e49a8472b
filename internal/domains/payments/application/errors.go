package application

import (
	"errors"
	"fmt"

	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/payments/domain"
)

var (
	// ErrInvalidAmount signals a non-positive amount in a wallet or intent request.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInsufficientBalance mirrors the domain invariant for API callers.
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrInsufficientBalance):
		return fmt.Errorf("%w: %w", ErrInsufficientBalance, err)
	case errors.Is(err, domain.ErrInvalidTopUp), errors.Is(err, domain.ErrInvalidAmount):
		return fmt.Errorf("%w: %w", ErrInvalidAmount, err)
	}
	return err
}
