package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/payments/domain"
)

var (
	ErrPaymentNotFound = errors.New("payment not found")
	ErrWalletNotFound  = errors.New("wallet not found")
)

// PaymentRepository persists payment records.
type PaymentRepository interface {
	Save(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
	GetByOrderID(ctx context.Context, orderID uuid.UUID) (*domain.Payment, error)
}

// WalletRepository persists wallets and their append-only transaction log.
type WalletRepository interface {
	GetByCustomerID(ctx context.Context, customerID uuid.UUID) (*domain.Wallet, error)
	Save(ctx context.Context, wallet *domain.Wallet) (*domain.Wallet, error)
	AppendTransaction(ctx context.Context, tx *domain.WalletTransaction) error
	ListTransactions(ctx context.Context, walletID uuid.UUID) ([]*domain.WalletTransaction, error)
}
