package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/payments/domain"
	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/payments/ports"
)

var (
	_ ports.PaymentRepository = (*PaymentRepository)(nil)
	_ ports.WalletRepository  = (*WalletRepository)(nil)
)

// PaymentRepository is an in-memory payment persistence adapter.
type PaymentRepository struct {
	mu       sync.RWMutex
	payments map[uuid.UUID]*domain.Payment
}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{payments: map[uuid.UUID]*domain.Payment{}}
}

func (r *PaymentRepository) Save(_ context.Context, payment *domain.Payment) (*domain.Payment, error) {
	if payment == nil {
		return nil, errors.New("payment is nil")
	}
	clone := *payment
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == uuid.Nil {
		clone.ID = uuid.New()
	}
	r.payments[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (r *PaymentRepository) GetByOrderID(_ context.Context, orderID uuid.UUID) (*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, payment := range r.payments {
		if payment.OrderID == orderID {
			clone := *payment
			return &clone, nil
		}
	}
	return nil, ports.ErrPaymentNotFound
}

// WalletRepository is an in-memory wallet persistence adapter.
type WalletRepository struct {
	mu           sync.RWMutex
	wallets      map[uuid.UUID]*domain.Wallet
	transactions map[uuid.UUID][]*domain.WalletTransaction
}

func NewWalletRepository() *WalletRepository {
	return &WalletRepository{
		wallets:      map[uuid.UUID]*domain.Wallet{},
		transactions: map[uuid.UUID][]*domain.WalletTransaction{},
	}
}

func (r *WalletRepository) GetByCustomerID(_ context.Context, customerID uuid.UUID) (*domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, wallet := range r.wallets {
		if wallet.CustomerID == customerID {
			clone := *wallet
			return &clone, nil
		}
	}
	return nil, ports.ErrWalletNotFound
}

func (r *WalletRepository) Save(_ context.Context, wallet *domain.Wallet) (*domain.Wallet, error) {
	if wallet == nil {
		return nil, errors.New("wallet is nil")
	}
	clone := *wallet
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == uuid.Nil {
		clone.ID = uuid.New()
	}
	r.wallets[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (r *WalletRepository) AppendTransaction(_ context.Context, tx *domain.WalletTransaction) error {
	if tx == nil {
		return errors.New("wallet transaction is nil")
	}
	clone := *tx
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transactions[clone.WalletID] = append(r.transactions[clone.WalletID], &clone)
	return nil
}

func (r *WalletRepository) ListTransactions(_ context.Context, walletID uuid.UUID) ([]*domain.WalletTransaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := r.transactions[walletID]
	list := make([]*domain.WalletTransaction, 0, len(entries))
	for _, tx := range entries {
		clone := *tx
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}
