package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrInsufficientBalance indicates a debit would drive the balance negative.
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
	ErrInvalidTopUp        = errors.New("top-up amount must be positive")
)

// TransactionType tags wallet ledger entries.
type TransactionType string

const (
	TransactionCredit TransactionType = "credit"
	TransactionDebit  TransactionType = "debit"
)

// Wallet is the store-credit balance attached to a customer. The balance
// never goes negative; debits that would do so are rejected.
type Wallet struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	Balance    decimal.Decimal
	Currency   string
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// WalletTransaction is one append-only ledger entry.
type WalletTransaction struct {
	ID          uuid.UUID
	WalletID    uuid.UUID
	Type        TransactionType
	Amount      decimal.Decimal
	Description string
	OrderID     *uuid.UUID
	CreatedAt   time.Time
}

// NewWallet creates an empty wallet for a customer.
func NewWallet(customerID uuid.UUID) *Wallet {
	now := time.Now().UTC()
	return &Wallet{
		ID:         uuid.New(),
		CustomerID: customerID,
		Balance:    decimal.Zero,
		Currency:   "INR",
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Debit subtracts amount and returns the matching ledger entry.
func (w *Wallet) Debit(amount decimal.Decimal, description string, orderID *uuid.UUID) (*WalletTransaction, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if w.Balance.LessThan(amount) {
		return nil, ErrInsufficientBalance
	}
	w.Balance = w.Balance.Sub(amount)
	w.UpdatedAt = time.Now().UTC()
	return w.newTransaction(TransactionDebit, amount, description, orderID), nil
}

// Credit adds amount and returns the matching ledger entry.
func (w *Wallet) Credit(amount decimal.Decimal, description string) (*WalletTransaction, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidTopUp
	}
	w.Balance = w.Balance.Add(amount)
	w.UpdatedAt = time.Now().UTC()
	return w.newTransaction(TransactionCredit, amount, description, nil), nil
}

func (w *Wallet) newTransaction(txType TransactionType, amount decimal.Decimal, description string, orderID *uuid.UUID) *WalletTransaction {
	return &WalletTransaction{
		ID:          uuid.New(),
		WalletID:    w.ID,
		Type:        txType,
		Amount:      amount,
		Description: description,
		OrderID:     orderID,
		CreatedAt:   time.Now().UTC(),
	}
}
