package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/payments/domain"
	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/payments/ports"
)

// Service exposes the wallet surface and the static payment-method catalog.
// Order-scoped payment writes stay with the order orchestrator.
type Service struct {
	wallets  ports.WalletRepository
	payments ports.PaymentRepository
	gateways ports.GatewayResolver
}

func NewService(wallets ports.WalletRepository, payments ports.PaymentRepository, gateways ports.GatewayResolver) *Service {
	return &Service{wallets: wallets, payments: payments, gateways: gateways}
}

// WalletProjection is the wallet plus its ledger, newest entries first.
type WalletProjection struct {
	Wallet       *domain.Wallet
	Transactions []*domain.WalletTransaction
}

// GetWallet loads the customer's wallet, creating an empty one on first use.
func (s *Service) GetWallet(ctx context.Context, customerID uuid.UUID) (*WalletProjection, error) {
	wallet, err := s.ensureWallet(ctx, customerID)
	if err != nil {
		return nil, err
	}
	transactions, err := s.wallets.ListTransactions(ctx, wallet.ID)
	if err != nil {
		return nil, err
	}
	return &WalletProjection{Wallet: wallet, Transactions: transactions}, nil
}

// AddFunds credits the wallet and appends a ledger entry.
func (s *Service) AddFunds(ctx context.Context, customerID uuid.UUID, amount decimal.Decimal) (*WalletProjection, error) {
	wallet, err := s.ensureWallet(ctx, customerID)
	if err != nil {
		return nil, err
	}
	tx, err := wallet.Credit(amount, "Wallet top-up")
	if err != nil {
		return nil, mapError(err)
	}
	if _, err := s.wallets.Save(ctx, wallet); err != nil {
		return nil, err
	}
	if err := s.wallets.AppendTransaction(ctx, tx); err != nil {
		return nil, err
	}
	return s.GetWallet(ctx, customerID)
}

// CreateIntent opens an unconfirmed card payment intent for client-side
// confirmation.
func (s *Service) CreateIntent(ctx context.Context, customerID uuid.UUID, amount decimal.Decimal, currency string) (ports.Outcome, error) {
	if !amount.IsPositive() {
		return ports.Outcome{}, fmt.Errorf("%w: %s", ErrInvalidAmount, amount)
	}
	if currency == "" {
		currency = "inr"
	}
	gw, err := s.gateways.Resolve(domain.MethodCard)
	if err != nil {
		return ports.Outcome{}, err
	}
	return gw.Charge(ctx, ports.ChargeRequest{CustomerID: customerID, Amount: amount, Currency: currency})
}

// GetByOrderID exposes the payment attached to an order.
func (s *Service) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*domain.Payment, error) {
	return s.payments.GetByOrderID(ctx, orderID)
}

func (s *Service) ensureWallet(ctx context.Context, customerID uuid.UUID) (*domain.Wallet, error) {
	wallet, err := s.wallets.GetByCustomerID(ctx, customerID)
	if err == nil {
		return wallet, nil
	}
	if err != ports.ErrWalletNotFound {
		return nil, err
	}
	return s.wallets.Save(ctx, domain.NewWallet(customerID))
}

// MethodInfo describes one entry of the supported-methods catalog.
type MethodInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	Gateway     string `json:"gateway"`
}

// Methods returns the static list of supported payment methods.
func Methods() []MethodInfo {
	return []MethodInfo{
		{ID: "card", Name: "Credit/Debit Card", Icon: "card", Description: "Visa, Mastercard, Amex via Stripe", Gateway: "stripe"},
		{ID: "upi", Name: "UPI", Icon: "upi", Description: "Google Pay, PhonePe, Paytm UPI", Gateway: "razorpay"},
		{ID: "paypal", Name: "PayPal", Icon: "paypal", Description: "Pay with PayPal wallet", Gateway: "paypal"},
		{ID: "wallet", Name: "GadgetZone Wallet", Icon: "wallet", Description: "Pay from wallet balance", Gateway: "internal"},
		{ID: "cod", Name: "Cash on Delivery", Icon: "cod", Description: "Pay when delivered", Gateway: "cod"},
	}
}
