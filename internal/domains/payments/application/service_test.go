package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/payments/adapters/gateway"
	paymentsmemory "github.com/johithjpr-lab/ecommerce-platform/internal/domains/payments/adapters/memory"
	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/payments/domain"
)

func newWalletService() *Service {
	return NewService(
		paymentsmemory.NewWalletRepository(),
		paymentsmemory.NewPaymentRepository(),
		gateway.NewResolver("", nil),
	)
}

func TestGetWallet_CreatesOnFirstUse(t *testing.T) {
	svc := newWalletService()
	customerID := uuid.New()

	projection, err := svc.GetWallet(context.Background(), customerID)
	require.NoError(t, err)
	require.Equal(t, customerID, projection.Wallet.CustomerID)
	require.True(t, projection.Wallet.Balance.IsZero())
	require.Empty(t, projection.Transactions)

	again, err := svc.GetWallet(context.Background(), customerID)
	require.NoError(t, err)
	require.Equal(t, projection.Wallet.ID, again.Wallet.ID, "second lookup reuses the wallet")
}

func TestAddFunds(t *testing.T) {
	svc := newWalletService()
	customerID := uuid.New()

	projection, err := svc.AddFunds(context.Background(), customerID, decimal.NewFromInt(1500))
	require.NoError(t, err)
	require.True(t, projection.Wallet.Balance.Equal(decimal.NewFromInt(1500)))
	require.Len(t, projection.Transactions, 1)
	require.Equal(t, domain.TransactionCredit, projection.Transactions[0].Type)
	require.Equal(t, "Wallet top-up", projection.Transactions[0].Description)
}

func TestAddFunds_RejectsNonPositiveAmount(t *testing.T) {
	svc := newWalletService()

	_, err := svc.AddFunds(context.Background(), uuid.New(), decimal.Zero)
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.AddFunds(context.Background(), uuid.New(), decimal.NewFromInt(-20))
	require.ErrorIs(t, err, ErrInvalidAmount)
}

func TestCreateIntent_StubGateway(t *testing.T) {
	svc := newWalletService()

	outcome, err := svc.CreateIntent(context.Background(), uuid.New(), decimal.NewFromInt(750), "")
	require.NoError(t, err)
	require.True(t, outcome.RequiresAction)
	require.NotEmpty(t, outcome.ClientSecret)
}

func TestCreateIntent_RejectsNonPositiveAmount(t *testing.T) {
	svc := newWalletService()

	_, err := svc.CreateIntent(context.Background(), uuid.New(), decimal.Zero, "inr")
	require.ErrorIs(t, err, ErrInvalidAmount)
}

func TestMethods_Catalog(t *testing.T) {
	methods := Methods()
	require.Len(t, methods, 5)

	ids := make([]string, 0, len(methods))
	for _, m := range methods {
		ids = append(ids, m.ID)
	}
	require.ElementsMatch(t, []string{"card", "upi", "paypal", "wallet", "cod"}, ids)
}
