package gateway

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/payments/domain"
	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/payments/ports"
)

func chargeRequest() ports.ChargeRequest {
	return ports.ChargeRequest{
		CustomerID: uuid.New(),
		Amount:     decimal.NewFromInt(500),
		Currency:   "inr",
	}
}

func TestResolver_CoversEveryMethod(t *testing.T) {
	resolver := NewResolver("", nil)
	for _, method := range []domain.Method{domain.MethodCard, domain.MethodUPI, domain.MethodPayPal, domain.MethodWallet, domain.MethodCOD} {
		gw, err := resolver.Resolve(method)
		require.NoError(t, err, method)
		require.NotNil(t, gw)
	}

	_, err := resolver.Resolve(domain.Method("barter"))
	require.ErrorIs(t, err, ports.ErrUnsupportedMethod)
}

func TestCODGateway_PendingSettlement(t *testing.T) {
	outcome, err := NewCODGateway().Charge(context.Background(), chargeRequest())
	require.NoError(t, err)
	require.True(t, outcome.Success)
	require.Equal(t, domain.StatusPending, outcome.Status)
	require.True(t, strings.HasPrefix(outcome.TransactionID, "cod_"))
}

func TestStubCardGateway_RequiresActionWithoutToken(t *testing.T) {
	gw := NewStubCardGateway(nil)

	outcome, err := gw.Charge(context.Background(), chargeRequest())
	require.NoError(t, err)
	require.True(t, outcome.RequiresAction)
	require.NotEmpty(t, outcome.ClientSecret)

	req := chargeRequest()
	req.PaymentMethodID = "pm_test_visa"
	outcome, err = gw.Charge(context.Background(), req)
	require.NoError(t, err)
	require.False(t, outcome.RequiresAction)
	require.Equal(t, domain.StatusCompleted, outcome.Status)
}

func TestStubGateways_TransactionPrefixes(t *testing.T) {
	upi, err := NewUPIGateway(nil).Charge(context.Background(), chargeRequest())
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(upi.TransactionID, "upi_"))

	paypal, err := NewPayPalGateway(nil).Charge(context.Background(), chargeRequest())
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(paypal.TransactionID, "pp_"))

	wallet, err := NewWalletGateway(nil).Charge(context.Background(), chargeRequest())
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(wallet.TransactionID, "wlt_"))
}
