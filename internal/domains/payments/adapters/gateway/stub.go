package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/payments/domain"
	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/payments/ports"
)

// The UPI and PayPal gateways are documented always-succeed stubs: no live
// integration exists yet, so they log the charge and mint a transaction id.
// Swapping in a real Razorpay/PayPal client only touches this file.

var (
	_ ports.Gateway = (*UPIGateway)(nil)
	_ ports.Gateway = (*PayPalGateway)(nil)
	_ ports.Gateway = (*WalletGateway)(nil)
	_ ports.Gateway = (*CODGateway)(nil)
	_ ports.Gateway = (*StubCardGateway)(nil)
)

// UPIGateway settles single-call UPI collect requests.
type UPIGateway struct {
	logger *slog.Logger
}

func NewUPIGateway(logger *slog.Logger) *UPIGateway {
	return &UPIGateway{logger: logger}
}

func (g *UPIGateway) Charge(ctx context.Context, req ports.ChargeRequest) (ports.Outcome, error) {
	if g.logger != nil {
		g.logger.InfoContext(ctx, "processing UPI charge",
			slog.String("upiId", req.UPIID), slog.String("amount", req.Amount.StringFixed(2)))
	}
	return ports.Outcome{
		Success:       true,
		TransactionID: mintTransactionID("upi"),
		Status:        domain.StatusCompleted,
	}, nil
}

// PayPalGateway captures PayPal orders approved on the client side.
type PayPalGateway struct {
	logger *slog.Logger
}

func NewPayPalGateway(logger *slog.Logger) *PayPalGateway {
	return &PayPalGateway{logger: logger}
}

func (g *PayPalGateway) Charge(ctx context.Context, req ports.ChargeRequest) (ports.Outcome, error) {
	if g.logger != nil {
		g.logger.InfoContext(ctx, "processing PayPal capture", slog.String("paypalOrderId", req.PayPalOrderID))
	}
	return ports.Outcome{
		Success:       true,
		TransactionID: mintTransactionID("pp"),
		Status:        domain.StatusCompleted,
	}, nil
}

// WalletGateway only issues bookkeeping transaction ids. The balance check
// and debit happen in the order orchestrator before this gateway is called.
type WalletGateway struct {
	logger *slog.Logger
}

func NewWalletGateway(logger *slog.Logger) *WalletGateway {
	return &WalletGateway{logger: logger}
}

func (g *WalletGateway) Charge(ctx context.Context, req ports.ChargeRequest) (ports.Outcome, error) {
	if g.logger != nil {
		g.logger.InfoContext(ctx, "recording wallet charge",
			slog.String("walletId", req.WalletID.String()), slog.String("amount", req.Amount.StringFixed(2)))
	}
	return ports.Outcome{
		Success:       true,
		TransactionID: mintTransactionID("wlt"),
		Status:        domain.StatusCompleted,
	}, nil
}

// CODGateway always "succeeds" with a pending status; cash changes hands at
// the door and settlement happens on delivery.
type CODGateway struct{}

func NewCODGateway() *CODGateway {
	return &CODGateway{}
}

func (g *CODGateway) Charge(_ context.Context, _ ports.ChargeRequest) (ports.Outcome, error) {
	return ports.Outcome{
		Success:       true,
		TransactionID: mintTransactionID("cod"),
		Status:        domain.StatusPending,
	}, nil
}

// StubCardGateway replaces Stripe when no API key is configured, so local
// environments can exercise the card flow end to end.
type StubCardGateway struct {
	logger *slog.Logger
}

func NewStubCardGateway(logger *slog.Logger) *StubCardGateway {
	return &StubCardGateway{logger: logger}
}

func (g *StubCardGateway) Charge(ctx context.Context, req ports.ChargeRequest) (ports.Outcome, error) {
	if req.PaymentMethodID == "" {
		return ports.Outcome{
			Success:        true,
			TransactionID:  mintTransactionID("pi"),
			Status:         domain.StatusPending,
			RequiresAction: true,
			ClientSecret:   mintTransactionID("pi_secret"),
		}, nil
	}
	if g.logger != nil {
		g.logger.InfoContext(ctx, "processing stub card charge", slog.String("amount", req.Amount.StringFixed(2)))
	}
	return ports.Outcome{
		Success:       true,
		TransactionID: mintTransactionID("pi"),
		Status:        domain.StatusCompleted,
	}, nil
}

func mintTransactionID(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixMilli())
}
