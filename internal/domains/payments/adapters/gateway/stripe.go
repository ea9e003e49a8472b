// Package gateway holds one charge implementation per payment method plus the
// resolver that picks between them.
package gateway

import (
	"context"
	"strings"

	"github.com/stripe/stripe-go/v76"
	stripeclient "github.com/stripe/stripe-go/v76/client"

	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/payments/domain"
	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/payments/ports"
)

var _ ports.Gateway = (*StripeGateway)(nil)

// StripeGateway charges cards through Stripe PaymentIntents.
//
// With a stored payment method token the charge is confirmed immediately.
// Without one it creates an unconfirmed intent and reports RequiresAction so
// the client can finish the confirmation handshake with the returned secret.
type StripeGateway struct {
	api *stripeclient.API
}

// NewStripeGateway builds the gateway around a secret API key.
func NewStripeGateway(apiKey string) *StripeGateway {
	api := &stripeclient.API{}
	api.Init(apiKey, nil)
	return &StripeGateway{api: api}
}

func (g *StripeGateway) Charge(ctx context.Context, req ports.ChargeRequest) (ports.Outcome, error) {
	if strings.TrimSpace(req.PaymentMethodID) == "" {
		return g.createIntent(ctx, req)
	}
	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(amountInMinorUnits(req)),
		Currency:      stripe.String(strings.ToLower(req.Currency)),
		PaymentMethod: stripe.String(req.PaymentMethodID),
		Confirm:       stripe.Bool(true),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
	}
	params.Context = ctx
	params.AddMetadata("customerId", req.CustomerID.String())
	intent, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return ports.Outcome{Success: false, Reason: err.Error()}, nil
	}
	return ports.Outcome{
		Success:       true,
		TransactionID: intent.ID,
		Status:        statusFromIntent(intent.Status),
	}, nil
}

// CreateIntent opens an unconfirmed PaymentIntent for the client-side flow.
func (g *StripeGateway) CreateIntent(ctx context.Context, req ports.ChargeRequest) (ports.Outcome, error) {
	return g.createIntent(ctx, req)
}

func (g *StripeGateway) createIntent(ctx context.Context, req ports.ChargeRequest) (ports.Outcome, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountInMinorUnits(req)),
		Currency: stripe.String(strings.ToLower(req.Currency)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	intent, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return ports.Outcome{Success: false, Reason: err.Error()}, nil
	}
	return ports.Outcome{
		Success:        true,
		TransactionID:  intent.ID,
		Status:         domain.StatusPending,
		RequiresAction: true,
		ClientSecret:   intent.ClientSecret,
	}, nil
}

func amountInMinorUnits(req ports.ChargeRequest) int64 {
	// Stripe amounts are integral minor units (paise for INR).
	return req.Amount.Shift(2).Round(0).IntPart()
}

func statusFromIntent(status stripe.PaymentIntentStatus) domain.Status {
	if status == stripe.PaymentIntentStatusSucceeded {
		return domain.StatusCompleted
	}
	return domain.StatusPending
}
