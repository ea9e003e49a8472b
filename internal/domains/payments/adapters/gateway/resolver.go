package gateway

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/payments/domain"
	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/payments/ports"
)

var _ ports.GatewayResolver = (*Resolver)(nil)

// Resolver maps each payment method to its gateway implementation, keeping
// the method dispatch out of the order orchestrator.
type Resolver struct {
	gateways map[domain.Method]ports.Gateway
}

// NewResolver wires the default gateway set. Cards go through Stripe when an
// API key is configured, otherwise through the documented stub.
func NewResolver(stripeAPIKey string, logger *slog.Logger) *Resolver {
	var card ports.Gateway
	if strings.TrimSpace(stripeAPIKey) != "" {
		card = NewStripeGateway(stripeAPIKey)
	} else {
		if logger != nil {
			logger.Warn("STRIPE_API_KEY not set, card payments use the stub gateway")
		}
		card = NewStubCardGateway(logger)
	}
	return &Resolver{gateways: map[domain.Method]ports.Gateway{
		domain.MethodCard:   card,
		domain.MethodUPI:    NewUPIGateway(logger),
		domain.MethodPayPal: NewPayPalGateway(logger),
		domain.MethodWallet: NewWalletGateway(logger),
		domain.MethodCOD:    NewCODGateway(),
	}}
}

// Resolve returns the gateway for the method.
func (r *Resolver) Resolve(method domain.Method) (ports.Gateway, error) {
	gw, ok := r.gateways[method]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ports.ErrUnsupportedMethod, method)
	}
	return gw, nil
}

// With overrides a single method's gateway, mainly for tests.
func (r *Resolver) With(method domain.Method, gw ports.Gateway) *Resolver {
	r.gateways[method] = gw
	return r
}
