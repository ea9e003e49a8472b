package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	ordersworkflows "github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/adapters/workflows"
	ordersports "github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/ports"
	platformobservability "github.com/johithjpr-lab/ecommerce-platform/internal/platform/observability"
	"github.com/johithjpr-lab/ecommerce-platform/internal/shared/auth"
)

// Run boots the storefront HTTP API with observability, repositories, payment
// gateways, and the placement workflow wired.
func Run(ctx context.Context) error {
	const serviceName = "gadgetzone-api"
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	services, cleanup, err := BuildServices(ctx, cfg, instruments)
	if err != nil {
		return err
	}
	defer cleanup()

	var orchestrator ordersports.PlacementOrchestrator = ordersworkflows.NewInlineOrderWorkflows(services.Orders)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, running inline order placement", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orchestrator = ordersworkflows.NewTemporalOrderWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	responder := newResponder()
	router := NewRouter(RouterDeps{
		Orders:      NewOrdersAPI(services.Orders, orchestrator, responder),
		Tracking:    NewTrackingAPI(services.Tracking, responder),
		Payments:    NewPaymentsAPI(services.Payments, responder),
		Verifier:    auth.NewHMACVerifier(cfg.AuthSecret),
		ServiceName: serviceName,
	})

	addr := ":" + cfg.Port
	logger.Info("storefront API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("storefront API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	logger := workerlog.NewStructuredLogger(effectiveLogger(instruments))
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    logger,
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
