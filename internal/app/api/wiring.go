package api

import (
	"context"
	"log/slog"

	catalogmemory "github.com/johithjpr-lab/ecommerce-platform/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/johithjpr-lab/ecommerce-platform/internal/domains/catalog/adapters/persistence/postgres"
	catalogports "github.com/johithjpr-lab/ecommerce-platform/internal/domains/catalog/ports"
	ordersmemory "github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/adapters/memory"
	ordersobs "github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/application"
	ordersports "github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/ports"
	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/payments/adapters/gateway"
	paymentsmemory "github.com/johithjpr-lab/ecommerce-platform/internal/domains/payments/adapters/memory"
	paymentspostgres "github.com/johithjpr-lab/ecommerce-platform/internal/domains/payments/adapters/persistence/postgres"
	paymentsapp "github.com/johithjpr-lab/ecommerce-platform/internal/domains/payments/application"
	paymentsports "github.com/johithjpr-lab/ecommerce-platform/internal/domains/payments/ports"
	shipmentsmemory "github.com/johithjpr-lab/ecommerce-platform/internal/domains/shipments/adapters/memory"
	shipmentspostgres "github.com/johithjpr-lab/ecommerce-platform/internal/domains/shipments/adapters/persistence/postgres"
	shipmentsapp "github.com/johithjpr-lab/ecommerce-platform/internal/domains/shipments/application"
	shipmentsports "github.com/johithjpr-lab/ecommerce-platform/internal/domains/shipments/ports"
	"github.com/johithjpr-lab/ecommerce-platform/internal/platform/migrations"
	"github.com/johithjpr-lab/ecommerce-platform/internal/platform/notify"
	platformobservability "github.com/johithjpr-lab/ecommerce-platform/internal/platform/observability"
	platformpostgres "github.com/johithjpr-lab/ecommerce-platform/internal/platform/postgres"
)

// Services bundles the wired application services shared by the API and the
// Temporal worker.
type Services struct {
	Orders   ordersports.Service
	Payments *paymentsapp.Service
	Tracking shipmentsports.Tracker
}

type repositories struct {
	orders      ordersports.Repository
	attempts    ordersports.AttemptStore
	idempotency ordersports.IdempotencyStore
	catalog     catalogports.Repository
	wallets     paymentsports.WalletRepository
	payments    paymentsports.PaymentRepository
	shipments   shipmentsports.Repository
}

// BuildServices wires repositories, gateways, and notification into the
// application services. The returned cleanup closes the database connection
// and the notifier channel.
func BuildServices(ctx context.Context, cfg Config, instruments *platformobservability.Instruments) (*Services, func(), error) {
	logger := instruments.Logger

	repos, cleanupRepos := buildRepositories(ctx, cfg, logger)

	gateways := gateway.NewResolver(cfg.StripeAPIKey, logger)
	trackingService := shipmentsapp.NewService(repos.shipments)
	paymentService := paymentsapp.NewService(repos.wallets, repos.payments, gateways)

	notifier, cleanupNotifier := buildNotifier(cfg, logger)

	orderService := ordersapp.NewService(ordersapp.Deps{
		Orders:      repos.orders,
		Attempts:    repos.attempts,
		Idempotency: repos.idempotency,
		Catalog:     repos.catalog,
		Wallets:     repos.wallets,
		Payments:    repos.payments,
		Gateways:    gateways,
		Shipments:   trackingService,
		Notifier:    notifier,
		Logger:      logger,
	})
	decorated := ordersobs.New(
		orderService,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	cleanup := func() {
		cleanupNotifier()
		cleanupRepos()
	}
	return &Services{
		Orders:   decorated,
		Payments: paymentService,
		Tracking: trackingService,
	}, cleanup, nil
}

func buildRepositories(ctx context.Context, cfg Config, logger *slog.Logger) (repositories, func()) {
	inMemory := repositories{
		orders:      ordersmemory.NewRepository(),
		attempts:    ordersmemory.NewAttemptStore(),
		idempotency: ordersmemory.NewIdempotencyStore(),
		catalog:     catalogmemory.NewRepository(),
		wallets:     paymentsmemory.NewWalletRepository(),
		payments:    paymentsmemory.NewPaymentRepository(),
		shipments:   shipmentsmemory.NewRepository(),
	}
	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory repositories")
		return inMemory, func() {}
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to memory", slog.String("error", err.Error()))
		return inMemory, func() {}
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("failed to run migrations, falling back to memory", slog.String("error", err.Error()))
		return inMemory, func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to unwrap postgres connection, falling back to memory", slog.String("error", err.Error()))
		return inMemory, func() {}
	}
	logger.Info("repositories configured with postgres")
	return repositories{
		orders:      orderspostgres.NewRepository(db),
		attempts:    orderspostgres.NewAttemptStore(db),
		idempotency: orderspostgres.NewIdempotencyStore(db),
		catalog:     catalogpostgres.NewRepository(db),
		wallets:     paymentspostgres.NewWalletRepository(db),
		payments:    paymentspostgres.NewPaymentRepository(db),
		shipments:   shipmentspostgres.NewRepository(db),
	}, func() { _ = sqlDB.Close() }
}

func buildNotifier(cfg Config, logger *slog.Logger) (ordersports.Notifier, func()) {
	if cfg.AMQPURL == "" {
		return notify.NewLogNotifier(logger), func() {}
	}
	amqpNotifier, err := notify.NewAMQPNotifier(cfg.AMQPURL)
	if err != nil {
		logger.Warn("AMQP unavailable, falling back to log notifier", slog.String("error", err.Error()))
		return notify.NewLogNotifier(logger), func() {}
	}
	logger.Info("order notifications publishing to AMQP")
	return amqpNotifier, func() { _ = amqpNotifier.Close() }
}
