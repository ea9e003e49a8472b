//go:build integration
// +build integration

// To enable gopls support for this file, add the following to your VSCode settings.json:
// "gopls": {
//   "buildFlags": ["-tags=integration"]
// }

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	orderspostgres "github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/adapters/persistence/postgres"
	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/domain"
	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/ports"
	paymentsdomain "github.com/johithjpr-lab/ecommerce-platform/internal/domains/payments/domain"
	"github.com/johithjpr-lab/ecommerce-platform/internal/platform/migrations"
)

func setupPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("gadgetzone_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func newOrder(t *testing.T, customerID uuid.UUID) *domain.Order {
	t.Helper()
	order, err := domain.New(
		customerID,
		[]domain.LineItem{{
			ProductID: uuid.New(),
			Name:      "Aurora Buds Pro",
			Price:     decimal.RequireFromString("500.00"),
			Quantity:  2,
			Image:     "https://cdn.example.com/buds.jpg",
		}},
		domain.Address{Street: "12 MG Road", City: "Bengaluru", State: "KA", ZipCode: "560001"},
		paymentsdomain.MethodUPI,
	)
	require.NoError(t, err)
	return order
}

func TestOrderRepository_SaveAndGetByID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := orderspostgres.NewRepository(db)
	ctx := context.Background()

	order := newOrder(t, uuid.New())
	saved, err := repo.Save(ctx, order)
	require.NoError(t, err)
	assert.Equal(t, order.OrderNumber, saved.OrderNumber)

	retrieved, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, retrieved.Status)
	assert.True(t, retrieved.Total.Equal(order.Total))
	require.Len(t, retrieved.Items, 1)
	assert.Equal(t, "Aurora Buds Pro", retrieved.Items[0].Name)
	assert.Equal(t, 2, retrieved.Items[0].Quantity)
	require.Len(t, retrieved.StatusHistory, 1)
	assert.Equal(t, "Order placed successfully", retrieved.StatusHistory[0].Note)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestOrderRepository_StatusUpdateAppendsHistory(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := orderspostgres.NewRepository(db)
	ctx := context.Background()

	order := newOrder(t, uuid.New())
	_, err := repo.Save(ctx, order)
	require.NoError(t, err)

	require.NoError(t, order.Transition(domain.StatusShipped, "left warehouse"))
	updated, err := repo.Save(ctx, order)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusShipped, updated.Status)
	require.Len(t, updated.StatusHistory, 2)
	assert.Equal(t, "left warehouse", updated.StatusHistory[1].Note)
	require.Len(t, updated.Items, 1, "items written once, never duplicated")
}

func TestOrderRepository_ListByCustomer(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := orderspostgres.NewRepository(db)
	ctx := context.Background()

	customerID := uuid.New()
	for i := 0; i < 2; i++ {
		_, err := repo.Save(ctx, newOrder(t, customerID))
		require.NoError(t, err)
	}
	_, err := repo.Save(ctx, newOrder(t, uuid.New()))
	require.NoError(t, err)

	orders, err := repo.ListByCustomer(ctx, customerID)
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}

func TestOrderRepository_ListWithStatusFilter(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := orderspostgres.NewRepository(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := repo.Save(ctx, newOrder(t, uuid.New()))
		require.NoError(t, err)
	}
	shipped := newOrder(t, uuid.New())
	_, err := repo.Save(ctx, shipped)
	require.NoError(t, err)
	require.NoError(t, shipped.Transition(domain.StatusShipped, ""))
	_, err = repo.Save(ctx, shipped)
	require.NoError(t, err)

	page, err := repo.List(ctx, ports.ListFilter{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page.Orders, 2)
	assert.EqualValues(t, 4, page.Total)
	assert.Equal(t, 2, page.Pages)

	filtered, err := repo.List(ctx, ports.ListFilter{Status: "shipped", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, filtered.Orders, 1)
	assert.EqualValues(t, 1, filtered.Total)
}

func TestAttemptAndIdempotencyStores(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	ctx := context.Background()

	attempts := orderspostgres.NewAttemptStore(db)
	attempt := ports.NewPlacementAttempt(uuid.New())
	attempt.MarkStep(ports.StepCartValidated)
	require.NoError(t, attempts.Save(ctx, attempt))
	orderID := uuid.New()
	attempt.MarkStep(ports.StepPaymentCharged)
	attempt.Complete(orderID)
	require.NoError(t, attempts.Save(ctx, attempt), "save upserts by attempt id")

	keys := orderspostgres.NewIdempotencyStore(db)
	record, err := keys.Save(ctx, ports.IdempotencyRecord{Key: "checkout-1", RequestHash: "abc", OrderID: orderID})
	require.NoError(t, err)
	assert.Equal(t, orderID, record.OrderID)

	loaded, err := keys.Get(ctx, "checkout-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "abc", loaded.RequestHash)

	missing, err := keys.Get(ctx, "checkout-2")
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = keys.Save(ctx, ports.IdempotencyRecord{Key: "checkout-1", RequestHash: "different", OrderID: uuid.New()})
	assert.ErrorIs(t, err, ports.ErrIdempotencyConflict)
}
