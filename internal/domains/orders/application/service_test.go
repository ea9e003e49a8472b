package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	catalogmemory "github.com/johithjpr-lab/ecommerce-platform/internal/domains/catalog/adapters/memory"
	catalogdomain "github.com/johithjpr-lab/ecommerce-platform/internal/domains/catalog/domain"
	ordersmemory "github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/adapters/memory"
	types "github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/application/types"
	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/domain"
	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/ports"
	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/payments/adapters/gateway"
	paymentsmemory "github.com/johithjpr-lab/ecommerce-platform/internal/domains/payments/adapters/memory"
	paymentsdomain "github.com/johithjpr-lab/ecommerce-platform/internal/domains/payments/domain"
	paymentsports "github.com/johithjpr-lab/ecommerce-platform/internal/domains/payments/ports"
	shipmentsmemory "github.com/johithjpr-lab/ecommerce-platform/internal/domains/shipments/adapters/memory"
	shipmentsapp "github.com/johithjpr-lab/ecommerce-platform/internal/domains/shipments/application"
	shipmentsdomain "github.com/johithjpr-lab/ecommerce-platform/internal/domains/shipments/domain"
)

type recordingNotifier struct {
	placed  []string
	changed []string
}

func (n *recordingNotifier) OrderPlaced(_ context.Context, order *domain.Order) error {
	n.placed = append(n.placed, order.OrderNumber)
	return nil
}

func (n *recordingNotifier) OrderStatusChanged(_ context.Context, order *domain.Order) error {
	n.changed = append(n.changed, order.OrderNumber)
	return nil
}

type decliningGateway struct{ reason string }

func (g decliningGateway) Charge(_ context.Context, _ paymentsports.ChargeRequest) (paymentsports.Outcome, error) {
	return paymentsports.Outcome{Success: false, Reason: g.reason}, nil
}

type testEnv struct {
	service   *Service
	catalog   *catalogmemory.Repository
	wallets   *paymentsmemory.WalletRepository
	payments  *paymentsmemory.PaymentRepository
	shipments *shipmentsapp.Service
	attempts  *ordersmemory.AttemptStore
	resolver  *gateway.Resolver
	notifier  *recordingNotifier
	product   *catalogdomain.Product
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	catalog := catalogmemory.NewRepository()
	product, err := catalog.Save(context.Background(), &catalogdomain.Product{
		Name:      "Aurora Buds Pro",
		Price:     decimal.RequireFromString("500.00"),
		Images:    []string{"https://cdn.example.com/buds.jpg"},
		Inventory: 10,
		Active:    true,
	})
	require.NoError(t, err)

	wallets := paymentsmemory.NewWalletRepository()
	payments := paymentsmemory.NewPaymentRepository()
	shipments := shipmentsapp.NewService(shipmentsmemory.NewRepository())
	attempts := ordersmemory.NewAttemptStore()
	resolver := gateway.NewResolver("", nil)
	notifier := &recordingNotifier{}

	service := NewService(Deps{
		Orders:      ordersmemory.NewRepository(),
		Attempts:    attempts,
		Idempotency: ordersmemory.NewIdempotencyStore(),
		Catalog:     catalog,
		Wallets:     wallets,
		Payments:    payments,
		Gateways:    resolver,
		Shipments:   shipments,
		Notifier:    notifier,
	})
	return &testEnv{
		service:   service,
		catalog:   catalog,
		wallets:   wallets,
		payments:  payments,
		shipments: shipments,
		attempts:  attempts,
		resolver:  resolver,
		notifier:  notifier,
		product:   product,
	}
}

func (e *testEnv) placeInput(method string, qty int) types.PlaceOrderInput {
	return types.PlaceOrderInput{
		CustomerID:      uuid.New(),
		Items:           []types.CartItemInput{{ProductID: e.product.ID, Quantity: qty}},
		ShippingAddress: domain.Address{Street: "12 MG Road", City: "Bengaluru", State: "KA", ZipCode: "560001"},
		PaymentMethod:   method,
	}
}

func TestPlaceOrder_CashOnDelivery(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.service.PlaceOrder(context.Background(), env.placeInput("cod", 2))
	require.NoError(t, err)
	require.False(t, result.RequiresAction)
	require.NotNil(t, result.Order)

	order := result.Order
	require.Equal(t, domain.StatusConfirmed, order.Status)
	require.Equal(t, domain.PaymentPending, order.PaymentStatus)
	require.True(t, order.Subtotal.Equal(decimal.RequireFromString("1000.00")))
	require.True(t, order.ShippingCost.Equal(decimal.NewFromInt(99)))

	require.NotNil(t, result.Payment)
	require.Equal(t, paymentsdomain.StatusPending, result.Payment.Status)
	require.Equal(t, "cod", result.Payment.Gateway)

	require.NotNil(t, result.Shipment)
	require.Equal(t, shipmentsdomain.StatusPreparing, result.Shipment.Status)
	require.Contains(t, result.Shipment.Destination.Address, "12 MG Road")

	product, err := env.catalog.GetByID(context.Background(), env.product.ID)
	require.NoError(t, err)
	require.Equal(t, 8, product.Inventory)

	require.Equal(t, []string{order.OrderNumber}, env.notifier.placed)
}

func TestPlaceOrder_PrepaidMarksOrderPaid(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.service.PlaceOrder(context.Background(), env.placeInput("upi", 1))
	require.NoError(t, err)
	require.Equal(t, domain.PaymentPaid, result.Order.PaymentStatus)
	require.Equal(t, paymentsdomain.StatusCompleted, result.Payment.Status)
}

func TestPlaceOrder_WalletDebitsBalance(t *testing.T) {
	env := newTestEnv(t)
	input := env.placeInput("wallet", 1)

	wallet := paymentsdomain.NewWallet(input.CustomerID)
	_, err := wallet.Credit(decimal.NewFromInt(2000), "seed")
	require.NoError(t, err)
	_, err = env.wallets.Save(context.Background(), wallet)
	require.NoError(t, err)

	result, err := env.service.PlaceOrder(context.Background(), input)
	require.NoError(t, err)

	updated, err := env.wallets.GetByCustomerID(context.Background(), input.CustomerID)
	require.NoError(t, err)
	require.True(t, updated.Balance.Equal(decimal.NewFromInt(2000).Sub(result.Order.Total)),
		"balance %s after total %s", updated.Balance, result.Order.Total)

	ledger, err := env.wallets.ListTransactions(context.Background(), wallet.ID)
	require.NoError(t, err)
	require.Len(t, ledger, 1)
	require.Equal(t, paymentsdomain.TransactionDebit, ledger[0].Type)
}

func TestPlaceOrder_WalletInsufficientFunds(t *testing.T) {
	env := newTestEnv(t)
	input := env.placeInput("wallet", 1)

	wallet := paymentsdomain.NewWallet(input.CustomerID)
	_, err := wallet.Credit(decimal.NewFromInt(10), "seed")
	require.NoError(t, err)
	_, err = env.wallets.Save(context.Background(), wallet)
	require.NoError(t, err)

	_, err = env.service.PlaceOrder(context.Background(), input)
	require.ErrorIs(t, err, ErrInsufficientFunds)

	product, err := env.catalog.GetByID(context.Background(), env.product.ID)
	require.NoError(t, err)
	require.Equal(t, 10, product.Inventory, "inventory untouched on failed charge")
}

func TestPlaceOrder_NoWalletOnFile(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.service.PlaceOrder(context.Background(), env.placeInput("wallet", 1))
	require.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestPlaceOrder_CardWithoutTokenRequiresAction(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.service.PlaceOrder(context.Background(), env.placeInput("card", 1))
	require.NoError(t, err)
	require.True(t, result.RequiresAction)
	require.NotEmpty(t, result.ClientSecret)
	require.Nil(t, result.Order, "no order exists until the client confirms the card")

	product, err := env.catalog.GetByID(context.Background(), env.product.ID)
	require.NoError(t, err)
	require.Equal(t, 10, product.Inventory)
}

func TestPlaceOrder_CardWithToken(t *testing.T) {
	env := newTestEnv(t)
	input := env.placeInput("card", 1)
	input.PaymentMethodID = "pm_test_visa"

	result, err := env.service.PlaceOrder(context.Background(), input)
	require.NoError(t, err)
	require.False(t, result.RequiresAction)
	require.NotNil(t, result.Order)
}

func TestPlaceOrder_GatewayDecline(t *testing.T) {
	env := newTestEnv(t)
	env.resolver.With(paymentsdomain.MethodUPI, decliningGateway{reason: "collect request expired"})

	_, err := env.service.PlaceOrder(context.Background(), env.placeInput("upi", 1))
	require.ErrorIs(t, err, ErrPaymentFailed)

	var paymentErr *PaymentError
	require.ErrorAs(t, err, &paymentErr)
	require.Equal(t, "collect request expired", paymentErr.Reason)
}

func TestPlaceOrder_UnknownProduct(t *testing.T) {
	env := newTestEnv(t)
	input := env.placeInput("cod", 1)
	input.Items[0].ProductID = uuid.New()

	_, err := env.service.PlaceOrder(context.Background(), input)
	require.ErrorIs(t, err, ErrInsufficientStock)
}

func TestPlaceOrder_InsufficientStock(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.PlaceOrder(context.Background(), env.placeInput("cod", 11))
	var stockErr *StockError
	require.ErrorAs(t, err, &stockErr)
	require.Equal(t, "Aurora Buds Pro", stockErr.ProductName)
}

func TestPlaceOrder_InvalidRequests(t *testing.T) {
	env := newTestEnv(t)

	input := env.placeInput("gold", 1)
	_, err := env.service.PlaceOrder(context.Background(), input)
	require.ErrorIs(t, err, ErrInvalidRequest)

	input = env.placeInput("cod", 1)
	input.Items = nil
	_, err = env.service.PlaceOrder(context.Background(), input)
	require.ErrorIs(t, err, ErrInvalidRequest)

	input = env.placeInput("cod", 1)
	input.ShippingAddress = domain.Address{}
	_, err = env.service.PlaceOrder(context.Background(), input)
	require.ErrorIs(t, err, ErrInvalidRequest)

	input = env.placeInput("cod", 0)
	_, err = env.service.PlaceOrder(context.Background(), input)
	require.ErrorIs(t, err, ErrInvalidRequest)
}

func TestPlaceOrder_IdempotentReplay(t *testing.T) {
	env := newTestEnv(t)
	input := env.placeInput("cod", 1)
	input.IdempotencyKey = "checkout-123"

	first, err := env.service.PlaceOrder(context.Background(), input)
	require.NoError(t, err)

	second, err := env.service.PlaceOrder(context.Background(), input)
	require.NoError(t, err)
	require.Equal(t, first.Order.ID, second.Order.ID)

	product, err := env.catalog.GetByID(context.Background(), env.product.ID)
	require.NoError(t, err)
	require.Equal(t, 9, product.Inventory, "replay must not decrement again")
}

func TestPlaceOrder_IdempotencyKeyReuseConflict(t *testing.T) {
	env := newTestEnv(t)
	input := env.placeInput("cod", 1)
	input.IdempotencyKey = "checkout-123"

	_, err := env.service.PlaceOrder(context.Background(), input)
	require.NoError(t, err)

	input.Items[0].Quantity = 3
	_, err = env.service.PlaceOrder(context.Background(), input)
	require.ErrorIs(t, err, ports.ErrIdempotencyConflict)
}

func TestAdvanceStatus_CascadesToShipment(t *testing.T) {
	env := newTestEnv(t)
	placed, err := env.service.PlaceOrder(context.Background(), env.placeInput("upi", 1))
	require.NoError(t, err)

	order, err := env.service.AdvanceStatus(context.Background(), types.AdvanceStatusInput{
		OrderID: placed.Order.ID,
		Status:  "shipped",
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusShipped, order.Status)
	require.Equal(t, "Status updated to shipped", order.StatusHistory[len(order.StatusHistory)-1].Note)

	shipment, err := env.shipments.GetByOrder(context.Background(), order.ID)
	require.NoError(t, err)
	require.Equal(t, shipmentsdomain.StatusInTransit, shipment.Status)

	require.Equal(t, []string{order.OrderNumber}, env.notifier.changed)
}

func TestAdvanceStatus_DeliveredSettlesCashOnDelivery(t *testing.T) {
	env := newTestEnv(t)
	placed, err := env.service.PlaceOrder(context.Background(), env.placeInput("cod", 1))
	require.NoError(t, err)

	order, err := env.service.AdvanceStatus(context.Background(), types.AdvanceStatusInput{
		OrderID: placed.Order.ID,
		Status:  "delivered",
		Note:    "left with neighbour",
	})
	require.NoError(t, err)
	require.Equal(t, domain.PaymentPaid, order.PaymentStatus)

	payment, err := env.payments.GetByOrderID(context.Background(), order.ID)
	require.NoError(t, err)
	require.Equal(t, paymentsdomain.StatusCompleted, payment.Status)

	shipment, err := env.shipments.GetByOrder(context.Background(), order.ID)
	require.NoError(t, err)
	require.Equal(t, shipmentsdomain.StatusDelivered, shipment.Status)
	require.NotNil(t, shipment.ActualDelivery)
}

func TestAdvanceStatus_RejectsInvalidTransitions(t *testing.T) {
	env := newTestEnv(t)
	placed, err := env.service.PlaceOrder(context.Background(), env.placeInput("upi", 1))
	require.NoError(t, err)

	_, err = env.service.AdvanceStatus(context.Background(), types.AdvanceStatusInput{
		OrderID: placed.Order.ID,
		Status:  "teleported",
	})
	require.ErrorIs(t, err, ErrInvalidRequest)

	_, err = env.service.AdvanceStatus(context.Background(), types.AdvanceStatusInput{
		OrderID: placed.Order.ID,
		Status:  "cancelled",
	})
	require.NoError(t, err)

	_, err = env.service.AdvanceStatus(context.Background(), types.AdvanceStatusInput{
		OrderID: placed.Order.ID,
		Status:  "processing",
	})
	require.ErrorIs(t, err, ErrInvalidRequest)
}

func TestAdvanceStatus_UnknownOrder(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.service.AdvanceStatus(context.Background(), types.AdvanceStatusInput{
		OrderID: uuid.New(),
		Status:  "processing",
	})
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestGetOrder_ScopedToOwner(t *testing.T) {
	env := newTestEnv(t)
	input := env.placeInput("upi", 1)
	placed, err := env.service.PlaceOrder(context.Background(), input)
	require.NoError(t, err)

	detail, err := env.service.GetOrder(context.Background(), input.CustomerID, placed.Order.ID)
	require.NoError(t, err)
	require.Equal(t, placed.Order.ID, detail.Order.ID)
	require.NotNil(t, detail.Payment)
	require.NotNil(t, detail.Shipment)

	_, err = env.service.GetOrder(context.Background(), uuid.New(), placed.Order.ID)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestListOrders_NewestFirst(t *testing.T) {
	env := newTestEnv(t)
	input := env.placeInput("upi", 1)
	first, err := env.service.PlaceOrder(context.Background(), input)
	require.NoError(t, err)
	second, err := env.service.PlaceOrder(context.Background(), input)
	require.NoError(t, err)

	orders, err := env.service.ListOrders(context.Background(), input.CustomerID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	require.Equal(t, second.Order.ID, orders[0].ID)
	require.Equal(t, first.Order.ID, orders[1].ID)
}

func TestListAllOrders_StatusFilterValidation(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.service.ListAllOrders(context.Background(), types.AdminListInput{Status: "misplaced"})
	require.ErrorIs(t, err, ErrInvalidRequest)
}

func TestListAllOrders_Pagination(t *testing.T) {
	env := newTestEnv(t)
	for i := 0; i < 3; i++ {
		_, err := env.service.PlaceOrder(context.Background(), env.placeInput("upi", 1))
		require.NoError(t, err)
	}

	page, err := env.service.ListAllOrders(context.Background(), types.AdminListInput{Page: 1, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page.Orders, 2)
	require.EqualValues(t, 3, page.Total)
	require.Equal(t, 2, page.Pages)
}
