package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	paymentsdomain "github.com/johithjpr-lab/ecommerce-platform/internal/domains/payments/domain"
	shipmentsdomain "github.com/johithjpr-lab/ecommerce-platform/internal/domains/shipments/domain"
)

func confirmedOrder(t *testing.T, method paymentsdomain.Method) *Order {
	t.Helper()
	address := Address{Street: "12 MG Road", City: "Bengaluru"}
	order, err := New(uuid.New(), []LineItem{lineItem("250.00", 1)}, address, method)
	require.NoError(t, err)
	return order
}

func TestTransition_HappyPath(t *testing.T) {
	order := confirmedOrder(t, paymentsdomain.MethodUPI)

	for _, status := range []Status{StatusProcessing, StatusShipped, StatusOutForDelivery, StatusDelivered} {
		require.NoError(t, order.Transition(status, ""))
		require.Equal(t, status, order.Status)
	}
	require.Len(t, order.StatusHistory, 5)
}

func TestTransition_SkippingForwardIsAllowed(t *testing.T) {
	order := confirmedOrder(t, paymentsdomain.MethodUPI)
	require.NoError(t, order.Transition(StatusShipped, "fast lane"))
}

func TestTransition_RejectsBackwards(t *testing.T) {
	order := confirmedOrder(t, paymentsdomain.MethodUPI)
	require.NoError(t, order.Transition(StatusShipped, ""))

	err := order.Transition(StatusProcessing, "")
	require.ErrorIs(t, err, ErrInvalidTransition)
	require.Equal(t, StatusShipped, order.Status)
}

func TestTransition_RejectsUnknownStatus(t *testing.T) {
	order := confirmedOrder(t, paymentsdomain.MethodUPI)
	require.ErrorIs(t, order.Transition(Status("lost"), ""), ErrInvalidStatus)
}

func TestTransition_TerminalStatesAreFinal(t *testing.T) {
	delivered := confirmedOrder(t, paymentsdomain.MethodUPI)
	require.NoError(t, delivered.Transition(StatusDelivered, ""))
	require.ErrorIs(t, delivered.Transition(StatusCancelled, ""), ErrInvalidTransition)

	cancelled := confirmedOrder(t, paymentsdomain.MethodUPI)
	require.NoError(t, cancelled.Transition(StatusCancelled, "customer request"))
	require.ErrorIs(t, cancelled.Transition(StatusProcessing, ""), ErrInvalidTransition)
}

func TestTransition_CancelFromAnyNonTerminalState(t *testing.T) {
	order := confirmedOrder(t, paymentsdomain.MethodUPI)
	require.NoError(t, order.Transition(StatusOutForDelivery, ""))
	require.NoError(t, order.Transition(StatusCancelled, "address unreachable"))
	require.True(t, order.Status.Terminal())
}

func TestSettleCashOnDelivery(t *testing.T) {
	order := confirmedOrder(t, paymentsdomain.MethodCOD)
	require.Equal(t, PaymentPending, order.PaymentStatus)

	// Not yet delivered: nothing to settle.
	require.False(t, order.SettleCashOnDelivery())

	require.NoError(t, order.Transition(StatusDelivered, ""))
	require.True(t, order.SettleCashOnDelivery())
	require.Equal(t, PaymentPaid, order.PaymentStatus)

	prepaid := confirmedOrder(t, paymentsdomain.MethodUPI)
	require.NoError(t, prepaid.Transition(StatusDelivered, ""))
	require.False(t, prepaid.SettleCashOnDelivery())
}

func TestShipmentStatusFor(t *testing.T) {
	cases := map[Status]shipmentsdomain.Status{
		StatusProcessing:     shipmentsdomain.StatusPreparing,
		StatusShipped:        shipmentsdomain.StatusInTransit,
		StatusOutForDelivery: shipmentsdomain.StatusOutForDelivery,
		StatusDelivered:      shipmentsdomain.StatusDelivered,
	}
	for orderStatus, want := range cases {
		got, ok := ShipmentStatusFor(orderStatus)
		require.True(t, ok, orderStatus)
		require.Equal(t, want, got)
	}

	_, ok := ShipmentStatusFor(StatusConfirmed)
	require.False(t, ok)
	_, ok = ShipmentStatusFor(StatusCancelled)
	require.False(t, ok)
}
