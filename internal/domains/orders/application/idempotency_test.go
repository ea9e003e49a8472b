package application

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	types "github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/application/types"
	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/domain"
)

func TestFingerprintPlaceOrder_ItemOrderDoesNotMatter(t *testing.T) {
	customerID := uuid.New()
	productA := uuid.New()
	productB := uuid.New()
	address := domain.Address{Street: "12 MG Road", City: "Bengaluru"}

	first, err := FingerprintPlaceOrder(types.PlaceOrderInput{
		CustomerID:      customerID,
		Items:           []types.CartItemInput{{ProductID: productA, Quantity: 1}, {ProductID: productB, Quantity: 2}},
		ShippingAddress: address,
		PaymentMethod:   "cod",
	})
	require.NoError(t, err)

	second, err := FingerprintPlaceOrder(types.PlaceOrderInput{
		CustomerID:      customerID,
		Items:           []types.CartItemInput{{ProductID: productB, Quantity: 2}, {ProductID: productA, Quantity: 1}},
		ShippingAddress: address,
		PaymentMethod:   "cod",
	})
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestFingerprintPlaceOrder_SensitiveToPayload(t *testing.T) {
	base := types.PlaceOrderInput{
		CustomerID:      uuid.New(),
		Items:           []types.CartItemInput{{ProductID: uuid.New(), Quantity: 1}},
		ShippingAddress: domain.Address{Street: "12 MG Road", City: "Bengaluru"},
		PaymentMethod:   "cod",
	}
	baseline, err := FingerprintPlaceOrder(base)
	require.NoError(t, err)

	changedQty := base
	changedQty.Items = []types.CartItemInput{{ProductID: base.Items[0].ProductID, Quantity: 2}}
	otherQty, err := FingerprintPlaceOrder(changedQty)
	require.NoError(t, err)
	require.NotEqual(t, baseline, otherQty)

	changedMethod := base
	changedMethod.PaymentMethod = "upi"
	otherMethod, err := FingerprintPlaceOrder(changedMethod)
	require.NoError(t, err)
	require.NotEqual(t, baseline, otherMethod)
}

func TestFingerprintPlaceOrder_IgnoresIdempotencyKey(t *testing.T) {
	input := types.PlaceOrderInput{
		CustomerID:      uuid.New(),
		Items:           []types.CartItemInput{{ProductID: uuid.New(), Quantity: 1}},
		ShippingAddress: domain.Address{Street: "12 MG Road", City: "Bengaluru"},
		PaymentMethod:   "cod",
	}
	withoutKey, err := FingerprintPlaceOrder(input)
	require.NoError(t, err)

	input.IdempotencyKey = "checkout-999"
	withKey, err := FingerprintPlaceOrder(input)
	require.NoError(t, err)
	require.Equal(t, withoutKey, withKey)
}
