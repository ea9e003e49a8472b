package domain

import (
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	paymentsdomain "github.com/johithjpr-lab/ecommerce-platform/internal/domains/payments/domain"
)

func lineItem(price string, qty int) LineItem {
	return LineItem{
		ProductID: uuid.New(),
		Name:      "Test Gadget",
		Price:     decimal.RequireFromString(price),
		Quantity:  qty,
	}
}

func TestComputeTotals_TaxAndFlatShipping(t *testing.T) {
	totals := ComputeTotals([]LineItem{lineItem("100.00", 2)})

	require.True(t, totals.Subtotal.Equal(decimal.RequireFromString("200.00")))
	require.True(t, totals.Tax.Equal(decimal.RequireFromString("36.00")))
	require.True(t, totals.ShippingCost.Equal(decimal.NewFromInt(99)))
	require.True(t, totals.Total.Equal(decimal.RequireFromString("335.00")))
}

func TestComputeTotals_FreeShippingAboveThreshold(t *testing.T) {
	totals := ComputeTotals([]LineItem{lineItem("1200.50", 1)})

	require.True(t, totals.ShippingCost.IsZero())
	require.True(t, totals.Total.Equal(totals.Subtotal.Add(totals.Tax)))
}

func TestComputeTotals_TaxRoundsToTwoPlaces(t *testing.T) {
	// 33.33 * 0.18 = 5.9994 -> 6.00
	totals := ComputeTotals([]LineItem{lineItem("33.33", 1)})

	require.True(t, totals.Tax.Equal(decimal.RequireFromString("6.00")), "got %s", totals.Tax)
}

func TestNewOrderNumber_Format(t *testing.T) {
	number := NewOrderNumber()
	require.Regexp(t, regexp.MustCompile(`^GZ-[0-9A-Z]+-[0-9A-Z]{4}$`), number)
}

func TestNew_PrepaidOrder(t *testing.T) {
	address := Address{Street: "12 MG Road", City: "Bengaluru", State: "KA", ZipCode: "560001"}
	order, err := New(uuid.New(), []LineItem{lineItem("500.00", 1)}, address, paymentsdomain.MethodUPI)

	require.NoError(t, err)
	require.Equal(t, StatusConfirmed, order.Status)
	require.Equal(t, PaymentPaid, order.PaymentStatus)
	require.WithinDuration(t, time.Now().UTC().AddDate(0, 0, 5), order.EstimatedDelivery, time.Minute)
	require.Len(t, order.StatusHistory, 1)
	require.Equal(t, "Order placed successfully", order.StatusHistory[0].Note)
}

func TestNew_CashOnDeliveryOrder(t *testing.T) {
	address := Address{Street: "12 MG Road", City: "Bengaluru"}
	order, err := New(uuid.New(), []LineItem{lineItem("500.00", 1)}, address, paymentsdomain.MethodCOD)

	require.NoError(t, err)
	require.Equal(t, PaymentPending, order.PaymentStatus)
	require.WithinDuration(t, time.Now().UTC().AddDate(0, 0, 7), order.EstimatedDelivery, time.Minute)
}

func TestNew_RejectsEmptyCartAndAddress(t *testing.T) {
	address := Address{Street: "12 MG Road", City: "Bengaluru"}

	_, err := New(uuid.New(), nil, address, paymentsdomain.MethodCOD)
	require.ErrorIs(t, err, ErrNoItems)

	_, err = New(uuid.New(), []LineItem{lineItem("10.00", 1)}, Address{}, paymentsdomain.MethodCOD)
	require.ErrorIs(t, err, ErrMissingAddress)
}

func TestAddress_Line(t *testing.T) {
	address := Address{Street: "12 MG Road", City: "Bengaluru", State: "KA", ZipCode: "560001", Country: "India"}
	require.Equal(t, "12 MG Road, Bengaluru, KA 560001", address.Line())
}
