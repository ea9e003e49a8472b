package application

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"

	types "github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/application/types"
	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/domain"
)

type normalizedPlaceOrder struct {
	CustomerID      string               `json:"customerId"`
	Items           []normalizedCartItem `json:"items"`
	ShippingAddress domain.Address       `json:"shippingAddress"`
	PaymentMethod   string               `json:"paymentMethod"`
	PaymentMethodID string               `json:"paymentMethodId,omitempty"`
	UPIID           string               `json:"upiId,omitempty"`
	PayPalOrderID   string               `json:"paypalOrderId,omitempty"`
}

type normalizedCartItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// FingerprintPlaceOrder builds a deterministic hash of the checkout payload,
// excluding the idempotency key itself. Cart item order does not matter.
func FingerprintPlaceOrder(input types.PlaceOrderInput) (string, error) {
	items := make([]normalizedCartItem, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, normalizedCartItem{ProductID: item.ProductID.String(), Quantity: item.Quantity})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })
	normalized := normalizedPlaceOrder{
		CustomerID:      input.CustomerID.String(),
		Items:           items,
		ShippingAddress: input.ShippingAddress,
		PaymentMethod:   input.PaymentMethod,
		PaymentMethodID: input.PaymentMethodID,
		UPIID:           input.UPIID,
		PayPalOrderID:   input.PayPalOrderID,
	}
	payload, err := json.Marshal(normalized)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}
