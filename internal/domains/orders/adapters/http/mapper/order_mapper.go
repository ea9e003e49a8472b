package mapper

import (
	"time"

	"github.com/google/uuid"

	types "github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/application/types"
	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/domain"
	paymentsdomain "github.com/johithjpr-lab/ecommerce-platform/internal/domains/payments/domain"
	shipmentsmapper "github.com/johithjpr-lab/ecommerce-platform/internal/domains/shipments/adapters/http/mapper"
)

// PlaceOrderRequest is the checkout payload.
type PlaceOrderRequest struct {
	Items           []CartItem     `json:"items"`
	ShippingAddress domain.Address `json:"shippingAddress"`
	PaymentMethod   string         `json:"paymentMethod"`
	PaymentMethodID string         `json:"paymentMethodId,omitempty"`
	UPIID           string         `json:"upiId,omitempty"`
	PayPalOrderID   string         `json:"paypalOrderId,omitempty"`
}

// CartItem references a catalog product by id.
type CartItem struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

// ToPlaceOrderInput maps the transport payload onto the application input.
func ToPlaceOrderInput(customerID uuid.UUID, req PlaceOrderRequest, idempotencyKey string) types.PlaceOrderInput {
	items := make([]types.CartItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, types.CartItemInput{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return types.PlaceOrderInput{
		CustomerID:      customerID,
		Items:           items,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		PaymentMethodID: req.PaymentMethodID,
		UPIID:           req.UPIID,
		PayPalOrderID:   req.PayPalOrderID,
		IdempotencyKey:  idempotencyKey,
	}
}

// LineItem is the HTTP representation of an order line.
type LineItem struct {
	ProductID uuid.UUID `json:"productId"`
	Name      string    `json:"name"`
	Price     string    `json:"price"`
	Quantity  int       `json:"quantity"`
	Image     string    `json:"image,omitempty"`
}

// StatusChange is one entry of the order's status history.
type StatusChange struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note,omitempty"`
}

// Order is the HTTP representation of the order aggregate. Money fields are
// fixed-point strings.
type Order struct {
	ID                uuid.UUID      `json:"id"`
	OrderNumber       string         `json:"orderNumber"`
	CustomerID        uuid.UUID      `json:"customerId"`
	Items             []LineItem     `json:"items"`
	ShippingAddress   domain.Address `json:"shippingAddress"`
	PaymentMethod     string         `json:"paymentMethod"`
	PaymentStatus     string         `json:"paymentStatus"`
	Status            string         `json:"status"`
	Subtotal          string         `json:"subtotal"`
	Tax               string         `json:"tax"`
	ShippingCost      string         `json:"shippingCost"`
	Total             string         `json:"total"`
	EstimatedDelivery time.Time      `json:"estimatedDelivery"`
	StatusHistory     []StatusChange `json:"statusHistory,omitempty"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}

// FromOrder maps the domain aggregate to its HTTP representation.
func FromOrder(o *domain.Order) Order {
	items := make([]LineItem, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, LineItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price.StringFixed(2),
			Quantity:  item.Quantity,
			Image:     item.Image,
		})
	}
	history := make([]StatusChange, 0, len(o.StatusHistory))
	for _, change := range o.StatusHistory {
		history = append(history, StatusChange{
			Status:    string(change.Status),
			Timestamp: change.Timestamp,
			Note:      change.Note,
		})
	}
	return Order{
		ID:                o.ID,
		OrderNumber:       o.OrderNumber,
		CustomerID:        o.CustomerID,
		Items:             items,
		ShippingAddress:   o.ShippingAddress,
		PaymentMethod:     string(o.PaymentMethod),
		PaymentStatus:     string(o.PaymentStatus),
		Status:            string(o.Status),
		Subtotal:          o.Subtotal.StringFixed(2),
		Tax:               o.Tax.StringFixed(2),
		ShippingCost:      o.ShippingCost.StringFixed(2),
		Total:             o.Total.StringFixed(2),
		EstimatedDelivery: o.EstimatedDelivery,
		StatusHistory:     history,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
}

// FromOrders maps a list of orders.
func FromOrders(orders []*domain.Order) []Order {
	list := make([]Order, 0, len(orders))
	for _, order := range orders {
		list = append(list, FromOrder(order))
	}
	return list
}

// Payment is the HTTP representation of a payment record.
type Payment struct {
	ID            uuid.UUID `json:"id"`
	OrderID       uuid.UUID `json:"orderId"`
	Method        string    `json:"method"`
	Gateway       string    `json:"gateway"`
	Amount        string    `json:"amount"`
	Status        string    `json:"status"`
	TransactionID string    `json:"transactionId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// FromPayment maps a payment record, tolerating its absence.
func FromPayment(p *paymentsdomain.Payment) *Payment {
	if p == nil {
		return nil
	}
	return &Payment{
		ID:            p.ID,
		OrderID:       p.OrderID,
		Method:        string(p.Method),
		Gateway:       p.Gateway,
		Amount:        p.Amount.StringFixed(2),
		Status:        string(p.Status),
		TransactionID: p.TransactionID,
		CreatedAt:     p.CreatedAt,
	}
}

// PlacementResponse is what POST /orders returns.
type PlacementResponse struct {
	RequiresAction bool   `json:"requiresAction,omitempty"`
	ClientSecret   string `json:"clientSecret,omitempty"`

	Order    *Order                    `json:"order,omitempty"`
	Payment  *Payment                  `json:"payment,omitempty"`
	Shipment *shipmentsmapper.Shipment `json:"shipment,omitempty"`
}

// FromPlacementResult maps the placement outcome.
func FromPlacementResult(result *types.PlacementResult) PlacementResponse {
	response := PlacementResponse{
		RequiresAction: result.RequiresAction,
		ClientSecret:   result.ClientSecret,
	}
	if result.Order != nil {
		order := FromOrder(result.Order)
		response.Order = &order
	}
	response.Payment = FromPayment(result.Payment)
	if result.Shipment != nil {
		shipment := shipmentsmapper.FromShipment(result.Shipment)
		response.Shipment = &shipment
	}
	return response
}

// OrderDetailResponse is the composed single-order view.
type OrderDetailResponse struct {
	Order    Order                     `json:"order"`
	Payment  *Payment                  `json:"payment,omitempty"`
	Shipment *shipmentsmapper.Shipment `json:"shipment,omitempty"`
}

// FromOrderDetail maps the composed view.
func FromOrderDetail(detail *types.OrderDetail) OrderDetailResponse {
	response := OrderDetailResponse{Order: FromOrder(detail.Order)}
	response.Payment = FromPayment(detail.Payment)
	if detail.Shipment != nil {
		shipment := shipmentsmapper.FromShipment(detail.Shipment)
		response.Shipment = &shipment
	}
	return response
}

// StatusUpdateRequest is the admin lifecycle payload.
type StatusUpdateRequest struct {
	Status string `json:"status"`
	Note   string `json:"note,omitempty"`
}

// PageResponse is one page of the admin listing.
type PageResponse struct {
	Orders []Order `json:"orders"`
	Total  int64   `json:"total"`
	Page   int     `json:"page"`
	Pages  int     `json:"pages"`
}

// FromOrderPage maps the admin listing page.
func FromOrderPage(page *types.OrderPage) PageResponse {
	return PageResponse{
		Orders: FromOrders(page.Orders),
		Total:  page.Total,
		Page:   page.Page,
		Pages:  page.Pages,
	}
}
