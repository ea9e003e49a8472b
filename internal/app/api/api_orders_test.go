package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	catalogmemory "github.com/johithjpr-lab/ecommerce-platform/internal/domains/catalog/adapters/memory"
	catalogdomain "github.com/johithjpr-lab/ecommerce-platform/internal/domains/catalog/domain"
	ordersmemory "github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/adapters/memory"
	ordersworkflows "github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/application"
	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/payments/adapters/gateway"
	paymentsmemory "github.com/johithjpr-lab/ecommerce-platform/internal/domains/payments/adapters/memory"
	paymentsapp "github.com/johithjpr-lab/ecommerce-platform/internal/domains/payments/application"
	shipmentsmemory "github.com/johithjpr-lab/ecommerce-platform/internal/domains/shipments/adapters/memory"
	shipmentsapp "github.com/johithjpr-lab/ecommerce-platform/internal/domains/shipments/application"
	"github.com/johithjpr-lab/ecommerce-platform/internal/shared/auth"
)

type apiFixture struct {
	router    *gin.Engine
	verifier  *auth.HMACVerifier
	productID uuid.UUID
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog := catalogmemory.NewRepository()
	product, err := catalog.Save(context.Background(), &catalogdomain.Product{
		Name:      "Aurora Buds Pro",
		Price:     decimal.RequireFromString("500.00"),
		Inventory: 10,
		Active:    true,
	})
	require.NoError(t, err)

	wallets := paymentsmemory.NewWalletRepository()
	payments := paymentsmemory.NewPaymentRepository()
	gateways := gateway.NewResolver("", nil)
	tracking := shipmentsapp.NewService(shipmentsmemory.NewRepository())
	paymentService := paymentsapp.NewService(wallets, payments, gateways)

	orderService := ordersapp.NewService(ordersapp.Deps{
		Orders:      ordersmemory.NewRepository(),
		Attempts:    ordersmemory.NewAttemptStore(),
		Idempotency: ordersmemory.NewIdempotencyStore(),
		Catalog:     catalog,
		Wallets:     wallets,
		Payments:    payments,
		Gateways:    gateways,
		Shipments:   tracking,
	})

	verifier := auth.NewHMACVerifier("test-secret")
	responder := newResponder()
	router := NewRouter(RouterDeps{
		Orders:      NewOrdersAPI(orderService, ordersworkflows.NewInlineOrderWorkflows(orderService), responder),
		Tracking:    NewTrackingAPI(tracking, responder),
		Payments:    NewPaymentsAPI(paymentService, responder),
		Verifier:    verifier,
		ServiceName: "gadgetzone-api-test",
	})
	return &apiFixture{router: router, verifier: verifier, productID: product.ID}
}

func (f *apiFixture) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *apiFixture) placeOrderBody(qty int) map[string]any {
	return map[string]any{
		"items": []map[string]any{{"productId": f.productID.String(), "quantity": qty}},
		"shippingAddress": map[string]string{
			"street": "12 MG Road", "city": "Bengaluru", "state": "KA", "zipCode": "560001", "country": "India",
		},
		"paymentMethod": "cod",
	}
}

func TestPlaceOrderEndpoint_Created(t *testing.T) {
	fixture := newAPIFixture(t)
	token := fixture.verifier.Sign(auth.Identity{CustomerID: uuid.New(), Role: auth.RoleCustomer})

	rec := fixture.do(t, http.MethodPost, "/orders", token, fixture.placeOrderBody(2))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var response struct {
		Order struct {
			OrderNumber string `json:"orderNumber"`
			Status      string `json:"status"`
			Total       string `json:"total"`
		} `json:"order"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Regexp(t, `^GZ-`, response.Order.OrderNumber)
	require.Equal(t, "confirmed", response.Order.Status)
	require.Equal(t, "1279.00", response.Order.Total)
}

func TestPlaceOrderEndpoint_InsufficientStockProblem(t *testing.T) {
	fixture := newAPIFixture(t)
	token := fixture.verifier.Sign(auth.Identity{CustomerID: uuid.New(), Role: auth.RoleCustomer})

	rec := fixture.do(t, http.MethodPost, "/orders", token, fixture.placeOrderBody(99))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

	var problem struct {
		Type   string `json:"type"`
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	require.Equal(t, "/problems/insufficient-stock", problem.Type)
	require.Equal(t, "Aurora Buds Pro unavailable or insufficient stock", problem.Detail)
}

func TestPlaceOrderEndpoint_RequiresAuth(t *testing.T) {
	fixture := newAPIFixture(t)
	rec := fixture.do(t, http.MethodPost, "/orders", "", fixture.placeOrderBody(1))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateStatusEndpoint_AdminOnly(t *testing.T) {
	fixture := newAPIFixture(t)
	customer := auth.Identity{CustomerID: uuid.New(), Role: auth.RoleCustomer}
	customerToken := fixture.verifier.Sign(customer)

	rec := fixture.do(t, http.MethodPost, "/orders", customerToken, fixture.placeOrderBody(1))
	require.Equal(t, http.StatusCreated, rec.Code)
	var placed struct {
		Order struct {
			ID string `json:"id"`
		} `json:"order"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &placed))

	path := fmt.Sprintf("/orders/%s/status", placed.Order.ID)
	rec = fixture.do(t, http.MethodPut, path, customerToken, map[string]string{"status": "shipped"})
	require.Equal(t, http.StatusForbidden, rec.Code)

	adminToken := fixture.verifier.Sign(auth.Identity{CustomerID: uuid.New(), Role: auth.RoleAdmin})
	rec = fixture.do(t, http.MethodPut, path, adminToken, map[string]string{"status": "shipped"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestPaymentMethodsEndpoint_Public(t *testing.T) {
	fixture := newAPIFixture(t)
	rec := fixture.do(t, http.MethodGet, "/payments/methods", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Methods []struct {
			ID string `json:"id"`
		} `json:"methods"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response.Methods, 5)
}

func TestTrackingEndpoints(t *testing.T) {
	fixture := newAPIFixture(t)
	identity := auth.Identity{CustomerID: uuid.New(), Role: auth.RoleCustomer}
	token := fixture.verifier.Sign(identity)

	rec := fixture.do(t, http.MethodPost, "/orders", token, fixture.placeOrderBody(1))
	require.Equal(t, http.StatusCreated, rec.Code)
	var placed struct {
		Order struct {
			ID string `json:"id"`
		} `json:"order"`
		Shipment struct {
			TrackingNumber string `json:"trackingNumber"`
		} `json:"shipment"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &placed))
	require.NotEmpty(t, placed.Shipment.TrackingNumber)

	rec = fixture.do(t, http.MethodGet, "/tracking/order/"+placed.Order.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// The tracking number alone grants read access.
	rec = fixture.do(t, http.MethodGet, "/tracking/track/"+placed.Shipment.TrackingNumber, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// A different customer cannot read the shipment through the order route.
	otherToken := fixture.verifier.Sign(auth.Identity{CustomerID: uuid.New(), Role: auth.RoleCustomer})
	rec = fixture.do(t, http.MethodGet, "/tracking/order/"+placed.Order.ID, otherToken, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWalletEndpoints(t *testing.T) {
	fixture := newAPIFixture(t)
	token := fixture.verifier.Sign(auth.Identity{CustomerID: uuid.New(), Role: auth.RoleCustomer})

	rec := fixture.do(t, http.MethodGet, "/payments/wallet", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var wallet struct {
		Balance string `json:"balance"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &wallet))
	require.Equal(t, "0.00", wallet.Balance)

	rec = fixture.do(t, http.MethodPost, "/payments/wallet/add", token, map[string]any{"amount": "1500"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &wallet))
	require.Equal(t, "1500.00", wallet.Balance)

	rec = fixture.do(t, http.MethodPost, "/payments/wallet/add", token, map[string]any{"amount": "-5"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
