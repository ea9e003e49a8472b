package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	ordersmapper "github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/adapters/http/mapper"
	types "github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/application/types"
	ordersports "github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/ports"
	"github.com/johithjpr-lab/ecommerce-platform/internal/shared/auth"
	apierrors "github.com/johithjpr-lab/ecommerce-platform/internal/shared/errors"
)

// OrdersAPI exposes checkout and the order lifecycle over HTTP.
type OrdersAPI struct {
	service      ordersports.Service
	orchestrator ordersports.PlacementOrchestrator
	responder    *apierrors.ChainedResponder
}

func NewOrdersAPI(service ordersports.Service, orchestrator ordersports.PlacementOrchestrator, responder *apierrors.ChainedResponder) *OrdersAPI {
	return &OrdersAPI{service: service, orchestrator: orchestrator, responder: responder}
}

// PlaceOrder handles POST /orders. Returns 201 with the created order, or
// 200 with a client secret when the card flow needs client-side confirmation.
func (a *OrdersAPI) PlaceOrder(c *gin.Context) {
	identity, ok := auth.FromContext(c)
	if !ok {
		apierrors.Respond(c, apierrors.ErrUnauthorized)
		return
	}
	var req ordersmapper.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	input := ordersmapper.ToPlaceOrderInput(identity.CustomerID, req, c.GetHeader("Idempotency-Key"))
	result, err := a.orchestrator.PlaceOrder(c.Request.Context(), input)
	if err != nil {
		a.responder.RespondError(c, err)
		return
	}
	if result.RequiresAction {
		c.JSON(http.StatusOK, ordersmapper.FromPlacementResult(result))
		return
	}
	c.JSON(http.StatusCreated, ordersmapper.FromPlacementResult(result))
}

// ListOrders handles GET /orders for the authenticated customer.
func (a *OrdersAPI) ListOrders(c *gin.Context) {
	identity, ok := auth.FromContext(c)
	if !ok {
		apierrors.Respond(c, apierrors.ErrUnauthorized)
		return
	}
	orders, err := a.service.ListOrders(c.Request.Context(), identity.CustomerID)
	if err != nil {
		a.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": ordersmapper.FromOrders(orders)})
}

// GetOrder handles GET /orders/:id, scoped to the order's owner.
func (a *OrdersAPI) GetOrder(c *gin.Context) {
	identity, ok := auth.FromContext(c)
	if !ok {
		apierrors.Respond(c, apierrors.ErrUnauthorized)
		return
	}
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.Respond(c, apierrors.ErrValidation.WithDetail("order id must be a UUID"))
		return
	}
	detail, err := a.service.GetOrder(c.Request.Context(), identity.CustomerID, orderID)
	if err != nil {
		a.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordersmapper.FromOrderDetail(detail))
}

// UpdateStatus handles PUT /orders/:id/status (admin only).
func (a *OrdersAPI) UpdateStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.Respond(c, apierrors.ErrValidation.WithDetail("order id must be a UUID"))
		return
	}
	var req ordersmapper.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	order, err := a.service.AdvanceStatus(c.Request.Context(), types.AdvanceStatusInput{
		OrderID: orderID,
		Status:  req.Status,
		Note:    req.Note,
	})
	if err != nil {
		a.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordersmapper.FromOrder(order))
}

// ListAllOrders handles GET /orders/admin/all (admin only).
func (a *OrdersAPI) ListAllOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	result, err := a.service.ListAllOrders(c.Request.Context(), types.AdminListInput{
		Status: c.Query("status"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		a.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordersmapper.FromOrderPage(result))
}
