package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	shipmentsmapper "github.com/johithjpr-lab/ecommerce-platform/internal/domains/shipments/adapters/http/mapper"
	shipmentsports "github.com/johithjpr-lab/ecommerce-platform/internal/domains/shipments/ports"
	"github.com/johithjpr-lab/ecommerce-platform/internal/shared/auth"
	apierrors "github.com/johithjpr-lab/ecommerce-platform/internal/shared/errors"
)

// TrackingAPI exposes shipment tracking over HTTP.
type TrackingAPI struct {
	tracker   shipmentsports.Tracker
	responder *apierrors.ChainedResponder
}

func NewTrackingAPI(tracker shipmentsports.Tracker, responder *apierrors.ChainedResponder) *TrackingAPI {
	return &TrackingAPI{tracker: tracker, responder: responder}
}

// GetByOrder handles GET /tracking/order/:orderId. Customers only see their
// own shipments; admins see everything.
func (a *TrackingAPI) GetByOrder(c *gin.Context) {
	identity, ok := auth.FromContext(c)
	if !ok {
		apierrors.Respond(c, apierrors.ErrUnauthorized)
		return
	}
	orderID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		apierrors.Respond(c, apierrors.ErrValidation.WithDetail("order id must be a UUID"))
		return
	}
	shipment, err := a.tracker.GetByOrder(c.Request.Context(), orderID)
	if err != nil {
		a.responder.RespondError(c, err)
		return
	}
	if !identity.IsAdmin() && shipment.CustomerID != identity.CustomerID {
		apierrors.Respond(c, apierrors.ErrNotFound.WithDetail("shipment not found"))
		return
	}
	c.JSON(http.StatusOK, shipmentsmapper.FromShipment(shipment))
}

// TrackByNumber handles GET /tracking/track/:trackingNumber. Public: the
// tracking number itself is the capability.
func (a *TrackingAPI) TrackByNumber(c *gin.Context) {
	shipment, err := a.tracker.GetByTrackingNumber(c.Request.Context(), c.Param("trackingNumber"))
	if err != nil {
		a.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, shipmentsmapper.FromShipment(shipment))
}

// UpdateLocation handles PUT /tracking/:id/location (admin only).
func (a *TrackingAPI) UpdateLocation(c *gin.Context) {
	shipmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.Respond(c, apierrors.ErrValidation.WithDetail("shipment id must be a UUID"))
		return
	}
	var req shipmentsmapper.LocationUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	shipment, err := a.tracker.UpdateLocation(c.Request.Context(), shipmentID, req.Lat, req.Lng, req.Address)
	if err != nil {
		a.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, shipmentsmapper.FromShipment(shipment))
}

// ListAll handles GET /tracking/admin/all (admin only).
func (a *TrackingAPI) ListAll(c *gin.Context) {
	shipments, err := a.tracker.ListAll(c.Request.Context())
	if err != nil {
		a.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shipments": shipmentsmapper.FromShipments(shipments)})
}
