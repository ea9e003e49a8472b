package domain

import (
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTestShipment() *Shipment {
	return New(uuid.New(), uuid.New(), Location{Address: "12 MG Road, Bengaluru"}, time.Now().AddDate(0, 0, 5))
}

func TestNew_ShipmentStartsPreparing(t *testing.T) {
	shipment := newTestShipment()

	require.Equal(t, StatusPreparing, shipment.Status)
	require.Equal(t, WarehouseOrigin, shipment.Origin)
	require.Regexp(t, regexp.MustCompile(`^GZT[0-9A-Z]+$`), shipment.TrackingNumber)
	require.Len(t, shipment.TrackingHistory, 1)
	require.Equal(t, "Order confirmed, preparing for shipment", shipment.TrackingHistory[0].Description)
}

func TestAdvance_ForwardOnly(t *testing.T) {
	shipment := newTestShipment()

	require.NoError(t, shipment.Advance(StatusInTransit, ""))
	require.Equal(t, StatusInTransit, shipment.Status)
	require.Equal(t, "Status updated to in_transit", shipment.TrackingHistory[len(shipment.TrackingHistory)-1].Description)

	err := shipment.Advance(StatusPickedUp, "")
	require.ErrorIs(t, err, ErrStatusRegression)
	require.Equal(t, StatusInTransit, shipment.Status)
}

func TestAdvance_SameStatusIsIdempotent(t *testing.T) {
	shipment := newTestShipment()
	require.NoError(t, shipment.Advance(StatusPreparing, "still packing"))
	require.Equal(t, StatusPreparing, shipment.Status)
}

func TestAdvance_DeliveredStampsActualDelivery(t *testing.T) {
	shipment := newTestShipment()
	require.Nil(t, shipment.ActualDelivery)

	require.NoError(t, shipment.Advance(StatusDelivered, "handed over"))
	require.NotNil(t, shipment.ActualDelivery)
	require.WithinDuration(t, time.Now().UTC(), *shipment.ActualDelivery, time.Minute)
}

func TestAdvance_RejectsUnknownStatus(t *testing.T) {
	shipment := newTestShipment()
	require.ErrorIs(t, shipment.Advance(Status("lost"), ""), ErrInvalidStatus)
}

func TestUpdateLocation_KeepsStatus(t *testing.T) {
	shipment := newTestShipment()
	require.NoError(t, shipment.Advance(StatusInTransit, ""))

	shipment.UpdateLocation(18.52, 73.86, "Pune Sorting Facility")
	require.Equal(t, StatusInTransit, shipment.Status)
	require.NotNil(t, shipment.CurrentLocation)
	require.Equal(t, "Pune Sorting Facility", shipment.CurrentLocation.Address)

	last := shipment.TrackingHistory[len(shipment.TrackingHistory)-1]
	require.Equal(t, "Location updated: Pune Sorting Facility", last.Description)
}
