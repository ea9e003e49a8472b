package application

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	shipmentsmemory "github.com/johithjpr-lab/ecommerce-platform/internal/domains/shipments/adapters/memory"
	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/shipments/domain"
	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/shipments/ports"
)

func newTracker() *Service {
	return NewService(shipmentsmemory.NewRepository())
}

func createShipment(t *testing.T, svc *Service) *domain.Shipment {
	t.Helper()
	shipment, err := svc.CreateForOrder(context.Background(), ports.CreateShipmentInput{
		OrderID:           uuid.New(),
		CustomerID:        uuid.New(),
		Destination:       domain.Location{Address: "12 MG Road, Bengaluru"},
		EstimatedDelivery: time.Now().AddDate(0, 0, 5),
	})
	require.NoError(t, err)
	return shipment
}

func TestCreateForOrder(t *testing.T) {
	svc := newTracker()
	shipment := createShipment(t, svc)

	require.Equal(t, domain.StatusPreparing, shipment.Status)
	require.NotEmpty(t, shipment.TrackingNumber)

	_, err := svc.CreateForOrder(context.Background(), ports.CreateShipmentInput{})
	require.Error(t, err)
}

func TestAdvanceStatusByOrder(t *testing.T) {
	svc := newTracker()
	shipment := createShipment(t, svc)

	advanced, err := svc.AdvanceStatusByOrder(context.Background(), shipment.OrderID, domain.StatusInTransit, "left warehouse")
	require.NoError(t, err)
	require.Equal(t, domain.StatusInTransit, advanced.Status)

	_, err = svc.AdvanceStatusByOrder(context.Background(), shipment.OrderID, domain.StatusPickedUp, "")
	require.ErrorIs(t, err, domain.ErrStatusRegression)

	_, err = svc.AdvanceStatusByOrder(context.Background(), uuid.New(), domain.StatusInTransit, "")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestUpdateLocation(t *testing.T) {
	svc := newTracker()
	shipment := createShipment(t, svc)

	updated, err := svc.UpdateLocation(context.Background(), shipment.ID, 18.52, 73.86, "Pune Sorting Facility")
	require.NoError(t, err)
	require.Equal(t, domain.StatusPreparing, updated.Status)
	require.Equal(t, "Pune Sorting Facility", updated.CurrentLocation.Address)
}

func TestLookups(t *testing.T) {
	svc := newTracker()
	shipment := createShipment(t, svc)

	byOrder, err := svc.GetByOrder(context.Background(), shipment.OrderID)
	require.NoError(t, err)
	require.Equal(t, shipment.ID, byOrder.ID)

	byNumber, err := svc.GetByTrackingNumber(context.Background(), shipment.TrackingNumber)
	require.NoError(t, err)
	require.Equal(t, shipment.ID, byNumber.ID)

	_, err = svc.GetByTrackingNumber(context.Background(), "GZTUNKNOWN")
	require.ErrorIs(t, err, ports.ErrNotFound)

	all, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
}
