package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AttemptStatus tracks how far a placement attempt got.
type AttemptStatus string

const (
	AttemptInProgress     AttemptStatus = "in_progress"
	AttemptAwaitingAction AttemptStatus = "awaiting_action"
	AttemptCompleted      AttemptStatus = "completed"
	AttemptFailed         AttemptStatus = "failed"
)

// PlacementStep names the side-effecting stages of order placement, in the
// order they run.
type PlacementStep string

const (
	StepCartValidated        PlacementStep = "cart_validated"
	StepPaymentCharged       PlacementStep = "payment_charged"
	StepOrderPersisted       PlacementStep = "order_persisted"
	StepShipmentCreated      PlacementStep = "shipment_created"
	StepInventoryDecremented PlacementStep = "inventory_decremented"
	StepNotified             PlacementStep = "notified"
)

// PlacementAttempt is the saga record written before any placement side
// effect. A failed attempt whose steps stop partway marks exactly where a
// partial placement needs operator attention.
type PlacementAttempt struct {
	ID            uuid.UUID
	CustomerID    uuid.UUID
	Status        AttemptStatus
	Steps         []PlacementStep
	OrderID       *uuid.UUID
	FailureReason string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewPlacementAttempt opens an in-progress attempt for a customer.
func NewPlacementAttempt(customerID uuid.UUID) *PlacementAttempt {
	now := time.Now().UTC()
	return &PlacementAttempt{
		ID:         uuid.New(),
		CustomerID: customerID,
		Status:     AttemptInProgress,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// MarkStep records a completed placement stage.
func (a *PlacementAttempt) MarkStep(step PlacementStep) {
	a.Steps = append(a.Steps, step)
	a.UpdatedAt = time.Now().UTC()
}

// Complete closes the attempt and links the resulting order.
func (a *PlacementAttempt) Complete(orderID uuid.UUID) {
	a.Status = AttemptCompleted
	a.OrderID = &orderID
	a.UpdatedAt = time.Now().UTC()
}

// Fail closes the attempt with the cause of the failure.
func (a *PlacementAttempt) Fail(reason string) {
	a.Status = AttemptFailed
	a.FailureReason = reason
	a.UpdatedAt = time.Now().UTC()
}

// AwaitAction parks the attempt until the client finishes card confirmation.
func (a *PlacementAttempt) AwaitAction() {
	a.Status = AttemptAwaitingAction
	a.UpdatedAt = time.Now().UTC()
}

// AttemptStore persists placement attempts. Save upserts by ID.
type AttemptStore interface {
	Save(ctx context.Context, attempt *PlacementAttempt) error
}
