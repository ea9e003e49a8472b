package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/ports"
)

var _ ports.AttemptStore = (*AttemptStore)(nil)

// AttemptStore keeps placement attempts in memory.
type AttemptStore struct {
	mu       sync.RWMutex
	attempts map[uuid.UUID]ports.PlacementAttempt
}

func NewAttemptStore() *AttemptStore {
	return &AttemptStore{attempts: map[uuid.UUID]ports.PlacementAttempt{}}
}

func (s *AttemptStore) Save(_ context.Context, attempt *ports.PlacementAttempt) error {
	if attempt == nil {
		return errors.New("attempt is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *attempt
	clone.Steps = append([]ports.PlacementStep(nil), attempt.Steps...)
	if attempt.OrderID != nil {
		orderID := *attempt.OrderID
		clone.OrderID = &orderID
	}
	s.attempts[clone.ID] = clone
	return nil
}

// Get exposes stored attempts for tests and diagnostics.
func (s *AttemptStore) Get(id uuid.UUID) (*ports.PlacementAttempt, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	attempt, ok := s.attempts[id]
	if !ok {
		return nil, false
	}
	clone := attempt
	clone.Steps = append([]ports.PlacementStep(nil), attempt.Steps...)
	return &clone, true
}
