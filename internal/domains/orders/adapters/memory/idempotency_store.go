package memory

import (
	"context"
	"sync"
	"time"

	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/ports"
)

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

// IdempotencyStore provides an in-memory implementation for development and tests.
type IdempotencyStore struct {
	mu      sync.RWMutex
	records map[string]ports.IdempotencyRecord
}

func NewIdempotencyStore() *IdempotencyStore {
	return &IdempotencyStore{records: map[string]ports.IdempotencyRecord{}}
}

func (s *IdempotencyStore) Get(_ context.Context, key string) (*ports.IdempotencyRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[key]
	if !ok {
		return nil, nil
	}
	copy := record
	return &copy, nil
}

func (s *IdempotencyStore) Save(_ context.Context, record ports.IdempotencyRecord) (*ports.IdempotencyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.records[record.Key]; ok {
		copy := existing
		if existing.RequestHash != record.RequestHash || existing.OrderID != record.OrderID {
			return &copy, ports.ErrIdempotencyConflict
		}
		return &copy, nil
	}
	record.CreatedAt = time.Now().UTC()
	s.records[record.Key] = record
	saved := record
	return &saved, nil
}
