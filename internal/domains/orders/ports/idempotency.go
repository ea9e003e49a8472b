package ports

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrIdempotencyConflict indicates the same key was used with a different payload.
var ErrIdempotencyConflict = errors.New("idempotency conflict")

// IdempotencyRecord associates a client-supplied key with the order it produced.
type IdempotencyRecord struct {
	Key         string
	RequestHash string
	OrderID     uuid.UUID
	CreatedAt   time.Time
}

// IdempotencyStore persists idempotency keys so checkout retries replay the
// original order instead of charging again.
type IdempotencyStore interface {
	// Get returns the stored record for the key, or nil when unknown.
	Get(ctx context.Context, key string) (*IdempotencyRecord, error)
	// Save persists the record. When the key exists with a different hash or
	// order, ErrIdempotencyConflict is returned with the stored record.
	Save(ctx context.Context, record IdempotencyRecord) (*IdempotencyRecord, error)
}
