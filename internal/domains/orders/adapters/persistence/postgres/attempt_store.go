package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/ports"
)

var _ ports.AttemptStore = (*AttemptStore)(nil)

// AttemptStore persists placement attempts in PostgreSQL.
type AttemptStore struct {
	db *gorm.DB
}

func NewAttemptStore(db *gorm.DB) *AttemptStore {
	return &AttemptStore{db: db}
}

type attemptRecord struct {
	ID            uuid.UUID      `gorm:"primaryKey;column:id;type:uuid"`
	CustomerID    uuid.UUID      `gorm:"column:customer_id;type:uuid;index"`
	Status        string         `gorm:"column:status;type:varchar(32);index"`
	Steps         pq.StringArray `gorm:"column:steps;type:text[]"`
	OrderID       *uuid.UUID     `gorm:"column:order_id;type:uuid"`
	FailureReason string         `gorm:"column:failure_reason"`
	CreatedAt     time.Time      `gorm:"column:created_at;index"`
	UpdatedAt     time.Time      `gorm:"column:updated_at"`
}

func (attemptRecord) TableName() string { return "order_placement_attempts" }

func (s *AttemptStore) Save(ctx context.Context, attempt *ports.PlacementAttempt) error {
	if s == nil || s.db == nil {
		return errors.New("postgres attempt store not configured")
	}
	if attempt == nil {
		return errors.New("attempt is nil")
	}
	steps := make(pq.StringArray, 0, len(attempt.Steps))
	for _, step := range attempt.Steps {
		steps = append(steps, string(step))
	}
	record := attemptRecord{
		ID:            attempt.ID,
		CustomerID:    attempt.CustomerID,
		Status:        string(attempt.Status),
		Steps:         steps,
		OrderID:       attempt.OrderID,
		FailureReason: attempt.FailureReason,
		CreatedAt:     attempt.CreatedAt,
		UpdatedAt:     attempt.UpdatedAt,
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"status":         record.Status,
			"steps":          record.Steps,
			"order_id":       record.OrderID,
			"failure_reason": record.FailureReason,
			"updated_at":     gorm.Expr("NOW()"),
		}),
	}).Create(&record).Error
}

// DefaultAttemptRetention is how long finished placement attempts are kept
// before the purger removes them.
const DefaultAttemptRetention = 30 * 24 * time.Hour

// PurgeFinished deletes completed and failed attempts older than the retention
// window. In-flight attempts are never touched.
func (s *AttemptStore) PurgeFinished(ctx context.Context, retention time.Duration) (int64, error) {
	if s == nil || s.db == nil {
		return 0, errors.New("postgres attempt store not configured")
	}
	cutoff := time.Now().Add(-retention)
	result := s.db.WithContext(ctx).
		Where("status IN ?", []string{string(ports.AttemptCompleted), string(ports.AttemptFailed)}).
		Where("updated_at < ?", cutoff).
		Delete(&attemptRecord{})
	return result.RowsAffected, result.Error
}
