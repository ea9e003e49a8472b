package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/shipments/domain"
	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/shipments/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists shipments in PostgreSQL using GORM. The tracking
// history is append-only: Save only inserts events not yet on disk.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type shipmentRecord struct {
	ID                uuid.UUID        `gorm:"primaryKey;column:id;type:uuid"`
	OrderID           uuid.UUID        `gorm:"column:order_id;type:uuid;uniqueIndex"`
	CustomerID        uuid.UUID        `gorm:"column:customer_id;type:uuid;index"`
	TrackingNumber    string           `gorm:"column:tracking_number;uniqueIndex"`
	Carrier           string           `gorm:"column:carrier"`
	Status            string           `gorm:"column:status;type:varchar(32);index"`
	CurrentLocation   *domain.Location `gorm:"column:current_location;serializer:json"`
	Origin            domain.Location  `gorm:"column:origin;serializer:json"`
	Destination       domain.Location  `gorm:"column:destination;serializer:json"`
	EstimatedDelivery time.Time        `gorm:"column:estimated_delivery"`
	ActualDelivery    *time.Time       `gorm:"column:actual_delivery"`
	CreatedAt         time.Time        `gorm:"column:created_at;index"`
	UpdatedAt         time.Time        `gorm:"column:updated_at"`
}

func (shipmentRecord) TableName() string { return "shipments" }

type trackingEventRecord struct {
	ID          uuid.UUID        `gorm:"primaryKey;column:id;type:uuid"`
	ShipmentID  uuid.UUID        `gorm:"column:shipment_id;type:uuid;index"`
	Status      string           `gorm:"column:status;type:varchar(32)"`
	Location    *domain.Location `gorm:"column:location;serializer:json"`
	Description string           `gorm:"column:description"`
	CreatedAt   time.Time        `gorm:"column:created_at;index"`
}

func (trackingEventRecord) TableName() string { return "tracking_history" }

func (r *Repository) Save(ctx context.Context, shipment *domain.Shipment) (*domain.Shipment, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if shipment == nil {
		return nil, errors.New("shipment is nil")
	}
	record := toRecord(shipment)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"status":           record.Status,
				"current_location": record.CurrentLocation,
				"actual_delivery":  record.ActualDelivery,
				"updated_at":       gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
			return err
		}
		var persisted int64
		if err := tx.Model(&trackingEventRecord{}).Where("shipment_id = ?", record.ID).Count(&persisted).Error; err != nil {
			return err
		}
		for i := int(persisted); i < len(shipment.TrackingHistory); i++ {
			event := shipment.TrackingHistory[i]
			eventRecord := trackingEventRecord{
				ID:          uuid.New(),
				ShipmentID:  record.ID,
				Status:      string(event.Status),
				Location:    event.Location,
				Description: event.Description,
				CreatedAt:   event.Timestamp,
			}
			if err := tx.Create(&eventRecord).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Shipment, error) {
	return r.getWhere(ctx, "id = ?", id)
}

func (r *Repository) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*domain.Shipment, error) {
	return r.getWhere(ctx, "order_id = ?", orderID)
}

func (r *Repository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*domain.Shipment, error) {
	return r.getWhere(ctx, "tracking_number = ?", trackingNumber)
}

func (r *Repository) List(ctx context.Context) ([]*domain.Shipment, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []shipmentRecord
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	list := make([]*domain.Shipment, 0, len(records))
	for i := range records {
		shipment, err := r.hydrate(ctx, &records[i])
		if err != nil {
			return nil, err
		}
		list = append(list, shipment)
	}
	return list, nil
}

func (r *Repository) getWhere(ctx context.Context, query string, arg any) (*domain.Shipment, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record shipmentRecord
	if err := r.db.WithContext(ctx).First(&record, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return r.hydrate(ctx, &record)
}

func (r *Repository) hydrate(ctx context.Context, record *shipmentRecord) (*domain.Shipment, error) {
	var events []trackingEventRecord
	if err := r.db.WithContext(ctx).
		Where("shipment_id = ?", record.ID).
		Order("created_at").
		Find(&events).Error; err != nil {
		return nil, err
	}
	shipment := record.toDomain()
	shipment.TrackingHistory = make([]domain.TrackingEvent, 0, len(events))
	for _, event := range events {
		shipment.TrackingHistory = append(shipment.TrackingHistory, domain.TrackingEvent{
			Status:      domain.Status(event.Status),
			Location:    event.Location,
			Timestamp:   event.CreatedAt,
			Description: event.Description,
		})
	}
	return shipment, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres shipment repository not configured")
	}
	return nil
}

func toRecord(s *domain.Shipment) shipmentRecord {
	return shipmentRecord{
		ID:                s.ID,
		OrderID:           s.OrderID,
		CustomerID:        s.CustomerID,
		TrackingNumber:    s.TrackingNumber,
		Carrier:           s.Carrier,
		Status:            string(s.Status),
		CurrentLocation:   s.CurrentLocation,
		Origin:            s.Origin,
		Destination:       s.Destination,
		EstimatedDelivery: s.EstimatedDelivery,
		ActualDelivery:    s.ActualDelivery,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

func (r *shipmentRecord) toDomain() *domain.Shipment {
	return &domain.Shipment{
		ID:                r.ID,
		OrderID:           r.OrderID,
		CustomerID:        r.CustomerID,
		TrackingNumber:    r.TrackingNumber,
		Carrier:           r.Carrier,
		Status:            domain.Status(r.Status),
		CurrentLocation:   r.CurrentLocation,
		Origin:            r.Origin,
		Destination:       r.Destination,
		EstimatedDelivery: r.EstimatedDelivery,
		ActualDelivery:    r.ActualDelivery,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}
