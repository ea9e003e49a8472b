package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/domain"
	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/ports"
	paymentsdomain "github.com/johithjpr-lab/ecommerce-platform/internal/domains/payments/domain"
)

var _ ports.Repository = (*Repository)(nil)

const defaultPageSize = 10

// Repository persists orders in PostgreSQL using GORM. Line items are written
// once at creation; the status history is append-only.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type orderRecord struct {
	ID                uuid.UUID       `gorm:"primaryKey;column:id;type:uuid"`
	OrderNumber       string          `gorm:"column:order_number;uniqueIndex"`
	CustomerID        uuid.UUID       `gorm:"column:customer_id;type:uuid;index"`
	ShippingAddress   domain.Address  `gorm:"column:shipping_address;serializer:json"`
	PaymentMethod     string          `gorm:"column:payment_method;type:varchar(16)"`
	PaymentStatus     string          `gorm:"column:payment_status;type:varchar(16)"`
	Status            string          `gorm:"column:status;type:varchar(32);index"`
	Subtotal          decimal.Decimal `gorm:"column:subtotal;type:numeric(12,2)"`
	Tax               decimal.Decimal `gorm:"column:tax;type:numeric(12,2)"`
	ShippingCost      decimal.Decimal `gorm:"column:shipping_cost;type:numeric(12,2)"`
	Total             decimal.Decimal `gorm:"column:total;type:numeric(12,2)"`
	EstimatedDelivery time.Time       `gorm:"column:estimated_delivery"`
	CreatedAt         time.Time       `gorm:"column:created_at;index"`
	UpdatedAt         time.Time       `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

type orderItemRecord struct {
	ID        uuid.UUID       `gorm:"primaryKey;column:id;type:uuid"`
	OrderID   uuid.UUID       `gorm:"column:order_id;type:uuid;index"`
	ProductID uuid.UUID       `gorm:"column:product_id;type:uuid"`
	Name      string          `gorm:"column:name"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
	Quantity  int             `gorm:"column:quantity"`
	Image     string          `gorm:"column:image"`
	Position  int             `gorm:"column:position"`
}

func (orderItemRecord) TableName() string { return "order_items" }

type statusHistoryRecord struct {
	ID        uuid.UUID `gorm:"primaryKey;column:id;type:uuid"`
	OrderID   uuid.UUID `gorm:"column:order_id;type:uuid;index"`
	Status    string    `gorm:"column:status;type:varchar(32)"`
	Note      string    `gorm:"column:note"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
}

func (statusHistoryRecord) TableName() string { return "order_status_history" }

func (r *Repository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	record := toRecord(order)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"status":         record.Status,
				"payment_status": record.PaymentStatus,
				"updated_at":     gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
			return err
		}
		var itemCount int64
		if err := tx.Model(&orderItemRecord{}).Where("order_id = ?", record.ID).Count(&itemCount).Error; err != nil {
			return err
		}
		if itemCount == 0 {
			for i, item := range order.Items {
				itemRecord := orderItemRecord{
					ID:        uuid.New(),
					OrderID:   record.ID,
					ProductID: item.ProductID,
					Name:      item.Name,
					Price:     item.Price,
					Quantity:  item.Quantity,
					Image:     item.Image,
					Position:  i,
				}
				if err := tx.Create(&itemRecord).Error; err != nil {
					return err
				}
			}
		}
		var persisted int64
		if err := tx.Model(&statusHistoryRecord{}).Where("order_id = ?", record.ID).Count(&persisted).Error; err != nil {
			return err
		}
		for i := int(persisted); i < len(order.StatusHistory); i++ {
			change := order.StatusHistory[i]
			historyRecord := statusHistoryRecord{
				ID:        uuid.New(),
				OrderID:   record.ID,
				Status:    string(change.Status),
				Note:      change.Note,
				CreatedAt: change.Timestamp,
			}
			if err := tx.Create(&historyRecord).Error; err != nil {
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

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return r.hydrate(ctx, &record)
}

func (r *Repository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return r.hydrateAll(ctx, records)
}

func (r *Repository) List(ctx context.Context, filter ports.ListFilter) (*ports.Page, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	page, limit := filter.Page, filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	query := r.db.WithContext(ctx).Model(&orderRecord{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&records).Error; err != nil {
		return nil, err
	}
	orders, err := r.hydrateAll(ctx, records)
	if err != nil {
		return nil, err
	}
	pages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.Page{Orders: orders, Total: total, Page: page, Pages: pages}, nil
}

func (r *Repository) hydrateAll(ctx context.Context, records []orderRecord) ([]*domain.Order, error) {
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		order, err := r.hydrate(ctx, &records[i])
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func (r *Repository) hydrate(ctx context.Context, record *orderRecord) (*domain.Order, error) {
	var items []orderItemRecord
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", record.ID).
		Order("position").
		Find(&items).Error; err != nil {
		return nil, err
	}
	var history []statusHistoryRecord
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", record.ID).
		Order("created_at").
		Find(&history).Error; err != nil {
		return nil, err
	}
	order := record.toDomain()
	order.Items = make([]domain.LineItem, 0, len(items))
	for _, item := range items {
		order.Items = append(order.Items, domain.LineItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Image:     item.Image,
		})
	}
	order.StatusHistory = make([]domain.StatusChange, 0, len(history))
	for _, change := range history {
		order.StatusHistory = append(order.StatusHistory, domain.StatusChange{
			Status:    domain.Status(change.Status),
			Timestamp: change.CreatedAt,
			Note:      change.Note,
		})
	}
	return order, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(o *domain.Order) orderRecord {
	return orderRecord{
		ID:                o.ID,
		OrderNumber:       o.OrderNumber,
		CustomerID:        o.CustomerID,
		ShippingAddress:   o.ShippingAddress,
		PaymentMethod:     string(o.PaymentMethod),
		PaymentStatus:     string(o.PaymentStatus),
		Status:            string(o.Status),
		Subtotal:          o.Subtotal,
		Tax:               o.Tax,
		ShippingCost:      o.ShippingCost,
		Total:             o.Total,
		EstimatedDelivery: o.EstimatedDelivery,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
}

func (r *orderRecord) toDomain() *domain.Order {
	return &domain.Order{
		ID:                r.ID,
		OrderNumber:       r.OrderNumber,
		CustomerID:        r.CustomerID,
		ShippingAddress:   r.ShippingAddress,
		PaymentMethod:     paymentsdomain.Method(r.PaymentMethod),
		PaymentStatus:     domain.PaymentStatus(r.PaymentStatus),
		Status:            domain.Status(r.Status),
		Subtotal:          r.Subtotal,
		Tax:               r.Tax,
		ShippingCost:      r.ShippingCost,
		Total:             r.Total,
		EstimatedDelivery: r.EstimatedDelivery,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}
