package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/catalog/domain"
	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists products in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// productRecord maps the product to a relational table.
type productRecord struct {
	ID        uuid.UUID       `gorm:"primaryKey;column:id;type:uuid"`
	Name      string          `gorm:"column:name"`
	Slug      string          `gorm:"column:slug;uniqueIndex"`
	Brand     string          `gorm:"column:brand"`
	Category  string          `gorm:"column:category;index"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
	Images    pq.StringArray  `gorm:"column:images;type:text[]"`
	Inventory int             `gorm:"column:inventory"`
	Active    bool            `gorm:"column:active;index"`
	CreatedAt time.Time       `gorm:"column:created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record productRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) List(ctx context.Context, activeOnly bool) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx)
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	var records []productRecord
	if err := query.Order("name").Find(&records).Error; err != nil {
		return nil, err
	}
	products := make([]*domain.Product, 0, len(records))
	for i := range records {
		products = append(products, records[i].toDomain())
	}
	return products, nil
}

func (r *Repository) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product is nil")
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(product)
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"name":       record.Name,
				"slug":       record.Slug,
				"brand":      record.Brand,
				"category":   record.Category,
				"price":      record.Price,
				"images":     record.Images,
				"inventory":  record.Inventory,
				"active":     record.Active,
				"updated_at": gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// Decrement runs a single conditional UPDATE so the subtraction and the
// availability check commit together; concurrent buyers of the last unit
// cannot oversell.
func (r *Repository) Decrement(ctx context.Context, id uuid.UUID, quantity int) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	result := r.db.WithContext(ctx).
		Model(&productRecord{}).
		Where("id = ? AND inventory >= ?", id, quantity).
		UpdateColumn("inventory", gorm.Expr("inventory - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&productRecord{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ports.ErrNotFound
		}
		return ports.ErrInsufficientStock
	}
	return nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres product repository not configured")
	}
	return nil
}

func toRecord(product *domain.Product) productRecord {
	return productRecord{
		ID:        product.ID,
		Name:      product.Name,
		Slug:      product.Slug,
		Brand:     product.Brand,
		Category:  product.Category,
		Price:     product.Price,
		Images:    pq.StringArray(product.Images),
		Inventory: product.Inventory,
		Active:    product.Active,
	}
}

func (r productRecord) toDomain() *domain.Product {
	return &domain.Product{
		ID:        r.ID,
		Name:      r.Name,
		Slug:      r.Slug,
		Brand:     r.Brand,
		Category:  r.Category,
		Price:     r.Price,
		Images:    []string(r.Images),
		Inventory: r.Inventory,
		Active:    r.Active,
	}
}
