package migrations

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema for all bounded contexts. Record structs here mirror
// the Postgres adapters; adapters never automigrate on their own.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&productRecord{},
		&orderRecord{},
		&orderItemRecord{},
		&statusHistoryRecord{},
		&attemptRecord{},
		&idempotencyRecord{},
		&paymentRecord{},
		&walletRecord{},
		&walletTransactionRecord{},
		&shipmentRecord{},
		&trackingEventRecord{},
	)
}

// Catalog schema mirrors the catalog Postgres adapter.
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

// Order schema mirrors the orders Postgres adapter.
type orderRecord struct {
	ID                uuid.UUID       `gorm:"primaryKey;column:id;type:uuid"`
	OrderNumber       string          `gorm:"column:order_number;uniqueIndex"`
	CustomerID        uuid.UUID       `gorm:"column:customer_id;type:uuid;index"`
	ShippingAddress   string          `gorm:"column:shipping_address;type:jsonb"`
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

type idempotencyRecord struct {
	Key         string    `gorm:"primaryKey;column:key;size:255"`
	RequestHash string    `gorm:"column:request_hash;size:128"`
	OrderID     uuid.UUID `gorm:"column:order_id;type:uuid"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (idempotencyRecord) TableName() string { return "order_idempotency_keys" }

// Payment schema mirrors the payments Postgres adapter.
type paymentRecord struct {
	ID            uuid.UUID       `gorm:"primaryKey;column:id;type:uuid"`
	OrderID       uuid.UUID       `gorm:"column:order_id;type:uuid;index"`
	CustomerID    uuid.UUID       `gorm:"column:customer_id;type:uuid;index"`
	Method        string          `gorm:"column:method;type:varchar(16)"`
	Gateway       string          `gorm:"column:gateway;type:varchar(32)"`
	Amount        decimal.Decimal `gorm:"column:amount;type:numeric(12,2)"`
	Status        string          `gorm:"column:status;type:varchar(16);index"`
	TransactionID string          `gorm:"column:transaction_id"`
	CreatedAt     time.Time       `gorm:"column:created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at"`
}

func (paymentRecord) TableName() string { return "payments" }

type walletRecord struct {
	ID         uuid.UUID       `gorm:"primaryKey;column:id;type:uuid"`
	CustomerID uuid.UUID       `gorm:"column:customer_id;type:uuid;uniqueIndex"`
	Balance    decimal.Decimal `gorm:"column:balance;type:numeric(12,2)"`
	Currency   string          `gorm:"column:currency;type:varchar(8)"`
	Active     bool            `gorm:"column:is_active"`
	CreatedAt  time.Time       `gorm:"column:created_at"`
	UpdatedAt  time.Time       `gorm:"column:updated_at"`
}

func (walletRecord) TableName() string { return "wallets" }

type walletTransactionRecord struct {
	ID          uuid.UUID       `gorm:"primaryKey;column:id;type:uuid"`
	WalletID    uuid.UUID       `gorm:"column:wallet_id;type:uuid;index"`
	Type        string          `gorm:"column:type;type:varchar(8)"`
	Amount      decimal.Decimal `gorm:"column:amount;type:numeric(12,2)"`
	Description string          `gorm:"column:description"`
	OrderID     *uuid.UUID      `gorm:"column:order_id;type:uuid"`
	CreatedAt   time.Time       `gorm:"column:created_at;index"`
}

func (walletTransactionRecord) TableName() string { return "wallet_transactions" }

// Shipment schema mirrors the shipments Postgres adapter.
type shipmentRecord struct {
	ID                uuid.UUID  `gorm:"primaryKey;column:id;type:uuid"`
	OrderID           uuid.UUID  `gorm:"column:order_id;type:uuid;uniqueIndex"`
	CustomerID        uuid.UUID  `gorm:"column:customer_id;type:uuid;index"`
	TrackingNumber    string     `gorm:"column:tracking_number;uniqueIndex"`
	Carrier           string     `gorm:"column:carrier"`
	Status            string     `gorm:"column:status;type:varchar(32);index"`
	CurrentLocation   string     `gorm:"column:current_location;type:jsonb"`
	Origin            string     `gorm:"column:origin;type:jsonb"`
	Destination       string     `gorm:"column:destination;type:jsonb"`
	EstimatedDelivery time.Time  `gorm:"column:estimated_delivery"`
	ActualDelivery    *time.Time `gorm:"column:actual_delivery"`
	CreatedAt         time.Time  `gorm:"column:created_at;index"`
	UpdatedAt         time.Time  `gorm:"column:updated_at"`
}

func (shipmentRecord) TableName() string { return "shipments" }

type trackingEventRecord struct {
	ID          uuid.UUID `gorm:"primaryKey;column:id;type:uuid"`
	ShipmentID  uuid.UUID `gorm:"column:shipment_id;type:uuid;index"`
	Status      string    `gorm:"column:status;type:varchar(32)"`
	Location    string    `gorm:"column:location;type:jsonb"`
	Description string    `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at;index"`
}

func (trackingEventRecord) TableName() string { return "tracking_history" }
