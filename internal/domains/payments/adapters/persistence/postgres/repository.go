package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/payments/domain"
	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/payments/ports"
)

var (
	_ ports.PaymentRepository = (*PaymentRepository)(nil)
	_ ports.WalletRepository  = (*WalletRepository)(nil)
)

// paymentRecord maps the payment entity to a relational table.
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

// PaymentRepository persists payments in PostgreSQL using GORM.
type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Save(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("postgres payment repository not configured")
	}
	if payment == nil {
		return nil, errors.New("payment is nil")
	}
	record := toPaymentRecord(payment)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"status":     record.Status,
				"updated_at": gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *PaymentRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*domain.Payment, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("postgres payment repository not configured")
	}
	var record paymentRecord
	if err := r.db.WithContext(ctx).First(&record, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrPaymentNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// WalletRepository persists wallets and their ledgers in PostgreSQL.
type WalletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

func (r *WalletRepository) GetByCustomerID(ctx context.Context, customerID uuid.UUID) (*domain.Wallet, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("postgres wallet repository not configured")
	}
	var record walletRecord
	if err := r.db.WithContext(ctx).First(&record, "customer_id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrWalletNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *WalletRepository) Save(ctx context.Context, wallet *domain.Wallet) (*domain.Wallet, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("postgres wallet repository not configured")
	}
	if wallet == nil {
		return nil, errors.New("wallet is nil")
	}
	record := toWalletRecord(wallet)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"balance":    record.Balance,
				"is_active":  record.Active,
				"updated_at": gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *WalletRepository) AppendTransaction(ctx context.Context, tx *domain.WalletTransaction) error {
	if r == nil || r.db == nil {
		return errors.New("postgres wallet repository not configured")
	}
	if tx == nil {
		return errors.New("wallet transaction is nil")
	}
	record := walletTransactionRecord{
		ID:          tx.ID,
		WalletID:    tx.WalletID,
		Type:        string(tx.Type),
		Amount:      tx.Amount,
		Description: tx.Description,
		OrderID:     tx.OrderID,
		CreatedAt:   tx.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(&record).Error
}

func (r *WalletRepository) ListTransactions(ctx context.Context, walletID uuid.UUID) ([]*domain.WalletTransaction, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("postgres wallet repository not configured")
	}
	var records []walletTransactionRecord
	if err := r.db.WithContext(ctx).
		Where("wallet_id = ?", walletID).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	list := make([]*domain.WalletTransaction, 0, len(records))
	for i := range records {
		list = append(list, records[i].toDomain())
	}
	return list, nil
}

func toPaymentRecord(p *domain.Payment) paymentRecord {
	return paymentRecord{
		ID:            p.ID,
		OrderID:       p.OrderID,
		CustomerID:    p.CustomerID,
		Method:        string(p.Method),
		Gateway:       p.Gateway,
		Amount:        p.Amount,
		Status:        string(p.Status),
		TransactionID: p.TransactionID,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func (r paymentRecord) toDomain() *domain.Payment {
	return &domain.Payment{
		ID:            r.ID,
		OrderID:       r.OrderID,
		CustomerID:    r.CustomerID,
		Method:        domain.Method(r.Method),
		Gateway:       r.Gateway,
		Amount:        r.Amount,
		Status:        domain.Status(r.Status),
		TransactionID: r.TransactionID,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func toWalletRecord(w *domain.Wallet) walletRecord {
	return walletRecord{
		ID:         w.ID,
		CustomerID: w.CustomerID,
		Balance:    w.Balance,
		Currency:   w.Currency,
		Active:     w.Active,
		CreatedAt:  w.CreatedAt,
		UpdatedAt:  w.UpdatedAt,
	}
}

func (r walletRecord) toDomain() *domain.Wallet {
	return &domain.Wallet{
		ID:         r.ID,
		CustomerID: r.CustomerID,
		Balance:    r.Balance,
		Currency:   r.Currency,
		Active:     r.Active,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func (r walletTransactionRecord) toDomain() *domain.WalletTransaction {
	return &domain.WalletTransaction{
		ID:          r.ID,
		WalletID:    r.WalletID,
		Type:        domain.TransactionType(r.Type),
		Amount:      r.Amount,
		Description: r.Description,
		OrderID:     r.OrderID,
		CreatedAt:   r.CreatedAt,
	}
}
