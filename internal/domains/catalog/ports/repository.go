package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/catalog/domain"
)

var (
	ErrNotFound = errors.New("product not found")
	// ErrInsufficientStock signals a conditional decrement found fewer units
	// than requested.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Repository reads catalog products and keeps the per-product inventory ledger.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.Product, error)
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	// Decrement atomically subtracts quantity from the product's inventory.
	// It fails with ErrInsufficientStock when fewer units remain, so two
	// concurrent buyers can never drive the counter negative.
	Decrement(ctx context.Context, id uuid.UUID, quantity int) error
}
