package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/domain"
)

var ErrNotFound = errors.New("order not found")

// ListFilter narrows and paginates the admin order listing. Zero values mean
// no status filter, first page, default page size.
type ListFilter struct {
	Status string
	Page   int
	Limit  int
}

// Page is one page of orders plus the total across all pages.
type Page struct {
	Orders []*domain.Order
	Total  int64
	Page   int
	Pages  int
}

// Repository persists order aggregates. The status history is append-only;
// Save never rewrites entries already on disk.
type Repository interface {
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*domain.Order, error)
	List(ctx context.Context, filter ListFilter) (*Page, error)
}
