package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/catalog/domain"
	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory product/inventory adapter for development and tests.
type Repository struct {
	mu       sync.RWMutex
	products map[uuid.UUID]*domain.Product
}

func NewRepository() *Repository {
	return &Repository{products: map[uuid.UUID]*domain.Product{}}
}

func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := cloneProduct(product)
	return clone, nil
}

func (r *Repository) List(_ context.Context, activeOnly bool) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Product, 0, len(r.products))
	for _, product := range r.products {
		if activeOnly && !product.Active {
			continue
		}
		list = append(list, cloneProduct(product))
	}
	return list, nil
}

func (r *Repository) Save(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	clone := cloneProduct(product)
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == uuid.Nil {
		clone.ID = uuid.New()
	}
	r.products[clone.ID] = clone
	result := cloneProduct(clone)
	return result, nil
}

// Decrement mirrors the conditional UPDATE of the postgres adapter: the check
// and the subtraction happen under one lock so the counter cannot go negative.
func (r *Repository) Decrement(_ context.Context, id uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok {
		return ports.ErrNotFound
	}
	if product.Inventory < quantity {
		return ports.ErrInsufficientStock
	}
	product.Inventory -= quantity
	return nil
}

func cloneProduct(p *domain.Product) *domain.Product {
	clone := *p
	clone.Images = append([]string(nil), p.Images...)
	return &clone
}
