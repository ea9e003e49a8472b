package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/domain"
	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

const defaultPageSize = 10

// Repository is an in-memory order persistence adapter.
type Repository struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]*domain.Order
}

func NewRepository() *Repository {
	return &Repository{orders: map[uuid.UUID]*domain.Order{}}
}

func (r *Repository) Save(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	clone := cloneOrder(order)
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == uuid.Nil {
		clone.ID = uuid.New()
	}
	r.orders[clone.ID] = clone
	return cloneOrder(clone), nil
}

func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneOrder(order), nil
}

func (r *Repository) ListByCustomer(_ context.Context, customerID uuid.UUID) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Order, 0)
	for _, order := range r.orders {
		if order.CustomerID == customerID {
			list = append(list, cloneOrder(order))
		}
	}
	sortNewestFirst(list)
	return list, nil
}

func (r *Repository) List(_ context.Context, filter ports.ListFilter) (*ports.Page, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := make([]*domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		if filter.Status != "" && string(order.Status) != filter.Status {
			continue
		}
		matched = append(matched, cloneOrder(order))
	}
	sortNewestFirst(matched)

	page, limit := filter.Page, filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	total := int64(len(matched))
	pages := int((total + int64(limit) - 1) / int64(limit))
	start := (page - 1) * limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return &ports.Page{Orders: matched[start:end], Total: total, Page: page, Pages: pages}, nil
}

func sortNewestFirst(orders []*domain.Order) {
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
}

func cloneOrder(o *domain.Order) *domain.Order {
	clone := *o
	clone.Items = append([]domain.LineItem(nil), o.Items...)
	clone.StatusHistory = append([]domain.StatusChange(nil), o.StatusHistory...)
	return &clone
}
