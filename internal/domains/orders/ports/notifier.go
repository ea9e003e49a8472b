package ports

import (
	"context"

	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/domain"
)

// Notifier publishes customer-facing order events. Delivery is best-effort;
// callers log failures and never abort the order flow on them.
type Notifier interface {
	OrderPlaced(ctx context.Context, order *domain.Order) error
	OrderStatusChanged(ctx context.Context, order *domain.Order) error
}
