// Package notify delivers customer-facing order events. The AMQP publisher
// hands events to the notification pipeline; the log notifier stands in when
// no broker is configured.
package notify

import (
	"context"
	"log/slog"

	ordersdomain "github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/domain"
	ordersports "github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/ports"
)

var _ ordersports.Notifier = (*LogNotifier)(nil)

// LogNotifier writes order events to the structured log instead of a broker.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) OrderPlaced(ctx context.Context, order *ordersdomain.Order) error {
	n.logger.InfoContext(ctx, "order confirmation notification",
		slog.String("orderNumber", order.OrderNumber),
		slog.String("customerId", order.CustomerID.String()),
		slog.String("total", order.Total.StringFixed(2)))
	return nil
}

func (n *LogNotifier) OrderStatusChanged(ctx context.Context, order *ordersdomain.Order) error {
	n.logger.InfoContext(ctx, "order status notification",
		slog.String("orderNumber", order.OrderNumber),
		slog.String("status", string(order.Status)))
	return nil
}
