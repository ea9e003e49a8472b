package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/streadway/amqp"

	ordersdomain "github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/domain"
	ordersports "github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/ports"
)

const (
	exchangeName = "notifications"

	routingKeyPlaced        = "order.placed"
	routingKeyStatusChanged = "order.status_changed"
)

var _ ordersports.Notifier = (*AMQPNotifier)(nil)

// AMQPNotifier publishes order events to a RabbitMQ topic exchange consumed
// by the notification pipeline (email, SMS).
type AMQPNotifier struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewAMQPNotifier dials the broker and declares the orders event exchange.
func NewAMQPNotifier(url string) (*AMQPNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open amqp channel: %w", err)
	}
	if err := channel.ExchangeDeclare(exchangeName, "topic", true, false, false, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchangeName, err)
	}
	return &AMQPNotifier{conn: conn, channel: channel}, nil
}

// Close releases the channel and connection.
func (n *AMQPNotifier) Close() error {
	if n == nil {
		return nil
	}
	if n.channel != nil {
		n.channel.Close()
	}
	if n.conn != nil {
		return n.conn.Close()
	}
	return nil
}

type orderEvent struct {
	OrderNumber       string    `json:"orderNumber"`
	CustomerID        string    `json:"customerId"`
	Status            string    `json:"status"`
	PaymentMethod     string    `json:"paymentMethod"`
	Total             string    `json:"total"`
	EstimatedDelivery time.Time `json:"estimatedDelivery"`
	OccurredAt        time.Time `json:"occurredAt"`
}

func (n *AMQPNotifier) OrderPlaced(ctx context.Context, order *ordersdomain.Order) error {
	return n.publish(ctx, routingKeyPlaced, order)
}

func (n *AMQPNotifier) OrderStatusChanged(ctx context.Context, order *ordersdomain.Order) error {
	return n.publish(ctx, routingKeyStatusChanged, order)
}

func (n *AMQPNotifier) publish(_ context.Context, routingKey string, order *ordersdomain.Order) error {
	if n == nil || n.channel == nil {
		return fmt.Errorf("amqp notifier not configured")
	}
	event := orderEvent{
		OrderNumber:       order.OrderNumber,
		CustomerID:        order.CustomerID.String(),
		Status:            string(order.Status),
		PaymentMethod:     string(order.PaymentMethod),
		Total:             order.Total.StringFixed(2),
		EstimatedDelivery: order.EstimatedDelivery,
		OccurredAt:        time.Now().UTC(),
	}
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return n.channel.Publish(exchangeName, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
		Body:         body,
	})
}
