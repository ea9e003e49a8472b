package observability

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	types "github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/application/types"
	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/domain"
	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/ports"
)

const tracerName = "github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/adapters/observability/service"

// Service decorates the orders application port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

// PlaceOrder runs checkout with instrumentation.
func (s *Service) PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (*types.PlacementResult, error) {
	ctx, span := s.startSpan(ctx, "Service.PlaceOrder",
		attribute.String("order.customer_id", input.CustomerID.String()),
		attribute.String("order.payment_method", input.PaymentMethod),
		attribute.Int("order.item_count", len(input.Items)),
	)
	defer span.End()

	s.logInfo(ctx, "placing order",
		slog.String("customerId", input.CustomerID.String()),
		slog.String("paymentMethod", input.PaymentMethod))
	result, err := s.inner.PlaceOrder(ctx, input)
	if err != nil {
		s.metrics.recordPlacementFailed(ctx, input.PaymentMethod)
		return nil, s.handleError(ctx, span, err, "failed to place order",
			slog.String("customerId", input.CustomerID.String()))
	}
	if result.RequiresAction {
		span.SetAttributes(attribute.Bool("order.requires_action", true))
		s.logInfo(ctx, "order awaiting client confirmation")
		return result, nil
	}
	if result.Order != nil {
		span.SetAttributes(attribute.String("order.number", result.Order.OrderNumber))
		s.metrics.recordPlaced(ctx, input.PaymentMethod)
		s.logInfo(ctx, "order placed",
			slog.String("orderNumber", result.Order.OrderNumber),
			slog.String("total", result.Order.Total.StringFixed(2)))
	}
	return result, nil
}

// AdvanceStatus moves an order through its lifecycle with instrumentation.
func (s *Service) AdvanceStatus(ctx context.Context, input types.AdvanceStatusInput) (*domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.AdvanceStatus",
		attribute.String("order.id", input.OrderID.String()),
		attribute.String("order.status.requested", input.Status),
	)
	defer span.End()

	s.logInfo(ctx, "advancing order status",
		slog.String("orderId", input.OrderID.String()), slog.String("status", input.Status))
	order, err := s.inner.AdvanceStatus(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to advance order status",
			slog.String("orderId", input.OrderID.String()))
	}
	s.metrics.recordStatusChanged(ctx, order.Status)
	s.logInfo(ctx, "order status advanced",
		slog.String("orderNumber", order.OrderNumber), slog.String("status", string(order.Status)))
	return order, nil
}

// GetOrder loads the composed order view.
func (s *Service) GetOrder(ctx context.Context, customerID, orderID uuid.UUID) (*types.OrderDetail, error) {
	ctx, span := s.startSpan(ctx, "Service.GetOrder", attribute.String("order.id", orderID.String()))
	defer span.End()

	detail, err := s.inner.GetOrder(ctx, customerID, orderID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order",
			slog.String("orderId", orderID.String()))
	}
	return detail, nil
}

// ListOrders returns the customer's orders.
func (s *Service) ListOrders(ctx context.Context, customerID uuid.UUID) ([]*domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.ListOrders", attribute.String("order.customer_id", customerID.String()))
	defer span.End()

	orders, err := s.inner.ListOrders(ctx, customerID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders",
			slog.String("customerId", customerID.String()))
	}
	span.SetAttributes(attribute.Int("order.result.count", len(orders)))
	return orders, nil
}

// ListAllOrders is the admin listing.
func (s *Service) ListAllOrders(ctx context.Context, input types.AdminListInput) (*types.OrderPage, error) {
	ctx, span := s.startSpan(ctx, "Service.ListAllOrders",
		attribute.String("order.status.filter", input.Status),
		attribute.Int("order.page", input.Page),
	)
	defer span.End()

	page, err := s.inner.ListAllOrders(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list all orders")
	}
	span.SetAttributes(attribute.Int64("order.result.total", page.Total))
	return page, nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	ordersPlaced     metric.Int64Counter
	placementsFailed metric.Int64Counter
	statusChanges    metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersPlaced, _ := m.Int64Counter("orders.service.placed", metric.WithDescription("Number of orders placed"))
	placementsFailed, _ := m.Int64Counter("orders.service.placement_failed", metric.WithDescription("Number of failed placement attempts"))
	statusChanges, _ := m.Int64Counter("orders.service.status_changed", metric.WithDescription("Number of order status changes"))
	return serviceMetrics{
		ordersPlaced:     ordersPlaced,
		placementsFailed: placementsFailed,
		statusChanges:    statusChanges,
	}
}

func (m serviceMetrics) recordPlaced(ctx context.Context, method string) {
	addCounter(ctx, m.ordersPlaced, 1, attribute.String("order.payment_method", method))
}

func (m serviceMetrics) recordPlacementFailed(ctx context.Context, method string) {
	addCounter(ctx, m.placementsFailed, 1, attribute.String("order.payment_method", method))
}

func (m serviceMetrics) recordStatusChanged(ctx context.Context, status domain.Status) {
	addCounter(ctx, m.statusChanges, 1, attribute.String("order.status", string(status)))
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
