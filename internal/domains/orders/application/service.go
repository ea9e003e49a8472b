package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	catalogports "github.com/johithjpr-lab/ecommerce-platform/internal/domains/catalog/ports"
	types "github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/application/types"
	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/domain"
	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/ports"
	paymentsdomain "github.com/johithjpr-lab/ecommerce-platform/internal/domains/payments/domain"
	paymentsports "github.com/johithjpr-lab/ecommerce-platform/internal/domains/payments/ports"
	shipmentsdomain "github.com/johithjpr-lab/ecommerce-platform/internal/domains/shipments/domain"
	shipmentsports "github.com/johithjpr-lab/ecommerce-platform/internal/domains/shipments/ports"
)

// Deps wires the order service to the surrounding bounded contexts.
// Idempotency and Notifier are optional; everything else is required.
type Deps struct {
	Orders      ports.Repository
	Attempts    ports.AttemptStore
	Idempotency ports.IdempotencyStore
	Catalog     catalogports.Repository
	Wallets     paymentsports.WalletRepository
	Payments    paymentsports.PaymentRepository
	Gateways    paymentsports.GatewayResolver
	Shipments   shipmentsports.Tracker
	Notifier    ports.Notifier
	Logger      *slog.Logger
}

// Service orchestrates order placement and the order lifecycle.
type Service struct {
	orders      ports.Repository
	attempts    ports.AttemptStore
	idempotency ports.IdempotencyStore
	catalog     catalogports.Repository
	wallets     paymentsports.WalletRepository
	payments    paymentsports.PaymentRepository
	gateways    paymentsports.GatewayResolver
	shipments   shipmentsports.Tracker
	notifier    ports.Notifier
	logger      *slog.Logger
}

func NewService(deps Deps) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		orders:      deps.Orders,
		attempts:    deps.Attempts,
		idempotency: deps.Idempotency,
		catalog:     deps.Catalog,
		wallets:     deps.Wallets,
		payments:    deps.Payments,
		gateways:    deps.Gateways,
		shipments:   deps.Shipments,
		notifier:    deps.Notifier,
		logger:      logger,
	}
}

// PlaceOrder runs the checkout sequence: validate the cart against the live
// catalog, charge the payment method, persist the order with its payment and
// shipment records, decrement inventory, and notify the customer. There is no
// automatic compensation; the placement attempt record marks how far a failed
// run got.
func (s *Service) PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (*types.PlacementResult, error) {
	method, err := paymentsdomain.ParseMethod(input.PaymentMethod)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, domain.ErrNoItems)
	}
	if input.ShippingAddress.Empty() {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, domain.ErrMissingAddress)
	}

	var requestHash string
	if input.IdempotencyKey != "" && s.idempotency != nil {
		requestHash, err = FingerprintPlaceOrder(input)
		if err != nil {
			return nil, err
		}
		record, err := s.idempotency.Get(ctx, input.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if record != nil {
			if record.RequestHash != requestHash {
				return nil, ports.ErrIdempotencyConflict
			}
			s.logger.InfoContext(ctx, "replaying idempotent order placement",
				slog.String("orderId", record.OrderID.String()))
			return s.composeResult(ctx, record.OrderID)
		}
	}

	lineItems, err := s.validateCart(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	attempt := ports.NewPlacementAttempt(input.CustomerID)
	attempt.MarkStep(ports.StepCartValidated)
	if err := s.attempts.Save(ctx, attempt); err != nil {
		return nil, fmt.Errorf("record placement attempt: %w", err)
	}

	totals := domain.ComputeTotals(lineItems)
	outcome, err := s.charge(ctx, input, method, totals)
	if err != nil {
		attempt.Fail(err.Error())
		s.saveAttempt(ctx, attempt)
		return nil, err
	}
	if outcome.RequiresAction {
		attempt.AwaitAction()
		s.saveAttempt(ctx, attempt)
		return &types.PlacementResult{RequiresAction: true, ClientSecret: outcome.ClientSecret}, nil
	}
	if !outcome.Success {
		attempt.Fail(outcome.Reason)
		s.saveAttempt(ctx, attempt)
		return nil, &PaymentError{Reason: outcome.Reason}
	}
	attempt.MarkStep(ports.StepPaymentCharged)
	s.saveAttempt(ctx, attempt)

	order, err := domain.New(input.CustomerID, lineItems, input.ShippingAddress, method)
	if err != nil {
		attempt.Fail(err.Error())
		s.saveAttempt(ctx, attempt)
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	order, err = s.orders.Save(ctx, order)
	if err != nil {
		attempt.Fail(err.Error())
		s.saveAttempt(ctx, attempt)
		return nil, fmt.Errorf("persist order: %w", err)
	}
	attempt.MarkStep(ports.StepOrderPersisted)
	s.saveAttempt(ctx, attempt)

	paymentStatus := paymentsdomain.StatusCompleted
	if method == paymentsdomain.MethodCOD {
		paymentStatus = paymentsdomain.StatusPending
	}
	payment, err := paymentsdomain.NewPayment(order.ID, order.CustomerID, method, order.Total, paymentStatus, outcome.TransactionID)
	if err == nil {
		payment, err = s.payments.Save(ctx, payment)
	}
	if err != nil {
		attempt.Fail(err.Error())
		s.saveAttempt(ctx, attempt)
		return nil, fmt.Errorf("persist payment for order %s: %w", order.OrderNumber, err)
	}

	shipment, err := s.shipments.CreateForOrder(ctx, shipmentsports.CreateShipmentInput{
		OrderID:           order.ID,
		CustomerID:        order.CustomerID,
		Destination:       shipmentsdomain.Location{Address: order.ShippingAddress.Line()},
		EstimatedDelivery: order.EstimatedDelivery,
	})
	if err != nil {
		attempt.Fail(err.Error())
		s.saveAttempt(ctx, attempt)
		return nil, fmt.Errorf("create shipment for order %s: %w", order.OrderNumber, err)
	}
	attempt.MarkStep(ports.StepShipmentCreated)
	s.saveAttempt(ctx, attempt)

	for _, item := range order.Items {
		if err := s.catalog.Decrement(ctx, item.ProductID, item.Quantity); err != nil {
			attempt.Fail(err.Error())
			s.saveAttempt(ctx, attempt)
			return nil, fmt.Errorf("decrement inventory for %s: %w", item.Name, err)
		}
	}
	attempt.MarkStep(ports.StepInventoryDecremented)

	if s.notifier != nil {
		if err := s.notifier.OrderPlaced(ctx, order); err != nil {
			s.logger.WarnContext(ctx, "order confirmation notification failed",
				slog.String("orderNumber", order.OrderNumber), slog.String("error", err.Error()))
		} else {
			attempt.MarkStep(ports.StepNotified)
		}
	}

	attempt.Complete(order.ID)
	s.saveAttempt(ctx, attempt)

	if input.IdempotencyKey != "" && s.idempotency != nil {
		if _, err := s.idempotency.Save(ctx, ports.IdempotencyRecord{
			Key:         input.IdempotencyKey,
			RequestHash: requestHash,
			OrderID:     order.ID,
		}); err != nil {
			s.logger.WarnContext(ctx, "storing idempotency record failed",
				slog.String("orderNumber", order.OrderNumber), slog.String("error", err.Error()))
		}
	}

	return &types.PlacementResult{Order: order, Payment: payment, Shipment: shipment}, nil
}

// AdvanceStatus moves an order through its lifecycle, cascades the matching
// shipment status, and settles cash-on-delivery payments on delivery.
func (s *Service) AdvanceStatus(ctx context.Context, input types.AdvanceStatusInput) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	status, err := domain.ParseStatus(input.Status)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	note := input.Note
	if note == "" {
		note = fmt.Sprintf("Status updated to %s", status)
	}
	if err := order.Transition(status, note); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	settled := order.SettleCashOnDelivery()
	order, err = s.orders.Save(ctx, order)
	if err != nil {
		return nil, err
	}

	if shipmentStatus, ok := domain.ShipmentStatusFor(status); ok {
		if _, err := s.shipments.AdvanceStatusByOrder(ctx, order.ID, shipmentStatus, note); err != nil {
			// Orders placed before shipment tracking existed have none.
			if !errors.Is(err, shipmentsports.ErrNotFound) {
				return nil, err
			}
		}
	}

	if settled {
		if err := s.settlePaymentRecord(ctx, order.ID); err != nil {
			return nil, err
		}
	}

	if s.notifier != nil {
		if err := s.notifier.OrderStatusChanged(ctx, order); err != nil {
			s.logger.WarnContext(ctx, "order status notification failed",
				slog.String("orderNumber", order.OrderNumber), slog.String("error", err.Error()))
		}
	}
	return order, nil
}

// GetOrder returns the composed order view, scoped to its owner. An order
// belonging to someone else reads as not found.
func (s *Service) GetOrder(ctx context.Context, customerID, orderID uuid.UUID) (*types.OrderDetail, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != customerID {
		return nil, ports.ErrNotFound
	}
	detail := &types.OrderDetail{Order: order}
	if payment, err := s.payments.GetByOrderID(ctx, order.ID); err == nil {
		detail.Payment = payment
	} else if !errors.Is(err, paymentsports.ErrPaymentNotFound) {
		return nil, err
	}
	if shipment, err := s.shipments.GetByOrder(ctx, order.ID); err == nil {
		detail.Shipment = shipment
	} else if !errors.Is(err, shipmentsports.ErrNotFound) {
		return nil, err
	}
	return detail, nil
}

// ListOrders returns the customer's orders, newest first.
func (s *Service) ListOrders(ctx context.Context, customerID uuid.UUID) ([]*domain.Order, error) {
	return s.orders.ListByCustomer(ctx, customerID)
}

// ListAllOrders is the admin listing with status filter and pagination.
func (s *Service) ListAllOrders(ctx context.Context, input types.AdminListInput) (*types.OrderPage, error) {
	if input.Status != "" {
		if _, err := domain.ParseStatus(input.Status); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
		}
	}
	page, err := s.orders.List(ctx, ports.ListFilter{Status: input.Status, Page: input.Page, Limit: input.Limit})
	if err != nil {
		return nil, err
	}
	return &types.OrderPage{Orders: page.Orders, Total: page.Total, Page: page.Page, Pages: page.Pages}, nil
}

// validateCart resolves cart lines against the live catalog and snapshots
// name, price, and image into order line items.
func (s *Service) validateCart(ctx context.Context, items []types.CartItemInput) ([]domain.LineItem, error) {
	lineItems := make([]domain.LineItem, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be greater than zero", ErrInvalidRequest)
		}
		product, err := s.catalog.GetByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, catalogports.ErrNotFound) {
				return nil, &StockError{ProductName: "Product"}
			}
			return nil, err
		}
		if !product.Available(item.Quantity) {
			return nil, &StockError{ProductName: product.Name}
		}
		lineItems = append(lineItems, domain.LineItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  item.Quantity,
			Image:     product.PrimaryImage(),
		})
	}
	return lineItems, nil
}

// charge runs the method-specific payment flow. Wallet payments debit the
// balance and append the ledger entry before the gateway records the charge.
func (s *Service) charge(ctx context.Context, input types.PlaceOrderInput, method paymentsdomain.Method, totals domain.Totals) (paymentsports.Outcome, error) {
	req := paymentsports.ChargeRequest{
		CustomerID:      input.CustomerID,
		Amount:          totals.Total,
		Currency:        "inr",
		PaymentMethodID: input.PaymentMethodID,
		UPIID:           input.UPIID,
		PayPalOrderID:   input.PayPalOrderID,
	}

	if method == paymentsdomain.MethodWallet {
		wallet, err := s.wallets.GetByCustomerID(ctx, input.CustomerID)
		if err != nil {
			if errors.Is(err, paymentsports.ErrWalletNotFound) {
				return paymentsports.Outcome{}, fmt.Errorf("%w: no wallet on file", ErrInsufficientFunds)
			}
			return paymentsports.Outcome{}, err
		}
		tx, err := wallet.Debit(totals.Total, "Order payment", nil)
		if err != nil {
			if errors.Is(err, paymentsdomain.ErrInsufficientBalance) {
				return paymentsports.Outcome{}, fmt.Errorf("%w: %w", ErrInsufficientFunds, err)
			}
			return paymentsports.Outcome{}, err
		}
		if _, err := s.wallets.Save(ctx, wallet); err != nil {
			return paymentsports.Outcome{}, fmt.Errorf("debit wallet: %w", err)
		}
		if err := s.wallets.AppendTransaction(ctx, tx); err != nil {
			return paymentsports.Outcome{}, fmt.Errorf("record wallet transaction: %w", err)
		}
		req.WalletID = wallet.ID
	}

	gateway, err := s.gateways.Resolve(method)
	if err != nil {
		return paymentsports.Outcome{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	outcome, err := gateway.Charge(ctx, req)
	if err != nil {
		return paymentsports.Outcome{}, &PaymentError{Reason: err.Error()}
	}
	return outcome, nil
}

func (s *Service) settlePaymentRecord(ctx context.Context, orderID uuid.UUID) error {
	payment, err := s.payments.GetByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, paymentsports.ErrPaymentNotFound) {
			return nil
		}
		return err
	}
	payment.Settle()
	_, err = s.payments.Save(ctx, payment)
	return err
}

func (s *Service) composeResult(ctx context.Context, orderID uuid.UUID) (*types.PlacementResult, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	result := &types.PlacementResult{Order: order}
	if payment, err := s.payments.GetByOrderID(ctx, order.ID); err == nil {
		result.Payment = payment
	}
	if shipment, err := s.shipments.GetByOrder(ctx, order.ID); err == nil {
		result.Shipment = shipment
	}
	return result, nil
}

func (s *Service) saveAttempt(ctx context.Context, attempt *ports.PlacementAttempt) {
	if err := s.attempts.Save(ctx, attempt); err != nil {
		s.logger.ErrorContext(ctx, "saving placement attempt failed",
			slog.String("attemptId", attempt.ID.String()), slog.String("error", err.Error()))
	}
}

var _ ports.Service = (*Service)(nil)
