// Package checkout records orders and their payments for authenticated identities.
//
// A payment is only ever written for an order that exists and belongs to the same
// identity. The combined checkout path writes both in one transaction.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// PaymentRecord describes a payment to attach to an existing order.
type PaymentRecord struct {
	Amount        decimal.Decimal
	Status        domain.PaymentStatus
	TransactionID string
	PaymentMethod string
}

type ListQuery struct {
	Scope domain.OrderScope
	Email string
}

type Recorder struct {
	orders port.OrderRepository
	unit   currency.Unit
}

func NewRecorder(orders port.OrderRepository, unit currency.Unit) (*Recorder, error) {
	if orders == nil {
		return nil, errors.New("orders is nil")
	}

	return &Recorder{
		orders: orders,
		unit:   unit,
	}, nil
}

// PlaceOrder validates the checkout and stores it as an order owned by identity.
// Validation failures are returned before anything is persisted.
func (r *Recorder) PlaceOrder(ctx context.Context, identity domain.Identity, checkout domain.Checkout) (domain.Order, error) {
	if err := requireIdentity(identity); err != nil {
		return domain.Order{}, err
	}

	order, err := checkout.ToOrder(identity.ID, r.unit)
	if err != nil {
		return domain.Order{}, err
	}

	inserted, err := r.orders.InsertOrder(ctx, order)
	if err != nil {
		return domain.Order{}, fmt.Errorf("orders.InsertOrder: %w", err)
	}

	slog.InfoContext(ctx, "order placed",
		"method", "Recorder.PlaceOrder",
		"order_id", inserted.ID,
		"owner_id", inserted.OwnerID,
		"total", inserted.Total.String())

	return inserted, nil
}

// RecordPayment attaches a payment to an order that must already exist and
// belong to identity.
func (r *Recorder) RecordPayment(ctx context.Context, order domain.Order, identity domain.Identity, record PaymentRecord) (domain.Payment, error) {
	if err := requireIdentity(identity); err != nil {
		return domain.Payment{}, err
	}

	if order.ID == uuid.Nil {
		return domain.Payment{}, domain.ErrPaymentWithoutOrder
	}

	stored, err := r.orders.GetOrder(ctx, order.ID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return domain.Payment{}, domain.ErrPaymentWithoutOrder
		}
		return domain.Payment{}, fmt.Errorf("orders.GetOrder: %w", err)
	}

	if stored.OwnerID != identity.ID {
		return domain.Payment{}, domain.ErrPaymentWithoutOrder
	}

	var invalid []string
	if !domain.ValidAmount(record.Amount, stored.Total.Currency) {
		invalid = append(invalid, "amount")
	}
	if record.Status == "" {
		record.Status = domain.PaymentStatusPending
	}
	method := strings.ToLower(strings.TrimSpace(record.PaymentMethod))
	if method == "" {
		method = stored.PaymentMethod
	}
	if len(invalid) > 0 {
		return domain.Payment{}, domain.NewValidationError(invalid...)
	}

	payment, err := r.orders.InsertPayment(ctx, domain.Payment{
		OrderID:       stored.ID,
		OwnerID:       identity.ID,
		Amount:        domain.Money{Amount: record.Amount, Currency: stored.Total.Currency},
		Status:        record.Status,
		TransactionID: strings.TrimSpace(record.TransactionID),
		PaymentMethod: method,
	})
	if err != nil {
		return domain.Payment{}, fmt.Errorf("orders.InsertPayment: %w", err)
	}

	slog.InfoContext(ctx, "payment recorded",
		"method", "Recorder.RecordPayment",
		"payment_id", payment.ID,
		"order_id", payment.OrderID,
		"status", payment.Status)

	return payment, nil
}

// OrderPayment returns the payment of an order. Only the owner and admins can read it,
// anyone else gets ErrOrderNotFound.
func (r *Recorder) OrderPayment(ctx context.Context, identity domain.Identity, orderID uuid.UUID) (domain.Payment, error) {
	if err := requireIdentity(identity); err != nil {
		return domain.Payment{}, err
	}

	if orderID == uuid.Nil {
		return domain.Payment{}, domain.NewValidationError("orderId")
	}

	order, err := r.orders.GetOrder(ctx, orderID)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("orders.GetOrder: %w", err)
	}

	if order.OwnerID != identity.ID && !identity.IsAdmin() {
		return domain.Payment{}, domain.ErrOrderNotFound
	}

	payment, err := r.orders.GetPaymentByOrder(ctx, orderID)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("orders.GetPaymentByOrder: %w", err)
	}

	return payment, nil
}

// PlaceOrderWithPayment stores the order and its payment atomically: either both
// exist afterwards or neither does.
func (r *Recorder) PlaceOrderWithPayment(ctx context.Context, identity domain.Identity, checkout domain.Checkout, transactionID string) (domain.Order, domain.Payment, error) {
	if err := requireIdentity(identity); err != nil {
		return domain.Order{}, domain.Payment{}, err
	}

	transactionID = strings.TrimSpace(transactionID)

	order, err := checkout.ToOrder(identity.ID, r.unit)
	if err != nil {
		var vErr *domain.ValidationError
		if transactionID == "" && errors.As(err, &vErr) {
			return domain.Order{}, domain.Payment{}, domain.NewValidationError(append(vErr.Fields, "paymentId")...)
		}
		return domain.Order{}, domain.Payment{}, err
	}

	if transactionID == "" {
		return domain.Order{}, domain.Payment{}, domain.NewValidationError("paymentId")
	}

	insertedOrder, payment, err := r.orders.InsertOrderWithPayment(ctx, order, domain.Payment{
		Amount:        order.Total,
		Status:        order.PaymentStatus,
		TransactionID: transactionID,
		PaymentMethod: order.PaymentMethod,
	})
	if err != nil {
		return domain.Order{}, domain.Payment{}, fmt.Errorf("orders.InsertOrderWithPayment: %w", err)
	}

	slog.InfoContext(ctx, "order and payment recorded",
		"method", "Recorder.PlaceOrderWithPayment",
		"order_id", insertedOrder.ID,
		"payment_id", payment.ID,
		"status", payment.Status)

	return insertedOrder, payment, nil
}

// ListOrders returns the caller's orders, newest first. Listing across owners
// is reserved for admins.
func (r *Recorder) ListOrders(ctx context.Context, identity domain.Identity, query ListQuery) ([]domain.Order, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}

	filter := domain.OrderFilter{Email: strings.TrimSpace(query.Email)}

	switch query.Scope {
	case domain.ScopeOwn:
		ownerID := identity.ID
		filter.OwnerID = &ownerID
	case domain.ScopeAllOwners:
		if !identity.IsAdmin() {
			return nil, domain.ErrAdminOnly
		}
	default:
		return nil, fmt.Errorf("%w: unknown scope %d", domain.ErrValidation, query.Scope)
	}

	orders, err := r.orders.SearchOrders(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("orders.SearchOrders: %w", err)
	}

	return orders, nil
}

func requireIdentity(identity domain.Identity) error {
	if identity.ID == uuid.Nil {
		return fmt.Errorf("%w: identity is empty", domain.ErrUnauthorized)
	}
	return nil
}
