package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
)

// OrderRepository persists orders and payments. Every write also records
// the matching outbox event in the same transaction.
type OrderRepository interface {
	GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error)
	GetPaymentByOrder(ctx context.Context, orderID uuid.UUID) (domain.Payment, error)

	SearchOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)

	InsertOrder(ctx context.Context, order domain.Order) (domain.Order, error)
	InsertPayment(ctx context.Context, payment domain.Payment) (domain.Payment, error)
	InsertOrderWithPayment(ctx context.Context, order domain.Order, payment domain.Payment) (domain.Order, domain.Payment, error)
}
