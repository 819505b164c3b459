package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/samber/lo"
	"golang.org/x/text/currency"
)

type orderRepository struct {
	q    *db.Queries
	dbtx db.DBTX
}

func NewOrder(pool *pgxpool.Pool) port.OrderRepository {
	return &orderRepository{
		q:    db.New(pool),
		dbtx: pool,
	}
}

func NewOrderWithTx(tx pgx.Tx) port.OrderRepository {
	return &orderRepository{
		q:    db.New(tx),
		dbtx: tx, // use provided transaction instead
	}
}

func (r *orderRepository) GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	var o domain.Order

	if orderID == uuid.Nil {
		return o, fmt.Errorf("orderID is empty")
	}

	dbOrder, err := r.q.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return o, fmt.Errorf("q.GetOrder: %w", domain.ErrOrderNotFound)
		}
		return o, fmt.Errorf("q.GetOrder: %w", err)
	}

	dbItems, err := r.q.GetOrderItems(ctx, []uuid.UUID{orderID})
	if err != nil {
		return o, fmt.Errorf("q.GetOrderItems: %w", err)
	}

	o, err = mapDBOrderToDomain(dbOrder, dbItems)
	if err != nil {
		return o, fmt.Errorf("mapDBOrderToDomain: %w", err)
	}

	return o, nil
}

func (r *orderRepository) GetPaymentByOrder(ctx context.Context, orderID uuid.UUID) (domain.Payment, error) {
	var p domain.Payment

	dbPayment, err := r.q.GetPaymentByOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return p, fmt.Errorf("q.GetPaymentByOrder: %w", domain.ErrNotFound)
		}
		return p, fmt.Errorf("q.GetPaymentByOrder: %w", err)
	}

	p, err = mapDBPaymentToDomain(dbPayment)
	if err != nil {
		return p, fmt.Errorf("mapDBPaymentToDomain: %w", err)
	}

	return p, nil
}

func (r *orderRepository) SearchOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	if err := filter.Validate(); err != nil {
		return nil, fmt.Errorf("filter.Validate: %w", err)
	}

	dbOrders, err := r.q.SearchOrders(ctx, db.SearchOrdersParams{
		OwnerID: filter.OwnerID,
		Email:   lo.EmptyableToPtr(domain.NormalizeEmail(filter.Email)),
	})
	if err != nil {
		return nil, fmt.Errorf("q.SearchOrders: %w", err)
	}

	if len(dbOrders) == 0 {
		return []domain.Order{}, nil
	}

	orderIDs := lo.Map(dbOrders, func(o db.Order, _ int) uuid.UUID { return o.ID })

	dbItems, err := r.q.GetOrderItems(ctx, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("q.GetOrderItems: %w", err)
	}

	itemsByOrder := lo.GroupBy(dbItems, func(item db.OrderItem) uuid.UUID { return item.OrderID })

	orders := make([]domain.Order, 0, len(dbOrders))
	for _, dbOrder := range dbOrders {
		order, err := mapDBOrderToDomain(dbOrder, itemsByOrder[dbOrder.ID])
		if err != nil {
			return nil, fmt.Errorf("mapDBOrderToDomain: %w", err)
		}
		orders = append(orders, order)
	}

	return orders, nil
}

func (r *orderRepository) InsertOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	if err := validateOrder(order); err != nil {
		return domain.Order{}, err
	}

	inserted, err := withTx(ctx, r.dbtx, func(q *db.Queries) (domain.Order, error) {
		return insertOrder(ctx, q, order)
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("withTx: %w", err)
	}

	return inserted, nil
}

func (r *orderRepository) InsertPayment(ctx context.Context, payment domain.Payment) (domain.Payment, error) {
	if err := validatePayment(payment); err != nil {
		return domain.Payment{}, err
	}

	inserted, err := withTx(ctx, r.dbtx, func(q *db.Queries) (domain.Payment, error) {
		return insertPayment(ctx, q, payment)
	})
	if err != nil {
		return domain.Payment{}, fmt.Errorf("withTx: %w", err)
	}

	return inserted, nil
}

// InsertOrderWithPayment writes the order, its payment and both outbox events atomically.
// The payment is bound to the inserted order and its owner.
func (r *orderRepository) InsertOrderWithPayment(ctx context.Context, order domain.Order, payment domain.Payment) (domain.Order, domain.Payment, error) {
	type result struct {
		order   domain.Order
		payment domain.Payment
	}

	if err := validateOrder(order); err != nil {
		return domain.Order{}, domain.Payment{}, err
	}

	res, err := withTx(ctx, r.dbtx, func(q *db.Queries) (result, error) {
		insertedOrder, err := insertOrder(ctx, q, order)
		if err != nil {
			return result{}, err
		}

		payment.OrderID = insertedOrder.ID
		payment.OwnerID = insertedOrder.OwnerID
		if err := validatePayment(payment); err != nil {
			return result{}, err
		}

		insertedPayment, err := insertPayment(ctx, q, payment)
		if err != nil {
			return result{}, err
		}

		return result{order: insertedOrder, payment: insertedPayment}, nil
	})
	if err != nil {
		return domain.Order{}, domain.Payment{}, fmt.Errorf("withTx: %w", err)
	}

	return res.order, res.payment, nil
}

func insertOrder(ctx context.Context, q *db.Queries, order domain.Order) (domain.Order, error) {
	row, err := q.InsertOrder(ctx, db.InsertOrderParams{
		OwnerID:         order.OwnerID,
		ShippingName:    order.Shipping.Name,
		ShippingEmail:   order.Shipping.Email,
		ShippingPhone:   order.Shipping.Phone,
		ShippingAddress: order.Shipping.Address,
		PaymentMethod:   order.PaymentMethod,
		PaymentStatus:   string(order.PaymentStatus),
		TotalAmount:     order.Total.Amount,
		TotalCurrency:   order.Total.Currency.String(),
	})
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return domain.Order{}, fmt.Errorf("q.InsertOrder: %w", domain.ErrUserNotFound)
		}
		return domain.Order{}, fmt.Errorf("q.InsertOrder: %w", err)
	}

	order.ID = row.ID
	order.CreatedAt = row.CreatedAt

	// TODO: batch the item inserts with pgx.Batch
	for idx, item := range order.Items {
		arg := db.InsertOrderItemParams{
			OrderID:     order.ID,
			Position:    int32(idx),
			ProductRef:  item.ProductID,
			Name:        item.Name,
			Quantity:    int32(item.Quantity),
			PriceAmount: item.Price,
		}
		if err := q.InsertOrderItem(ctx, arg); err != nil {
			return domain.Order{}, fmt.Errorf("q.InsertOrderItem: %w", err)
		}
	}

	event, err := domain.NewOrderPlacedEvent(order)
	if err != nil {
		return domain.Order{}, fmt.Errorf("domain.NewOrderPlacedEvent: %w", err)
	}

	if err := insertOutboxEvent(ctx, q, event); err != nil {
		return domain.Order{}, err
	}

	return order, nil
}

func insertPayment(ctx context.Context, q *db.Queries, payment domain.Payment) (domain.Payment, error) {
	row, err := q.InsertPayment(ctx, db.InsertPaymentParams{
		OrderID:       payment.OrderID,
		OwnerID:       payment.OwnerID,
		Amount:        payment.Amount.Amount,
		Currency:      payment.Amount.Currency.String(),
		Status:        string(payment.Status),
		TransactionID: payment.TransactionID,
		PaymentMethod: payment.PaymentMethod,
	})
	if err != nil {
		switch pgErrorCode(err) {
		case pgForeignKeyViolation:
			return domain.Payment{}, fmt.Errorf("q.InsertPayment: %w", domain.ErrPaymentWithoutOrder)
		case pgUniqueViolation:
			return domain.Payment{}, fmt.Errorf("q.InsertPayment: %w", domain.ErrPaymentExists)
		}
		return domain.Payment{}, fmt.Errorf("q.InsertPayment: %w", err)
	}

	payment.ID = row.ID
	payment.CreatedAt = row.CreatedAt

	event, err := domain.NewPaymentRecordedEvent(payment)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("domain.NewPaymentRecordedEvent: %w", err)
	}

	if err := insertOutboxEvent(ctx, q, event); err != nil {
		return domain.Payment{}, err
	}

	return payment, nil
}

func insertOutboxEvent(ctx context.Context, q *db.Queries, event domain.OutboxEvent) error {
	_, err := q.InsertOutboxEvent(ctx, db.InsertOutboxEventParams{
		ID:          event.ID,
		AggregateID: event.AggregateID,
		EventType:   string(event.Type),
		Payload:     event.Payload,
	})
	if err != nil {
		return fmt.Errorf("q.InsertOutboxEvent[%s]: %w", event.Type, err)
	}

	return nil
}

func validateOrder(order domain.Order) error {
	if order.OwnerID == uuid.Nil {
		return errors.New("ownerID is empty")
	}
	if len(order.Items) == 0 {
		return errors.New("no items in order")
	}
	return nil
}

func validatePayment(payment domain.Payment) error {
	if payment.OrderID == uuid.Nil {
		return errors.New("orderID is empty")
	}
	if payment.OwnerID == uuid.Nil {
		return errors.New("ownerID is empty")
	}
	return nil
}

func mapDBOrderToDomain(dbOrder db.Order, dbItems []db.OrderItem) (domain.Order, error) {
	var o domain.Order

	unit, err := currency.ParseISO(dbOrder.TotalCurrency)
	if err != nil {
		return o, fmt.Errorf("currency[%s] is not valid: %w", dbOrder.TotalCurrency, err)
	}

	status, err := domain.ToPaymentStatus(dbOrder.PaymentStatus)
	if err != nil {
		return o, fmt.Errorf("domain.ToPaymentStatus[%s]: %w", dbOrder.PaymentStatus, err)
	}

	items := lo.Map(dbItems, func(item db.OrderItem, _ int) domain.OrderItem {
		return domain.OrderItem{
			ProductID: item.ProductRef,
			Name:      item.Name,
			Quantity:  int(item.Quantity),
			Price:     item.PriceAmount,
		}
	})

	return domain.Order{
		ID:      dbOrder.ID,
		OwnerID: dbOrder.OwnerID,
		Items:   items,
		Shipping: domain.ShippingInfo{
			Name:    dbOrder.ShippingName,
			Email:   dbOrder.ShippingEmail,
			Phone:   dbOrder.ShippingPhone,
			Address: dbOrder.ShippingAddress,
		},
		PaymentMethod: dbOrder.PaymentMethod,
		PaymentStatus: status,
		Total:         domain.Money{Amount: dbOrder.TotalAmount, Currency: unit},
		CreatedAt:     dbOrder.CreatedAt,
	}, nil
}

func mapDBPaymentToDomain(dbPayment db.Payment) (domain.Payment, error) {
	var p domain.Payment

	unit, err := currency.ParseISO(dbPayment.Currency)
	if err != nil {
		return p, fmt.Errorf("currency[%s] is not valid: %w", dbPayment.Currency, err)
	}

	status, err := domain.ToPaymentStatus(dbPayment.Status)
	if err != nil {
		return p, fmt.Errorf("domain.ToPaymentStatus[%s]: %w", dbPayment.Status, err)
	}

	return domain.Payment{
		ID:            dbPayment.ID,
		OrderID:       dbPayment.OrderID,
		OwnerID:       dbPayment.OwnerID,
		Amount:        domain.Money{Amount: dbPayment.Amount, Currency: unit},
		Status:        status,
		TransactionID: dbPayment.TransactionID,
		PaymentMethod: dbPayment.PaymentMethod,
		CreatedAt:     dbPayment.CreatedAt,
	}, nil
}
