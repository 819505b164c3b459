// Package memory keeps users, orders, payments and outbox events in process memory.
// It backs the memory storage driver and the service tests.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

var (
	_ port.UserRepository   = (*Store)(nil)
	_ port.OrderRepository  = (*Store)(nil)
	_ port.OutboxRepository = (*Store)(nil)
)

type storedOrder struct {
	seq   int
	order domain.Order
}

type Store struct {
	mu sync.RWMutex

	users    map[uuid.UUID]domain.Identity
	orders   map[uuid.UUID]storedOrder
	payments map[uuid.UUID]domain.Payment // by order id
	outbox   []domain.OutboxEvent
	seq      int

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:    make(map[uuid.UUID]domain.Identity),
		orders:   make(map[uuid.UUID]storedOrder),
		payments: make(map[uuid.UUID]domain.Payment),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) GetUser(ctx context.Context, userID uuid.UUID) (domain.Identity, error) {
	if err := ctx.Err(); err != nil {
		return domain.Identity{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return domain.Identity{}, domain.ErrUserNotFound
	}
	return u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (domain.Identity, error) {
	if err := ctx.Err(); err != nil {
		return domain.Identity{}, err
	}

	email = domain.NormalizeEmail(email)

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.Identity{}, domain.ErrUserNotFound
}

func (s *Store) CreateUser(ctx context.Context, identity domain.Identity) (domain.Identity, error) {
	if err := ctx.Err(); err != nil {
		return domain.Identity{}, err
	}
	if identity.PasswordHash == "" {
		return domain.Identity{}, fmt.Errorf("password hash is empty")
	}

	identity.Email = domain.NormalizeEmail(identity.Email)

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == identity.Email {
			return domain.Identity{}, domain.ErrEmailExists
		}
	}

	identity.ID = uuid.New()
	identity.CreatedAt = s.now()
	s.users[identity.ID] = identity

	return identity, nil
}

// DeleteUser removes the user together with its orders and payments.
func (s *Store) DeleteUser(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return domain.ErrUserNotFound
	}
	delete(s.users, userID)

	for id, stored := range s.orders {
		if stored.order.OwnerID == userID {
			delete(s.orders, id)
			delete(s.payments, id)
		}
	}
	return nil
}

func (s *Store) GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return domain.Order{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.orders[orderID]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return cloneOrder(stored.order), nil
}

func (s *Store) GetPaymentByOrder(ctx context.Context, orderID uuid.UUID) (domain.Payment, error) {
	if err := ctx.Err(); err != nil {
		return domain.Payment{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.payments[orderID]
	if !ok {
		return domain.Payment{}, domain.ErrNotFound
	}
	return p, nil
}

func (s *Store) SearchOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := filter.Validate(); err != nil {
		return nil, fmt.Errorf("filter.Validate: %w", err)
	}

	email := domain.NormalizeEmail(filter.Email)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []storedOrder
	for _, stored := range s.orders {
		if filter.OwnerID != nil && stored.order.OwnerID != *filter.OwnerID {
			continue
		}
		if email != "" && stored.order.Shipping.Email != email {
			continue
		}
		matched = append(matched, stored)
	}

	// newest first
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].seq > matched[j].seq
	})

	result := make([]domain.Order, 0, len(matched))
	for _, stored := range matched {
		result = append(result, cloneOrder(stored.order))
	}
	return result, nil
}

func (s *Store) InsertOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return domain.Order{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.insertOrderLocked(order)
}

func (s *Store) InsertPayment(ctx context.Context, payment domain.Payment) (domain.Payment, error) {
	if err := ctx.Err(); err != nil {
		return domain.Payment{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.insertPaymentLocked(payment)
}

func (s *Store) InsertOrderWithPayment(ctx context.Context, order domain.Order, payment domain.Payment) (domain.Order, domain.Payment, error) {
	if err := ctx.Err(); err != nil {
		return domain.Order{}, domain.Payment{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// payment validation runs before any write so a failure leaves nothing behind
	if err := validatePaymentFields(payment); err != nil {
		return domain.Order{}, domain.Payment{}, err
	}

	inserted, err := s.insertOrderLocked(order)
	if err != nil {
		return domain.Order{}, domain.Payment{}, err
	}

	payment.OrderID = inserted.ID
	payment.OwnerID = inserted.OwnerID

	insertedPayment, err := s.insertPaymentLocked(payment)
	if err != nil {
		return domain.Order{}, domain.Payment{}, err
	}

	return inserted, insertedPayment, nil
}

func (s *Store) PublishPending(ctx context.Context, limit int, fn port.PublishFunc) (int, error) {
	if limit <= 0 {
		return 0, fmt.Errorf("limit must be positive: %d", limit)
	}
	if fn == nil {
		return 0, fmt.Errorf("fn is nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		batch   []domain.OutboxEvent
		indexes []int
	)
	for idx, e := range s.outbox {
		if e.PublishedAt != nil {
			continue
		}
		batch = append(batch, e)
		indexes = append(indexes, idx)
		if len(batch) == limit {
			break
		}
	}

	if len(batch) == 0 {
		return 0, nil
	}

	if err := fn(ctx, batch); err != nil {
		return 0, fmt.Errorf("fn: %w", err)
	}

	publishedAt := s.now()
	for _, idx := range indexes {
		s.outbox[idx].PublishedAt = &publishedAt
	}

	return len(batch), nil
}

// PendingEvents returns the unpublished outbox events, oldest first.
func (s *Store) PendingEvents() []domain.OutboxEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.OutboxEvent
	for _, e := range s.outbox {
		if e.PublishedAt == nil {
			result = append(result, e)
		}
	}
	return result
}

func (s *Store) insertOrderLocked(order domain.Order) (domain.Order, error) {
	if order.OwnerID == uuid.Nil {
		return domain.Order{}, fmt.Errorf("ownerID is empty")
	}
	if len(order.Items) == 0 {
		return domain.Order{}, fmt.Errorf("no items in order")
	}
	if _, ok := s.users[order.OwnerID]; !ok {
		return domain.Order{}, domain.ErrUserNotFound
	}

	order.ID = uuid.New()
	order.CreatedAt = s.now()

	event, err := domain.NewOrderPlacedEvent(order)
	if err != nil {
		return domain.Order{}, fmt.Errorf("domain.NewOrderPlacedEvent: %w", err)
	}

	s.seq++
	s.orders[order.ID] = storedOrder{seq: s.seq, order: cloneOrder(order)}
	s.appendEventLocked(event)

	return order, nil
}

func (s *Store) insertPaymentLocked(payment domain.Payment) (domain.Payment, error) {
	if err := validatePaymentFields(payment); err != nil {
		return domain.Payment{}, err
	}

	stored, ok := s.orders[payment.OrderID]
	if !ok || stored.order.OwnerID != payment.OwnerID {
		return domain.Payment{}, domain.ErrPaymentWithoutOrder
	}
	if _, exists := s.payments[payment.OrderID]; exists {
		return domain.Payment{}, domain.ErrPaymentExists
	}

	payment.ID = uuid.New()
	payment.CreatedAt = s.now()

	event, err := domain.NewPaymentRecordedEvent(payment)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("domain.NewPaymentRecordedEvent: %w", err)
	}

	s.payments[payment.OrderID] = payment
	s.appendEventLocked(event)

	return payment, nil
}

func (s *Store) appendEventLocked(event domain.OutboxEvent) {
	event.CreatedAt = s.now()
	s.outbox = append(s.outbox, event)
}

func validatePaymentFields(payment domain.Payment) error {
	if payment.Amount.Amount.IsNegative() {
		return fmt.Errorf("amount is negative")
	}
	return nil
}

func cloneOrder(o domain.Order) domain.Order {
	o.Items = slices.Clone(o.Items)
	return o
}
