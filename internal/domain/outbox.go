package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventOrderPlaced     EventType = "order.placed"
	EventPaymentRecorded EventType = "payment.recorded"
)

type OutboxEvent struct {
	ID          uuid.UUID
	AggregateID uuid.UUID
	Type        EventType
	Payload     json.RawMessage

	CreatedAt   time.Time
	PublishedAt *time.Time
}

type OrderPlacedPayload struct {
	OrderID       uuid.UUID     `json:"orderId"`
	OwnerID       uuid.UUID     `json:"ownerId"`
	Email         string        `json:"email"`
	Total         string        `json:"total"`
	Currency      string        `json:"currency"`
	ItemCount     int           `json:"itemCount"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	CreatedAt     time.Time     `json:"createdAt"`
}

type PaymentRecordedPayload struct {
	PaymentID     uuid.UUID     `json:"paymentId"`
	OrderID       uuid.UUID     `json:"orderId"`
	OwnerID       uuid.UUID     `json:"ownerId"`
	Amount        string        `json:"amount"`
	Currency      string        `json:"currency"`
	Status        PaymentStatus `json:"status"`
	TransactionID string        `json:"transactionId"`
	CreatedAt     time.Time     `json:"createdAt"`
}

func NewOrderPlacedEvent(o Order) (OutboxEvent, error) {
	return newEvent(o.ID, EventOrderPlaced, OrderPlacedPayload{
		OrderID:       o.ID,
		OwnerID:       o.OwnerID,
		Email:         o.Shipping.Email,
		Total:         o.Total.String(),
		Currency:      o.Total.Currency.String(),
		ItemCount:     len(o.Items),
		PaymentStatus: o.PaymentStatus,
		CreatedAt:     o.CreatedAt,
	})
}

func NewPaymentRecordedEvent(p Payment) (OutboxEvent, error) {
	return newEvent(p.OrderID, EventPaymentRecorded, PaymentRecordedPayload{
		PaymentID:     p.ID,
		OrderID:       p.OrderID,
		OwnerID:       p.OwnerID,
		Amount:        p.Amount.String(),
		Currency:      p.Amount.Currency.String(),
		Status:        p.Status,
		TransactionID: p.TransactionID,
		CreatedAt:     p.CreatedAt,
	})
}

func newEvent(aggregateID uuid.UUID, eventType EventType, payload any) (OutboxEvent, error) {
	var e OutboxEvent

	b, err := json.Marshal(payload)
	if err != nil {
		return e, fmt.Errorf("json.Marshal[%s]: %w", eventType, err)
	}

	return OutboxEvent{
		ID:          uuid.New(),
		AggregateID: aggregateID,
		Type:        eventType,
		Payload:     b,
	}, nil
}
