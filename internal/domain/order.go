package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Order struct {
	ID            uuid.UUID
	OwnerID       uuid.UUID
	Items         []OrderItem
	Shipping      ShippingInfo
	PaymentMethod string
	PaymentStatus PaymentStatus
	Total         Money

	CreatedAt time.Time
}

type OrderItem struct {
	ProductID string
	Name      string
	Quantity  int
	Price     decimal.Decimal
}

type ShippingInfo struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

type Payment struct {
	ID            uuid.UUID
	OrderID       uuid.UUID
	OwnerID       uuid.UUID
	Amount        Money
	Status        PaymentStatus
	TransactionID string
	PaymentMethod string

	CreatedAt time.Time
}
