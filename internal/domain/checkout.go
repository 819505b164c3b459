package domain

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// CartLine is a cart item as submitted by the client.
type CartLine struct {
	ProductID string
	// FallbackID is the alternate identifier some clients send instead of ProductID.
	FallbackID string
	Name       string
	Quantity   int
	Price      decimal.Decimal
}

// Checkout is a single checkout submission.
type Checkout struct {
	Lines         []CartLine
	Shipping      ShippingInfo
	PaymentMethod string
	PaymentStatus string
	Total         *decimal.Decimal
}

// ToOrder validates the submission and normalizes it into an order owned by ownerID.
// All offending fields are reported at once.
func (c Checkout) ToOrder(ownerID uuid.UUID, unit currency.Unit) (Order, error) {
	var (
		o       Order
		invalid []string
	)

	shipping := ShippingInfo{
		Name:    strings.TrimSpace(c.Shipping.Name),
		Email:   NormalizeEmail(c.Shipping.Email),
		Phone:   strings.TrimSpace(c.Shipping.Phone),
		Address: strings.TrimSpace(c.Shipping.Address),
	}

	if shipping.Name == "" {
		invalid = append(invalid, "shippingInfo.name")
	}
	if shipping.Email == "" {
		invalid = append(invalid, "shippingInfo.email")
	}
	if shipping.Phone == "" {
		invalid = append(invalid, "shippingInfo.phone")
	}
	if shipping.Address == "" {
		invalid = append(invalid, "shippingInfo.address")
	}

	paymentMethod := strings.ToLower(strings.TrimSpace(c.PaymentMethod))
	if paymentMethod == "" {
		invalid = append(invalid, "paymentMethod")
	}

	status, err := ToPaymentStatus(c.PaymentStatus)
	if err != nil {
		invalid = append(invalid, "paymentStatus")
	}

	if c.Total == nil || !ValidAmount(*c.Total, unit) {
		invalid = append(invalid, "total")
	}

	if len(c.Lines) == 0 {
		invalid = append(invalid, "cartItems")
	}

	items := make([]OrderItem, 0, len(c.Lines))
	for idx, line := range c.Lines {
		item, lineInvalid := line.normalize(unit)
		for _, field := range lineInvalid {
			invalid = append(invalid, fmt.Sprintf("cartItems[%d].%s", idx, field))
		}
		items = append(items, item)
	}

	if len(invalid) > 0 {
		return o, NewValidationError(invalid...)
	}

	return Order{
		OwnerID:       ownerID,
		Items:         items,
		Shipping:      shipping,
		PaymentMethod: paymentMethod,
		PaymentStatus: status,
		Total:         Money{Amount: *c.Total, Currency: unit},
	}, nil
}

// MaxQuantity is the largest quantity a single cart line may carry.
const MaxQuantity = math.MaxInt32

func (l CartLine) normalize(unit currency.Unit) (OrderItem, []string) {
	var invalid []string

	productID := strings.TrimSpace(l.ProductID)
	if productID == "" {
		productID = strings.TrimSpace(l.FallbackID)
	}
	if productID == "" {
		invalid = append(invalid, "productId")
	}
	if l.Quantity < 1 || l.Quantity > MaxQuantity {
		invalid = append(invalid, "quantity")
	}
	if !ValidAmount(l.Price, unit) {
		invalid = append(invalid, "price")
	}

	return OrderItem{
		ProductID: productID,
		Name:      strings.TrimSpace(l.Name),
		Quantity:  l.Quantity,
		Price:     l.Price,
	}, invalid
}
