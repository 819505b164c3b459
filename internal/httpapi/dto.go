package httpapi

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type registerRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	SecretKey string `json:"secretKey"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID      uuid.UUID   `json:"id"`
	Name    string      `json:"name"`
	Email   string      `json:"email"`
	Role    domain.Role `json:"role"`
	IsAdmin bool        `json:"isAdmin"`
}

type sessionResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type cartItemRequest struct {
	ProductID string          `json:"productId"`
	ID        string          `json:"_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type shippingInfoDTO struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type checkoutRequest struct {
	CartItems     []cartItemRequest `json:"cartItems"`
	ShippingInfo  shippingInfoDTO   `json:"shippingInfo"`
	PaymentMethod string            `json:"paymentMethod"`
	PaymentStatus string            `json:"paymentStatus"`
	Total         *decimal.Decimal  `json:"total"`
}

type saveOrderPaymentRequest struct {
	checkoutRequest
	PaymentID string `json:"paymentId"`
}

type paymentIntentRequest struct {
	Amount *decimal.Decimal `json:"amount"`
}

type recordPaymentRequest struct {
	Amount        *decimal.Decimal `json:"amount"`
	PaymentStatus string           `json:"paymentStatus"`
	PaymentID     string           `json:"paymentId"`
	PaymentMethod string           `json:"paymentMethod"`
}

type orderItemResponse struct {
	ProductID string      `json:"productId"`
	Name      string      `json:"name"`
	Quantity  int         `json:"quantity"`
	Price     json.Number `json:"price"`
}

type orderResponse struct {
	ID            uuid.UUID            `json:"id"`
	OwnerID       uuid.UUID            `json:"ownerId"`
	Items         []orderItemResponse  `json:"items"`
	ShippingInfo  shippingInfoDTO      `json:"shippingInfo"`
	PaymentMethod string               `json:"paymentMethod"`
	PaymentStatus domain.PaymentStatus `json:"paymentStatus"`
	Total         json.Number          `json:"total"`
	Currency      string               `json:"currency"`
	CreatedAt     time.Time            `json:"createdAt"`
}

type paymentResponse struct {
	ID            uuid.UUID            `json:"id"`
	OrderID       uuid.UUID            `json:"orderId"`
	Amount        json.Number          `json:"amount"`
	Currency      string               `json:"currency"`
	Status        domain.PaymentStatus `json:"status"`
	TransactionID string               `json:"transactionId"`
	PaymentMethod string               `json:"paymentMethod"`
	CreatedAt     time.Time            `json:"createdAt"`
}

func (c checkoutRequest) toDomain() domain.Checkout {
	return domain.Checkout{
		Lines: lo.Map(c.CartItems, func(item cartItemRequest, _ int) domain.CartLine {
			return domain.CartLine{
				ProductID:  item.ProductID,
				FallbackID: item.ID,
				Name:       item.Name,
				Quantity:   item.Quantity,
				Price:      item.Price,
			}
		}),
		Shipping: domain.ShippingInfo{
			Name:    c.ShippingInfo.Name,
			Email:   c.ShippingInfo.Email,
			Phone:   c.ShippingInfo.Phone,
			Address: c.ShippingInfo.Address,
		},
		PaymentMethod: c.PaymentMethod,
		PaymentStatus: c.PaymentStatus,
		Total:         c.Total,
	}
}

func toUserResponse(i domain.Identity) userResponse {
	return userResponse{
		ID:      i.ID,
		Name:    i.Name,
		Email:   i.Email,
		Role:    i.Role,
		IsAdmin: i.IsAdmin(),
	}
}

func toOrderResponse(o domain.Order) orderResponse {
	return orderResponse{
		ID:      o.ID,
		OwnerID: o.OwnerID,
		Items: lo.Map(o.Items, func(item domain.OrderItem, _ int) orderItemResponse {
			return orderItemResponse{
				ProductID: item.ProductID,
				Name:      item.Name,
				Quantity:  item.Quantity,
				Price:     amount(domain.Money{Amount: item.Price, Currency: o.Total.Currency}),
			}
		}),
		ShippingInfo: shippingInfoDTO{
			Name:    o.Shipping.Name,
			Email:   o.Shipping.Email,
			Phone:   o.Shipping.Phone,
			Address: o.Shipping.Address,
		},
		PaymentMethod: o.PaymentMethod,
		PaymentStatus: o.PaymentStatus,
		Total:         amount(o.Total),
		Currency:      o.Total.Currency.String(),
		CreatedAt:     o.CreatedAt,
	}
}

func toPaymentResponse(p domain.Payment) paymentResponse {
	return paymentResponse{
		ID:            p.ID,
		OrderID:       p.OrderID,
		Amount:        amount(p.Amount),
		Currency:      p.Amount.Currency.String(),
		Status:        p.Status,
		TransactionID: p.TransactionID,
		PaymentMethod: p.PaymentMethod,
		CreatedAt:     p.CreatedAt,
	}
}

func amount(m domain.Money) json.Number {
	return json.Number(m.String())
}
