package port

import (
	"context"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

type PaymentProvider interface {
	// CreateIntent returns the client secret of a new payment intent for amount in the store currency.
	CreateIntent(ctx context.Context, amount decimal.Decimal) (string, error)

	IntentStatus(ctx context.Context, intentID string) (domain.PaymentStatus, error)
}
