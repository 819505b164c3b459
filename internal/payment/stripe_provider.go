// Package payment talks to the payment processor.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"golang.org/x/text/currency"
)

var _ port.PaymentProvider = (*StripeProvider)(nil)

type StripeProvider struct {
	client *client.API
	unit   currency.Unit
}

type StripeOption func(*stripe.Backends)

// WithBackendURL points the client at another API host, e.g. a local stub.
func WithBackendURL(url string) StripeOption {
	return func(b *stripe.Backends) {
		b.API = stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
			URL:               stripe.String(url),
			MaxNetworkRetries: stripe.Int64(0),
		})
	}
}

func NewStripeProvider(apiKey string, unit currency.Unit, opts ...StripeOption) (*StripeProvider, error) {
	if apiKey == "" {
		return nil, errors.New("stripe api key is empty")
	}

	var backends *stripe.Backends
	if len(opts) > 0 {
		backends = &stripe.Backends{
			API:     stripe.GetBackend(stripe.APIBackend),
			Connect: stripe.GetBackend(stripe.ConnectBackend),
			Uploads: stripe.GetBackend(stripe.UploadsBackend),
		}
		for _, opt := range opts {
			opt(backends)
		}
	}

	sc := &client.API{}
	sc.Init(apiKey, backends)

	return &StripeProvider{
		client: sc,
		unit:   unit,
	}, nil
}

func (p *StripeProvider) CreateIntent(ctx context.Context, amount decimal.Decimal) (string, error) {
	if !amount.IsPositive() {
		return "", domain.NewValidationError("amount")
	}

	minor := domain.Money{Amount: amount, Currency: p.unit}.MinorUnits()
	if minor <= 0 {
		return "", domain.NewValidationError("amount")
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(minor),
		Currency: stripe.String(strings.ToLower(p.unit.String())),
	}
	params.Context = ctx

	pi, err := p.client.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("PaymentIntents.New: %w", mapStripeError(err))
	}

	slog.InfoContext(ctx, "payment intent created",
		"method", "StripeProvider.CreateIntent",
		"intent_id", pi.ID,
		"amount", minor,
		"currency", params.Currency)

	return pi.ClientSecret, nil
}

func (p *StripeProvider) IntentStatus(ctx context.Context, intentID string) (domain.PaymentStatus, error) {
	intentID = strings.TrimSpace(intentID)
	if intentID == "" {
		return "", domain.NewValidationError("paymentId")
	}

	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := p.client.PaymentIntents.Get(intentID, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.HTTPStatusCode == http.StatusNotFound {
			// an unknown intent is a bad client submission
			return "", domain.NewValidationError("paymentId")
		}
		return "", fmt.Errorf("PaymentIntents.Get: %w", mapStripeError(err))
	}

	return toPaymentStatus(pi.Status), nil
}

func toPaymentStatus(status stripe.PaymentIntentStatus) domain.PaymentStatus {
	switch status {
	case stripe.PaymentIntentStatusSucceeded:
		return domain.PaymentStatusPaid
	case stripe.PaymentIntentStatusCanceled, stripe.PaymentIntentStatusRequiresPaymentMethod:
		return domain.PaymentStatusFailed
	default:
		// processing, requires_action, requires_capture, requires_confirmation
		return domain.PaymentStatusPending
	}
}

func mapStripeError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		return fmt.Errorf("%w: stripe %s (%d): %s", domain.ErrUpstream, stripeErr.Type, stripeErr.HTTPStatusCode, stripeErr.Msg)
	}
	return fmt.Errorf("%w: %w", domain.ErrUpstream, err)
}
