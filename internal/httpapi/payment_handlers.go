package httpapi

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/nikolayk812/storefront/internal/auth"
	"github.com/nikolayk812/storefront/internal/domain"
)

func (s *Server) createPaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req paymentIntentRequest
	if err := decode(r, paymentIntentSchema, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if req.Amount == nil || !req.Amount.IsPositive() {
		writeError(w, r, domain.NewValidationError("amount"))
		return
	}

	if s.payments == nil {
		writeInternal(w, r, fmt.Errorf("%w: payment provider is not configured", domain.ErrUpstream))
		return
	}

	clientSecret, err := s.payments.CreateIntent(r.Context(), *req.Amount)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"clientSecret": clientSecret})
}

func (s *Server) saveOrderPayment(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, domain.ErrNoToken)
		return
	}

	var req saveOrderPaymentRequest
	if err := decode(r, checkoutSchema, &req); err != nil {
		writeError(w, r, err)
		return
	}

	c := req.toDomain()

	if s.verifyIntents && strings.TrimSpace(req.PaymentID) != "" {
		status, err := s.payments.IntentStatus(r.Context(), req.PaymentID)
		if err != nil {
			writeError(w, r, err)
			return
		}

		if !strings.EqualFold(string(status), c.PaymentStatus) {
			slog.InfoContext(r.Context(), "payment status replaced by processor status",
				"method", "Server.saveOrderPayment",
				"payment_id", req.PaymentID,
				"client_status", c.PaymentStatus,
				"processor_status", status)
		}
		c.PaymentStatus = string(status)
	}

	order, _, err := s.recorder.PlaceOrderWithPayment(r.Context(), identity, c, req.PaymentID)
	if err != nil {
		writeCheckoutError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Order and payment saved!",
		"orderId": order.ID,
	})
}
