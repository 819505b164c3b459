package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/auth"
	"github.com/nikolayk812/storefront/internal/checkout"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/samber/lo"
)

func (s *Server) myOrders(w http.ResponseWriter, r *http.Request) {
	s.listOrders(w, r, checkout.ListQuery{Scope: domain.ScopeOwn})
}

func (s *Server) adminOrders(w http.ResponseWriter, r *http.Request) {
	s.listOrders(w, r, checkout.ListQuery{
		Scope: domain.ScopeAllOwners,
		Email: r.URL.Query().Get("email"),
	})
}

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request, query checkout.ListQuery) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, domain.ErrNoToken)
		return
	}

	orders, err := s.recorder.ListOrders(r.Context(), identity, query)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, lo.Map(orders, func(o domain.Order, _ int) orderResponse {
		return toOrderResponse(o)
	}))
}

func (s *Server) placeOrder(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, domain.ErrNoToken)
		return
	}

	var req checkoutRequest
	if err := decode(r, checkoutSchema, &req); err != nil {
		writeError(w, r, err)
		return
	}

	order, err := s.recorder.PlaceOrder(r.Context(), identity, req.toDomain())
	if err != nil {
		writeCheckoutError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Order placed successfully",
		"order":   toOrderResponse(order),
	})
}

func (s *Server) recordPayment(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, domain.ErrNoToken)
		return
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "orderID"))
	if err != nil {
		writeError(w, r, domain.NewValidationError("orderId"))
		return
	}

	var req recordPaymentRequest
	if err := decode(r, recordPaymentSchema, &req); err != nil {
		writeError(w, r, err)
		return
	}

	var invalid []string
	if req.Amount == nil {
		invalid = append(invalid, "amount")
	}
	status, statusErr := domain.ToPaymentStatus(req.PaymentStatus)
	if statusErr != nil {
		invalid = append(invalid, "paymentStatus")
	}
	if len(invalid) > 0 {
		writeError(w, r, domain.NewValidationError(invalid...))
		return
	}

	payment, err := s.recorder.RecordPayment(r.Context(), domain.Order{ID: orderID}, identity, checkout.PaymentRecord{
		Amount:        *req.Amount,
		Status:        status,
		TransactionID: req.PaymentID,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Payment recorded",
		"payment": toPaymentResponse(payment),
	})
}

func (s *Server) orderPayment(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, domain.ErrNoToken)
		return
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "orderID"))
	if err != nil {
		writeError(w, r, domain.NewValidationError("orderId"))
		return
	}

	payment, err := s.recorder.OrderPayment(r.Context(), identity, orderID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toPaymentResponse(payment))
}

// writeCheckoutError reports integrity violations during checkout as server
// faults, the client cannot cause them with a well-formed submission.
func writeCheckoutError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrIntegrity) {
		writeInternal(w, r, fmt.Errorf("checkout: %w", err))
		return
	}
	writeError(w, r, err)
}
