package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/nikolayk812/storefront/internal/domain"
)

type errorResponse struct {
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

// most specific first
var publicMessages = []struct {
	err     error
	message string
}{
	{errBodyTooLarge, "Request body too large"},
	{domain.ErrEmailExists, "Email already exists"},
	{domain.ErrInvalidAdminSecret, "Invalid or missing admin secret key"},
	{domain.ErrNoToken, "No token provided"},
	{domain.ErrTokenExpired, "Token expired"},
	{domain.ErrInvalidToken, "Invalid token"},
	{domain.ErrInvalidCredentials, "Invalid credentials"},
	{domain.ErrAdminOnly, "Access denied: Admins only"},
	{domain.ErrUserNotFound, "User not found"},
	{domain.ErrOrderNotFound, "Order not found"},
	{domain.ErrPaymentWithoutOrder, "Payment must reference an order you own"},
	{domain.ErrPaymentExists, "Order already has a payment"},
	{domain.ErrValidation, "Invalid request"},
	{domain.ErrUnauthorized, "Unauthorized"},
	{domain.ErrForbidden, "Forbidden"},
	{domain.ErrNotFound, "Not found"},
	{domain.ErrIntegrity, "Conflict"},
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errBodyTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrIntegrity):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		writeInternal(w, r, err)
		return
	}

	resp := errorResponse{Message: http.StatusText(status)}

	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		resp.Message = vErr.Error()
		resp.Fields = vErr.Fields
	} else {
		for _, pm := range publicMessages {
			if errors.Is(err, pm.err) {
				resp.Message = pm.message
				break
			}
		}
	}

	slog.DebugContext(r.Context(), "request failed",
		"method", "httpapi.writeError",
		"request_id", middleware.GetReqID(r.Context()),
		"status", status,
		"error", err)

	writeJSON(w, status, resp)
}

// writeInternal hides err from the client.
func writeInternal(w http.ResponseWriter, r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "request failed",
		"method", "httpapi.writeInternal",
		"request_id", middleware.GetReqID(r.Context()),
		"path", r.URL.Path,
		"error", err)

	writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "Internal server error"})
}
