// Package httpapi exposes registration, login, orders and payments over HTTP.
package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nikolayk812/storefront/internal/auth"
	"github.com/nikolayk812/storefront/internal/checkout"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

type Deps struct {
	Auth     *auth.Service
	Guard    *auth.Guard
	Recorder *checkout.Recorder
	// Payments may be nil, intent creation then fails with 500.
	Payments port.PaymentProvider
	// Ping reports storage health for /healthz, nil means always healthy.
	Ping func(ctx context.Context) error
}

type Options struct {
	RateRPS   float64
	RateBurst int
	// VerifyIntents makes save-order-payment trust the processor's intent status
	// over the one sent by the client.
	VerifyIntents bool
}

type Server struct {
	auth          *auth.Service
	guard         *auth.Guard
	recorder      *checkout.Recorder
	payments      port.PaymentProvider
	ping          func(ctx context.Context) error
	limiter       *ipLimiter
	verifyIntents bool
}

func NewServer(deps Deps, opts Options) (*Server, error) {
	if deps.Auth == nil {
		return nil, errors.New("auth is nil")
	}
	if deps.Guard == nil {
		return nil, errors.New("guard is nil")
	}
	if deps.Recorder == nil {
		return nil, errors.New("recorder is nil")
	}
	if opts.VerifyIntents && deps.Payments == nil {
		return nil, errors.New("verifying intents requires a payment provider")
	}
	if opts.RateRPS <= 0 || opts.RateBurst <= 0 {
		return nil, errors.New("rate limit must be positive")
	}

	return &Server{
		auth:          deps.Auth,
		guard:         deps.Guard,
		recorder:      deps.Recorder,
		payments:      deps.Payments,
		ping:          deps.Ping,
		limiter:       newIPLimiter(opts.RateRPS, opts.RateBurst),
		verifyIntents: opts.VerifyIntents,
	}, nil
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(limitBody)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Message: "Route not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Message: "Method not allowed"})
	})

	r.Get("/healthz", s.healthz)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(s.limiter.middleware)
			r.Post("/register", s.register)
			r.Post("/login", s.login)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(s.authenticate)
			r.Get("/my-orders", s.myOrders)
			r.With(s.requireRole(domain.RoleAdmin)).Get("/admin-orders", s.adminOrders)
			r.Post("/", s.placeOrder)
			r.Get("/{orderID}/payments", s.orderPayment)
			r.Post("/{orderID}/payments", s.recordPayment)
		})

		r.Route("/payments", func(r chi.Router) {
			r.Post("/create-payment-intent", s.createPaymentIntent)
			r.With(s.authenticate).Post("/save-order-payment", s.saveOrderPayment)
		})
	})

	return r
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	if s.ping != nil {
		if err := s.ping(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
