package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/auth"
	"github.com/nikolayk812/storefront/internal/checkout"
	"github.com/nikolayk812/storefront/internal/config"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/httpapi"
	"github.com/nikolayk812/storefront/internal/outbox"
	"github.com/nikolayk812/storefront/internal/payment"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/repository"
	"github.com/nikolayk812/storefront/internal/repository/memory"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the outbox relay",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg)
		},
	}
}

type storage struct {
	users  port.UserRepository
	orders port.OrderRepository
	outbox port.OutboxRepository
	ping   func(ctx context.Context) error
	close  func()
}

func openStorage(ctx context.Context, cfg config.Config) (storage, error) {
	if cfg.Storage.Driver == config.DriverMemory {
		slog.WarnContext(ctx, "using in-memory storage, data is lost on exit", "method", "openStorage")

		store := memory.NewStore()
		return storage{
			users:  store,
			orders: store,
			outbox: store,
			close:  func() {},
		}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		return storage{}, fmt.Errorf("pgxpool.New: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return storage{}, fmt.Errorf("pool.Ping: %w", err)
	}

	if cfg.Database.Migrate {
		if err := db.Migrate(ctx, pool); err != nil {
			pool.Close()
			return storage{}, fmt.Errorf("db.Migrate: %w", err)
		}
	}

	return storage{
		users:  repository.NewUser(pool),
		orders: repository.NewOrder(pool),
		outbox: repository.NewOutbox(pool),
		ping:   pool.Ping,
		close:  pool.Close,
	}, nil
}

func serve(ctx context.Context, cfg config.Config) error {
	unit, err := cfg.Currency()
	if err != nil {
		return err
	}

	store, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.close()

	tokens, err := auth.NewTokenService(cfg.Auth.JWTSecret, auth.WithTokenTTL(cfg.Auth.TokenTTL))
	if err != nil {
		return fmt.Errorf("auth.NewTokenService: %w", err)
	}

	authService, err := auth.NewService(store.users, tokens, auth.NewHasher(cfg.Auth.BcryptCost), cfg.Auth.AdminSecretKey)
	if err != nil {
		return fmt.Errorf("auth.NewService: %w", err)
	}

	guard, err := auth.NewGuard(tokens, store.users)
	if err != nil {
		return fmt.Errorf("auth.NewGuard: %w", err)
	}

	recorder, err := checkout.NewRecorder(store.orders, unit)
	if err != nil {
		return fmt.Errorf("checkout.NewRecorder: %w", err)
	}

	var payments port.PaymentProvider
	if cfg.Payments.StripeSecretKey != "" {
		payments, err = payment.NewStripeProvider(cfg.Payments.StripeSecretKey, unit)
		if err != nil {
			return fmt.Errorf("payment.NewStripeProvider: %w", err)
		}
	} else {
		slog.WarnContext(ctx, "stripe is not configured, payment intents are disabled", "method", "serve")
	}

	server, err := httpapi.NewServer(httpapi.Deps{
		Auth:     authService,
		Guard:    guard,
		Recorder: recorder,
		Payments: payments,
		Ping:     store.ping,
	}, httpapi.Options{
		RateRPS:       cfg.Auth.RateRPS,
		RateBurst:     cfg.Auth.RateBurst,
		VerifyIntents: cfg.Payments.VerifyIntents,
	})
	if err != nil {
		return fmt.Errorf("httpapi.NewServer: %w", err)
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           server.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.InfoContext(gctx, "http server listening", "method", "serve", "addr", cfg.HTTP.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("httpServer.ListenAndServe: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.HTTP.ShutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("httpServer.Shutdown: %w", err)
		}
		return nil
	})

	if len(cfg.Kafka.Brokers) > 0 {
		publisher, err := outbox.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			return fmt.Errorf("outbox.NewKafkaPublisher: %w", err)
		}
		defer func() {
			if err := publisher.Close(); err != nil {
				slog.ErrorContext(ctx, "kafka publisher close failed", "method", "serve", "error", err)
			}
		}()

		relay, err := outbox.NewRelay(store.outbox, publisher.Publish,
			outbox.WithInterval(cfg.Outbox.Interval),
			outbox.WithBatchSize(cfg.Outbox.BatchSize))
		if err != nil {
			return fmt.Errorf("outbox.NewRelay: %w", err)
		}

		g.Go(func() error {
			return relay.Run(gctx)
		})
	} else {
		slog.WarnContext(ctx, "kafka is not configured, outbox events stay pending", "method", "serve")
	}

	if err := g.Wait(); err != nil {
		return err
	}

	slog.InfoContext(ctx, "shutdown complete", "method", "serve")
	return nil
}
