// Package outbox relays events stored alongside orders and payments to Kafka.
package outbox

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nikolayk812/storefront/internal/port"
)

const (
	DefaultInterval  = time.Second
	DefaultBatchSize = 100
)

type Relay struct {
	repo      port.OutboxRepository
	publish   port.PublishFunc
	interval  time.Duration
	batchSize int
}

type RelayOption func(*Relay)

func WithInterval(d time.Duration) RelayOption {
	return func(r *Relay) {
		if d > 0 {
			r.interval = d
		}
	}
}

func WithBatchSize(n int) RelayOption {
	return func(r *Relay) {
		if n > 0 {
			r.batchSize = n
		}
	}
}

func NewRelay(repo port.OutboxRepository, publish port.PublishFunc, opts ...RelayOption) (*Relay, error) {
	if repo == nil {
		return nil, errors.New("repo is nil")
	}
	if publish == nil {
		return nil, errors.New("publish is nil")
	}

	r := &Relay{
		repo:      repo,
		publish:   publish,
		interval:  DefaultInterval,
		batchSize: DefaultBatchSize,
	}
	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

// Run polls until ctx is done. A failed tick is logged and retried on the next one.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	slog.InfoContext(ctx, "outbox relay started",
		"method", "Relay.Run",
		"interval", r.interval,
		"batch_size", r.batchSize)

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "outbox relay stopped", "method", "Relay.Run")
			return nil
		case <-ticker.C:
			if _, err := r.Drain(ctx); err != nil && ctx.Err() == nil {
				slog.WarnContext(ctx, "outbox relay tick failed",
					"method", "Relay.Run",
					"error", err)
			}
		}
	}
}

// Drain publishes pending batches until fewer than a full batch is left.
func (r *Relay) Drain(ctx context.Context) (int, error) {
	var total int

	for {
		n, err := r.repo.PublishPending(ctx, r.batchSize, r.publish)
		if err != nil {
			return total, fmt.Errorf("repo.PublishPending: %w", err)
		}

		total += n
		if n < r.batchSize {
			break
		}
	}

	if total > 0 {
		slog.DebugContext(ctx, "outbox events published",
			"method", "Relay.Drain",
			"count", total)
	}

	return total, nil
}
