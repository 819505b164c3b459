package port

import (
	"context"

	"github.com/nikolayk812/storefront/internal/domain"
)

// PublishFunc delivers a batch of events. A returned error keeps the batch pending.
type PublishFunc func(ctx context.Context, events []domain.OutboxEvent) error

type OutboxRepository interface {
	// PublishPending locks up to limit unpublished events, oldest first, hands them to fn
	// and marks them published if fn succeeds. It returns the number of published events.
	PublishPending(ctx context.Context, limit int, fn PublishFunc) (int, error)
}
