package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/samber/lo"
)

type outboxRepository struct {
	dbtx db.DBTX
}

func NewOutbox(pool *pgxpool.Pool) port.OutboxRepository {
	return &outboxRepository{
		dbtx: pool,
	}
}

func (r *outboxRepository) PublishPending(ctx context.Context, limit int, fn port.PublishFunc) (int, error) {
	if limit <= 0 {
		return 0, fmt.Errorf("limit must be positive: %d", limit)
	}
	if fn == nil {
		return 0, fmt.Errorf("fn is nil")
	}

	published, err := withTx(ctx, r.dbtx, func(q *db.Queries) (int, error) {
		rows, err := q.LockPendingOutboxEvents(ctx, int32(limit))
		if err != nil {
			return 0, fmt.Errorf("q.LockPendingOutboxEvents: %w", err)
		}

		if len(rows) == 0 {
			return 0, nil
		}

		events := lo.Map(rows, func(row db.LockPendingOutboxEventsRow, _ int) domain.OutboxEvent {
			return domain.OutboxEvent{
				ID:          row.ID,
				AggregateID: row.AggregateID,
				Type:        domain.EventType(row.EventType),
				Payload:     row.Payload,
				CreatedAt:   row.CreatedAt,
				PublishedAt: row.PublishedAt,
			}
		})

		if err := fn(ctx, events); err != nil {
			return 0, fmt.Errorf("fn: %w", err)
		}

		ids := lo.Map(events, func(e domain.OutboxEvent, _ int) uuid.UUID { return e.ID })

		cmdTag, err := q.MarkOutboxEventsPublished(ctx, ids)
		if err != nil {
			return 0, fmt.Errorf("q.MarkOutboxEventsPublished: %w", err)
		}

		return int(cmdTag.RowsAffected()), nil
	})
	if err != nil {
		return 0, fmt.Errorf("withTx: %w", err)
	}

	return published, nil
}
