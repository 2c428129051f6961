package repository

import (
	"context"

	"fractional-market/internal/infra"
	sqlc "fractional-market/internal/infra/sqlc/generated"
	"fractional-market/internal/pkg/pgconv"
	"fractional-market/internal/usecase/shared"

	"github.com/google/uuid"
)

type OutboxQueries interface {
	InsertOutboxMessage(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertOutboxMessageParams) error
	ClaimPendingOutboxMessages(ctx context.Context, db sqlc.DBTX, limit int32) ([]sqlc.ClaimPendingOutboxMessagesRow, error)
	MarkOutboxMessageSent(ctx context.Context, db sqlc.DBTX, id uuid.UUID) error
	MarkOutboxMessageFailed(ctx context.Context, db sqlc.DBTX, arg sqlc.MarkOutboxMessageFailedParams) error
}

type OutboxRepository struct {
	queries OutboxQueries
	db      sqlc.DBTX
}

func NewOutboxRepository(queries OutboxQueries, db sqlc.DBTX) *OutboxRepository {
	return &OutboxRepository{
		queries: queries,
		db:      db,
	}
}

func (r *OutboxRepository) Enqueue(ctx context.Context, orderID uuid.UUID, topic string, payload []byte) error {
	err := r.queries.InsertOutboxMessage(ctx, r.db, sqlc.InsertOutboxMessageParams{
		OrderID: orderID,
		Topic:   topic,
		Payload: payload,
	})
	if err != nil {
		return infra.WrapRepoErr("failed to enqueue outbox message", err)
	}
	return nil
}

// ClaimPending locks up to limit pending rows; other relays skip them until this transaction ends.
func (r *OutboxRepository) ClaimPending(ctx context.Context, limit int32) ([]shared.OutboxMessage, error) {
	rows, err := r.queries.ClaimPendingOutboxMessages(ctx, r.db, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim outbox messages", err)
	}

	msgs := make([]shared.OutboxMessage, len(rows))
	for i, row := range rows {
		msgs[i] = shared.OutboxMessage{
			ID:       row.ID,
			OrderID:  row.OrderID,
			Topic:    row.Topic,
			Payload:  row.Payload,
			Attempts: row.Attempts,
		}
	}
	return msgs, nil
}

func (r *OutboxRepository) MarkSent(ctx context.Context, id uuid.UUID) error {
	if err := r.queries.MarkOutboxMessageSent(ctx, r.db, id); err != nil {
		return infra.WrapRepoErr("failed to mark outbox message sent", err)
	}
	return nil
}

func (r *OutboxRepository) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	err := r.queries.MarkOutboxMessageFailed(ctx, r.db, sqlc.MarkOutboxMessageFailedParams{
		ID:        id,
		LastError: pgconv.StringToPgtype(reason),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to mark outbox message failed", err)
	}
	return nil
}
