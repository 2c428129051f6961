package worker

import (
	"context"
	"log/slog"
	"time"

	"fractional-market/internal/pkg/errs"
	"fractional-market/internal/usecase/shared"
)

// OutboxRelay publishes queued order events. Rows stay locked by this
// transaction while they are sent, so a second relay instance skips them.
type OutboxRelay struct {
	uow       shared.UnitOfWork
	publisher shared.EventPublisher
	interval  time.Duration
	batchSize int32
}

func NewOutboxRelay(uow shared.UnitOfWork, publisher shared.EventPublisher, interval time.Duration, batchSize int32) *OutboxRelay {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &OutboxRelay{
		uow:       uow,
		publisher: publisher,
		interval:  interval,
		batchSize: batchSize,
	}
}

func (r *OutboxRelay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	slog.Info("outbox relay started", "interval", r.interval.String())
	for {
		select {
		case <-ctx.Done():
			slog.Info("outbox relay stopped")
			return
		case <-ticker.C:
			if _, err := r.RelayOnce(ctx); err != nil && ctx.Err() == nil {
				slog.Error("outbox relay failed", "error", err.Error())
			}
		}
	}
}

// RelayOnce sends one batch and returns how many messages the broker confirmed.
// A failed publish is recorded on its row and retried on a later tick.
func (r *OutboxRelay) RelayOnce(ctx context.Context) (int, error) {
	var sent int
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		sent = 0
		msgs, err := tx.Outbox().ClaimPending(ctx, r.batchSize)
		if err != nil {
			return err
		}

		for _, msg := range msgs {
			if pubErr := r.publisher.Publish(ctx, msg); pubErr != nil {
				slog.Warn("outbox publish failed",
					"message_id", msg.ID,
					"order_id", msg.OrderID,
					"topic", msg.Topic,
					"attempts", msg.Attempts+1,
					"error", pubErr.Error())
				if err := tx.Outbox().MarkFailed(ctx, msg.ID, pubErr.Error()); err != nil {
					return err
				}
				continue
			}
			if err := tx.Outbox().MarkSent(ctx, msg.ID); err != nil {
				return err
			}
			sent++
		}
		return nil
	})
	if err != nil {
		return 0, errs.Wrap(err, "relay outbox batch")
	}
	return sent, nil
}
