package repository

import (
	"context"

	"fractional-market/internal/domain/payment"
	"fractional-market/internal/infra"
	sqlc "fractional-market/internal/infra/sqlc/generated"
	"fractional-market/internal/pkg/pgconv"
)

type PaymentEventQueries interface {
	InsertPaymentEvent(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertPaymentEventParams) error
	PaymentEventExists(ctx context.Context, db sqlc.DBTX, arg sqlc.PaymentEventExistsParams) (bool, error)
}

type PaymentEventRepository struct {
	queries PaymentEventQueries
	db      sqlc.DBTX
}

func NewPaymentEventRepository(queries PaymentEventQueries, db sqlc.DBTX) *PaymentEventRepository {
	return &PaymentEventRepository{
		queries: queries,
		db:      db,
	}
}

func (r *PaymentEventRepository) Exists(ctx context.Context, provider payment.Provider, eventID string) (bool, error) {
	exists, err := r.queries.PaymentEventExists(ctx, r.db, sqlc.PaymentEventExistsParams{
		Provider: provider.String(),
		EventID:  eventID,
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to check payment event", err)
	}
	return exists, nil
}

// Insert fails with KindDuplicateKey when the (provider, event_id) pair is already recorded.
func (r *PaymentEventRepository) Insert(ctx context.Context, rec *payment.Record) error {
	err := r.queries.InsertPaymentEvent(ctx, r.db, sqlc.InsertPaymentEventParams{
		Provider:    rec.Provider().String(),
		EventID:     rec.EventID(),
		OrderID:     rec.OrderID(),
		Outcome:     rec.Outcome().String(),
		AmountCents: pgconv.Int64PtrToPgtype(rec.AmountCents()),
		ProcessedAt: pgconv.TimeToPgtype(rec.ProcessedAt()),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to record payment event", err)
	}
	return nil
}
