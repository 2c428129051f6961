package repository

import (
	"context"
	"time"

	"fractional-market/internal/domain/order"
	"fractional-market/internal/domain/payment"
	"fractional-market/internal/infra"
	"fractional-market/internal/infra/repository/converter"
	sqlc "fractional-market/internal/infra/sqlc/generated"
	"fractional-market/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type OrderWriteQueries interface {
	CreateOrder(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateOrderParams) error
	AttachOrderSession(ctx context.Context, db sqlc.DBTX, arg sqlc.AttachOrderSessionParams) (int64, error)
	GetOrderByIDForUpdate(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Orders, error)
	GetOrderByProviderSessionForUpdate(ctx context.Context, db sqlc.DBTX, arg sqlc.GetOrderByProviderSessionForUpdateParams) (sqlc.Orders, error)
	TransitionOrderStatus(ctx context.Context, db sqlc.DBTX, arg sqlc.TransitionOrderStatusParams) (int64, error)
	ListExpiredAwaitingOrders(ctx context.Context, db sqlc.DBTX, arg sqlc.ListExpiredAwaitingOrdersParams) ([]sqlc.Orders, error)
}

type OrderRepository struct {
	queries OrderWriteQueries
	db      sqlc.DBTX
}

func NewOrderRepository(queries OrderWriteQueries, db sqlc.DBTX) *OrderRepository {
	return &OrderRepository{
		queries: queries,
		db:      db,
	}
}

func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	if err := r.queries.CreateOrder(ctx, r.db, converter.OrderToCreateParams(o)); err != nil {
		return infra.WrapRepoErr("failed to create order", err)
	}
	return nil
}

func (r *OrderRepository) AttachSession(ctx context.Context, o *order.Order) error {
	affected, err := r.queries.AttachOrderSession(ctx, r.db, sqlc.AttachOrderSessionParams{
		ID:                o.ID(),
		ProviderSessionID: pgconv.StringToPgtype(o.ProviderSessionID()),
		CheckoutUrl:       pgconv.StringToPgtype(o.CheckoutURL()),
		UpdatedAt:         pgconv.TimeToPgtype(o.UpdatedAt()),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to attach provider session", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("order is not pending or already has a session", nil, infra.KindConditionFailed)
	}
	return nil
}

func (r *OrderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	row, err := r.queries.GetOrderByIDForUpdate(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock order by ID", err)
	}
	return r.toDomain(row)
}

func (r *OrderRepository) FindBySessionForUpdate(ctx context.Context, provider payment.Provider, sessionID string) (*order.Order, error) {
	row, err := r.queries.GetOrderByProviderSessionForUpdate(ctx, r.db, sqlc.GetOrderByProviderSessionForUpdateParams{
		Provider:          provider.String(),
		ProviderSessionID: pgconv.StringToPgtype(sessionID),
	})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found for provider session", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock order by provider session", err)
	}
	return r.toDomain(row)
}

func (r *OrderRepository) Transition(ctx context.Context, o *order.Order, from order.Status) error {
	affected, err := r.queries.TransitionOrderStatus(ctx, r.db, sqlc.TransitionOrderStatusParams{
		ToStatus:        o.Status().String(),
		AmountPaidCents: pgconv.Int64PtrToPgtype(o.AmountPaidCents()),
		UpdatedAt:       pgconv.TimeToPgtype(o.UpdatedAt()),
		ID:              o.ID(),
		FromStatus:      from.String(),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to transition order status", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("order left status "+from.String(), nil, infra.KindConditionFailed)
	}
	return nil
}

// ListExpiredAwaiting skips rows another sweeper holds and every id in exclude.
func (r *OrderRepository) ListExpiredAwaiting(ctx context.Context, createdBefore time.Time, limit int32, exclude []uuid.UUID) ([]*order.Order, error) {
	if exclude == nil {
		exclude = []uuid.UUID{}
	}
	rows, err := r.queries.ListExpiredAwaitingOrders(ctx, r.db, sqlc.ListExpiredAwaitingOrdersParams{
		CreatedAt: pgconv.TimeToPgtype(createdBefore),
		Excluded:  exclude,
		RowLimit:  limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list expired orders", err)
	}

	result := make([]*order.Order, 0, len(rows))
	for _, row := range rows {
		o, err := r.toDomain(row)
		if err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	return result, nil
}

func (r *OrderRepository) toDomain(row sqlc.Orders) (*order.Order, error) {
	o, err := converter.OrderFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert order row", err)
	}
	return o, nil
}
