package readstore

import (
	"context"
	"time"

	"fractional-market/internal/infra"
	sqlc "fractional-market/internal/infra/sqlc/generated"
	"fractional-market/internal/pkg/pgconv"
	"fractional-market/internal/usecase/queries"

	"github.com/google/uuid"
)

type OrderViewQueries interface {
	GetOrderViewForUser(ctx context.Context, db sqlc.DBTX, arg sqlc.GetOrderViewForUserParams) (sqlc.GetOrderViewForUserRow, error)
	ListOrderViewsByUserFirstPage(ctx context.Context, db sqlc.DBTX, arg sqlc.ListOrderViewsByUserFirstPageParams) ([]sqlc.ListOrderViewsByUserFirstPageRow, error)
	ListOrderViewsByUserKeyset(ctx context.Context, db sqlc.DBTX, arg sqlc.ListOrderViewsByUserKeysetParams) ([]sqlc.ListOrderViewsByUserKeysetRow, error)
}

type OrderReadStore struct {
	queries OrderViewQueries
	db      sqlc.DBTX
}

func NewOrderReadStore(queries OrderViewQueries, db sqlc.DBTX) *OrderReadStore {
	return &OrderReadStore{
		queries: queries,
		db:      db,
	}
}

// FindForUser filters by owner in SQL; another user's order reads as not found.
func (r *OrderReadStore) FindForUser(ctx context.Context, userID, orderID uuid.UUID) (*queries.OrderView, error) {
	row, err := r.queries.GetOrderViewForUser(ctx, r.db, sqlc.GetOrderViewForUserParams{
		ID:     orderID,
		UserID: userID,
	})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order", err)
	}
	return orderView(sqlc.ListOrderViewsByUserFirstPageRow(row)), nil
}

func (r *OrderReadStore) FindByUserFirstPage(ctx context.Context, userID uuid.UUID, limit int32) ([]*queries.OrderView, error) {
	rows, err := r.queries.ListOrderViewsByUserFirstPage(ctx, r.db, sqlc.ListOrderViewsByUserFirstPageParams{
		UserID: userID,
		Limit:  limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders first page", err)
	}

	result := make([]*queries.OrderView, len(rows))
	for i, row := range rows {
		result[i] = orderView(row)
	}
	return result, nil
}

func (r *OrderReadStore) FindByUserKeyset(ctx context.Context, userID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.OrderView, error) {
	rows, err := r.queries.ListOrderViewsByUserKeyset(ctx, r.db, sqlc.ListOrderViewsByUserKeysetParams{
		UserID:  userID,
		Column2: pgconv.TimeToPgtype(lastCreatedAt),
		Column3: lastID,
		Limit:   limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders keyset", err)
	}

	result := make([]*queries.OrderView, len(rows))
	for i, row := range rows {
		result[i] = orderView(sqlc.ListOrderViewsByUserFirstPageRow(row))
	}
	return result, nil
}

// the three generated row types share one column list
func orderView(row sqlc.ListOrderViewsByUserFirstPageRow) *queries.OrderView {
	return &queries.OrderView{
		ID:              row.ID,
		UserID:          row.UserID,
		LotID:           row.LotID,
		LotTitle:        row.LotTitle,
		FractionCount:   row.FractionCount,
		AmountDueCents:  row.AmountDueCents,
		AmountPaidCents: pgconv.Int64PtrFromPgtype(row.AmountPaidCents),
		Currency:        row.Currency,
		Status:          row.Status,
		Provider:        row.Provider,
		CheckoutURL:     pgconv.StringPtrFromPgtype(row.CheckoutUrl),
		CreatedAt:       pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:       pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}
