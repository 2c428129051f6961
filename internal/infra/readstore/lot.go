package readstore

import (
	"context"

	"fractional-market/internal/infra"
	sqlc "fractional-market/internal/infra/sqlc/generated"
	"fractional-market/internal/pkg/pgconv"
	"fractional-market/internal/usecase/queries"

	"github.com/google/uuid"
)

type LotViewQueries interface {
	GetLotByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Lots, error)
	ListActiveLots(ctx context.Context, db sqlc.DBTX) ([]sqlc.Lots, error)
}

type LotReadStore struct {
	queries LotViewQueries
	db      sqlc.DBTX
}

func NewLotReadStore(queries LotViewQueries, db sqlc.DBTX) *LotReadStore {
	return &LotReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *LotReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.LotView, error) {
	row, err := r.queries.GetLotByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("lot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find lot by ID", err)
	}
	return rowToLotView(row)
}

func (r *LotReadStore) FindActive(ctx context.Context) ([]*queries.LotView, error) {
	rows, err := r.queries.ListActiveLots(ctx, r.db)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active lots", err)
	}

	result := make([]*queries.LotView, 0, len(rows))
	for _, row := range rows {
		view, err := rowToLotView(row)
		if err != nil {
			return nil, err
		}
		result = append(result, view)
	}
	return result, nil
}

func rowToLotView(row sqlc.Lots) (*queries.LotView, error) {
	price, err := pgconv.DecimalFromNumeric(row.PricePerFraction)
	if err != nil {
		return nil, infra.WrapRepoErr("lot price is not a finite number", err)
	}

	return &queries.LotView{
		ID:                 row.ID,
		Title:              row.Title,
		Slug:               row.Slug,
		TotalFractions:     row.TotalFractions,
		AvailableFractions: row.AvailableFractions,
		PricePerFraction:   price,
		Active:             row.Active,
		CreatedAt:          pgconv.TimeFromPgtype(row.CreatedAt),
	}, nil
}
