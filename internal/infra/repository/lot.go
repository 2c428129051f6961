package repository

import (
	"context"

	"fractional-market/internal/domain/lot"
	"fractional-market/internal/infra"
	"fractional-market/internal/infra/repository/converter"
	sqlc "fractional-market/internal/infra/sqlc/generated"
	"fractional-market/internal/pkg/errs"
	"fractional-market/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type LotQueries interface {
	GetLotByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Lots, error)
	ReserveLotFractions(ctx context.Context, db sqlc.DBTX, arg sqlc.ReserveLotFractionsParams) (sqlc.Lots, error)
	ReleaseLotFractions(ctx context.Context, db sqlc.DBTX, arg sqlc.ReleaseLotFractionsParams) (sqlc.Lots, error)
}

type LotRepository struct {
	queries LotQueries
	db      sqlc.DBTX
}

func NewLotRepository(queries LotQueries, db sqlc.DBTX) *LotRepository {
	return &LotRepository{
		queries: queries,
		db:      db,
	}
}

func (r *LotRepository) FindByID(ctx context.Context, id uuid.UUID) (*lot.Lot, error) {
	row, err := r.queries.GetLotByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("lot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find lot by ID", err)
	}

	entity, err := converter.LotFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert lot row", err)
	}
	return entity, nil
}

// Reserve decrements availability in one conditional update. When no row
// matches, the current snapshot explains why.
func (r *LotRepository) Reserve(ctx context.Context, lotID uuid.UUID, count int32) (*lot.Lot, error) {
	if count <= 0 {
		return nil, lot.ErrInvalidFractionCount
	}

	row, err := r.queries.ReserveLotFractions(ctx, r.db, sqlc.ReserveLotFractionsParams{
		FractionCount: count,
		ID:            lotID,
	})
	if err == nil {
		entity, convErr := converter.LotFromRow(row)
		if convErr != nil {
			return nil, infra.WrapRepoErr("failed to convert lot row", convErr)
		}
		return entity, nil
	}
	if !pgconv.IsNoRows(err) {
		return nil, infra.WrapRepoErr("failed to reserve lot fractions", err)
	}

	current, findErr := r.FindByID(ctx, lotID)
	if findErr != nil {
		return nil, findErr
	}
	if refusal := current.CheckReserve(count); refusal != nil {
		return nil, errs.Wrapf(refusal, "reserve %d fractions of lot %s", count, lotID)
	}
	// availability moved between the update and the re-read
	return nil, errs.Wrapf(lot.ErrInsufficientInventory, "reserve %d fractions of lot %s", count, lotID)
}

func (r *LotRepository) Release(ctx context.Context, lotID uuid.UUID, count int32) (*lot.Lot, error) {
	if count <= 0 {
		return nil, lot.ErrInvalidFractionCount
	}

	row, err := r.queries.ReleaseLotFractions(ctx, r.db, sqlc.ReleaseLotFractionsParams{
		FractionCount: count,
		ID:            lotID,
	})
	if err == nil {
		entity, convErr := converter.LotFromRow(row)
		if convErr != nil {
			return nil, infra.WrapRepoErr("failed to convert lot row", convErr)
		}
		return entity, nil
	}
	if !pgconv.IsNoRows(err) {
		return nil, infra.WrapRepoErr("failed to release lot fractions", err)
	}

	if _, findErr := r.FindByID(ctx, lotID); findErr != nil {
		return nil, findErr
	}
	return nil, errs.Wrapf(lot.ErrOverRelease, "release %d fractions of lot %s", count, lotID)
}
