package converter

import (
	"fractional-market/internal/domain/lot"
	sqlc "fractional-market/internal/infra/sqlc/generated"
	"fractional-market/internal/pkg/errs"
	"fractional-market/internal/pkg/pgconv"
)

func LotFromRow(row sqlc.Lots) (*lot.Lot, error) {
	price, err := pgconv.DecimalFromNumeric(row.PricePerFraction)
	if err != nil {
		return nil, errs.Wrapf(err, "lot %s price", row.ID)
	}

	return lot.Reconstruct(
		row.ID,
		row.Title,
		row.Slug,
		row.TotalFractions,
		row.AvailableFractions,
		price,
		row.Active,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	)
}
