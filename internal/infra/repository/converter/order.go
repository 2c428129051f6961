package converter

import (
	"fractional-market/internal/domain/order"
	"fractional-market/internal/domain/payment"
	sqlc "fractional-market/internal/infra/sqlc/generated"
	"fractional-market/internal/pkg/pgconv"
)

func OrderToCreateParams(o *order.Order) sqlc.CreateOrderParams {
	return sqlc.CreateOrderParams{
		ID:             o.ID(),
		UserID:         o.UserID(),
		LotID:          o.LotID(),
		FractionCount:  o.FractionCount(),
		AmountDueCents: o.AmountDue().Cents(),
		Currency:       o.AmountDue().Currency(),
		Status:         o.Status().String(),
		Provider:       o.Provider().String(),
		CreatedAt:      pgconv.TimeToPgtype(o.CreatedAt()),
		UpdatedAt:      pgconv.TimeToPgtype(o.UpdatedAt()),
	}
}

func OrderFromRow(row sqlc.Orders) (*order.Order, error) {
	amountDue, err := order.NewMoney(row.AmountDueCents, row.Currency)
	if err != nil {
		return nil, err
	}

	return order.Reconstruct(
		row.ID,
		row.UserID,
		row.LotID,
		row.FractionCount,
		amountDue,
		pgconv.Int64PtrFromPgtype(row.AmountPaidCents),
		order.Status(row.Status),
		payment.Provider(row.Provider),
		pgconv.StringFromPgtype(row.ProviderSessionID),
		pgconv.StringFromPgtype(row.CheckoutUrl),
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	)
}
