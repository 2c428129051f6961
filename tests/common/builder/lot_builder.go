//go:build unit || e2e

package builder

import (
	"time"

	"fractional-market/internal/domain/lot"
	"fractional-market/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type LotBuilder struct {
	ID                 uuid.UUID
	Title              string
	Slug               string
	TotalFractions     int32
	AvailableFractions int32
	PricePerFraction   decimal.Decimal
	Active             bool
	CreatedAt          time.Time
}

func NewLotBuilder() *LotBuilder {
	return &LotBuilder{
		ID:                 uuid.New(),
		Title:              "Vintage Rolex Daytona",
		Slug:               "vintage-rolex-daytona",
		TotalFractions:     100,
		AvailableFractions: 100,
		PricePerFraction:   decimal.RequireFromString("12.50"),
		Active:             true,
		CreatedAt:          time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (l *LotBuilder) With(mutate func(*LotBuilder)) *LotBuilder {
	mutate(l)
	return l
}

func (l *LotBuilder) WithAvailable(n int32) *LotBuilder {
	l.AvailableFractions = n
	return l
}

func (l *LotBuilder) AsInactive() *LotBuilder {
	l.Active = false
	return l
}

func (l *LotBuilder) BuildDomain() (*lot.Lot, error) {
	return lot.Reconstruct(l.ID, l.Title, l.Slug, l.TotalFractions, l.AvailableFractions,
		l.PricePerFraction, l.Active, l.CreatedAt, l.CreatedAt)
}

func (l *LotBuilder) BuildReadModel() *queries.LotView {
	return &queries.LotView{
		ID:                 l.ID,
		Title:              l.Title,
		Slug:               l.Slug,
		TotalFractions:     l.TotalFractions,
		AvailableFractions: l.AvailableFractions,
		PricePerFraction:   l.PricePerFraction,
		MinFractionsToBuy:  1,
		Active:             l.Active,
		CreatedAt:          l.CreatedAt,
	}
}
