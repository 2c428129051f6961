package order

import (
	"github.com/shopspring/decimal"
)

type PriceCalculator interface {
	AmountDueCents(pricePerFraction decimal.Decimal, fractionCount int32) int64
}

type DefaultPriceCalculator struct{}

func NewDefaultPriceCalculator() *DefaultPriceCalculator {
	return &DefaultPriceCalculator{}
}

var hundred = decimal.NewFromInt(100)

// Sub-cent remainders are truncated, never rounded up against the buyer.
func (pc *DefaultPriceCalculator) AmountDueCents(pricePerFraction decimal.Decimal, fractionCount int32) int64 {
	return pricePerFraction.
		Mul(hundred).
		Mul(decimal.NewFromInt32(fractionCount)).
		Truncate(0).
		IntPart()
}
