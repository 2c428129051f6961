package order

import (
	"fractional-market/internal/domain/lot"
	"fractional-market/internal/domain/payment"
	"fractional-market/internal/pkg/clock"

	"github.com/google/uuid"
)

type Factory struct {
	Clock           clock.Clock
	PriceCalculator PriceCalculator
	MinFractions    int32
	Currency        string
}

func NewFactory(clock clock.Clock, priceCalculator PriceCalculator, minFractions int32, currency string) *Factory {
	if minFractions < 1 {
		minFractions = 1
	}
	return &Factory{
		Clock:           clock,
		PriceCalculator: priceCalculator,
		MinFractions:    minFractions,
		Currency:        currency,
	}
}

// CreateOrder validates against the lot snapshot. The storage-level reservation
// remains the authority on availability.
func (f *Factory) CreateOrder(
	userID uuid.UUID,
	lotEntity *lot.Lot,
	fractionCount int32,
	provider payment.Provider,
) (*Order, error) {
	if !provider.IsValid() {
		return nil, ErrUnsupportedPaymentRoute
	}
	if fractionCount < f.MinFractions {
		return nil, ErrBelowMinimumFractions
	}
	if err := lotEntity.CheckReserve(fractionCount); err != nil {
		return nil, err
	}

	amount, err := NewMoney(f.PriceCalculator.AmountDueCents(lotEntity.PricePerFraction(), fractionCount), f.Currency)
	if err != nil {
		return nil, err
	}

	now := f.Clock.Now()
	return &Order{
		id:            uuid.New(),
		userID:        userID,
		lotID:         lotEntity.ID(),
		fractionCount: fractionCount,
		amountDue:     amount,
		status:        StatusPending,
		provider:      provider,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}
