//go:build unit

package lot_test

import (
	"testing"

	"fractional-market/internal/domain/lot"
	"fractional-market/tests/common/builder"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLotReconstruct(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*builder.LotBuilder)
		errIs  error
	}{
		{name: "valid lot", mutate: func(*builder.LotBuilder) {}},
		{name: "sold out lot", mutate: func(b *builder.LotBuilder) { b.WithAvailable(0) }},
		{name: "zero total", mutate: func(b *builder.LotBuilder) { b.TotalFractions = 0; b.AvailableFractions = 0 }, errIs: lot.ErrInvalidLot},
		{name: "negative available", mutate: func(b *builder.LotBuilder) { b.WithAvailable(-1) }, errIs: lot.ErrInvalidLot},
		{name: "available above total", mutate: func(b *builder.LotBuilder) { b.WithAvailable(101) }, errIs: lot.ErrInvalidLot},
		{name: "negative price", mutate: func(b *builder.LotBuilder) { b.PricePerFraction = decimal.NewFromInt(-1) }, errIs: lot.ErrInvalidLot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := builder.NewLotBuilder().With(tt.mutate).BuildDomain()
			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
				assert.Nil(t, l)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, l)
		})
	}
}

func TestLotReserve(t *testing.T) {
	tests := []struct {
		name          string
		available     int32
		inactive      bool
		count         int32
		errIs         error
		wantAvailable int32
	}{
		{name: "reserve part", available: 10, count: 3, wantAvailable: 7},
		{name: "reserve everything", available: 10, count: 10, wantAvailable: 0},
		{name: "one more than available", available: 10, count: 11, errIs: lot.ErrInsufficientInventory, wantAvailable: 10},
		{name: "sold out", available: 0, count: 1, errIs: lot.ErrInsufficientInventory, wantAvailable: 0},
		{name: "zero count", available: 10, count: 0, errIs: lot.ErrInvalidFractionCount, wantAvailable: 10},
		{name: "negative count", available: 10, count: -2, errIs: lot.ErrInvalidFractionCount, wantAvailable: 10},
		{name: "inactive lot", available: 10, inactive: true, count: 1, errIs: lot.ErrLotInactive, wantAvailable: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := builder.NewLotBuilder().WithAvailable(tt.available)
			if tt.inactive {
				b.AsInactive()
			}
			l, err := b.BuildDomain()
			require.NoError(t, err)

			err = l.Reserve(tt.count)
			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantAvailable, l.AvailableFractions())
		})
	}
}

func TestLotRelease(t *testing.T) {
	tests := []struct {
		name          string
		available     int32
		inactive      bool
		count         int32
		errIs         error
		wantAvailable int32
	}{
		{name: "release back to full", available: 90, count: 10, wantAvailable: 100},
		{name: "partial release", available: 50, count: 5, wantAvailable: 55},
		{name: "over release", available: 95, count: 6, errIs: lot.ErrOverRelease, wantAvailable: 95},
		{name: "release into full lot", available: 100, count: 1, errIs: lot.ErrOverRelease, wantAvailable: 100},
		{name: "zero count", available: 50, count: 0, errIs: lot.ErrInvalidFractionCount, wantAvailable: 50},
		{name: "inactive lot still accepts releases", available: 50, inactive: true, count: 5, wantAvailable: 55},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := builder.NewLotBuilder().WithAvailable(tt.available)
			if tt.inactive {
				b.AsInactive()
			}
			l, err := b.BuildDomain()
			require.NoError(t, err)

			err = l.Release(tt.count)
			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantAvailable, l.AvailableFractions())
		})
	}
}

func TestLotReserveReleaseRoundTrip(t *testing.T) {
	l, err := builder.NewLotBuilder().BuildDomain()
	require.NoError(t, err)

	require.NoError(t, l.Reserve(40))
	require.NoError(t, l.Reserve(60))
	require.ErrorIs(t, l.Reserve(1), lot.ErrInsufficientInventory)
	require.NoError(t, l.Release(60))
	require.NoError(t, l.Release(40))
	assert.Equal(t, l.TotalFractions(), l.AvailableFractions())
}
