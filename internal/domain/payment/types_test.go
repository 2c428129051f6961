//go:build unit

package payment_test

import (
	"testing"
	"time"

	"fractional-market/internal/domain/payment"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider(t *testing.T) {
	assert.True(t, payment.ProviderCard.IsValid())
	assert.True(t, payment.ProviderRegional.IsValid())
	assert.False(t, payment.Provider("").IsValid())
	assert.False(t, payment.Provider("Card").IsValid())
}

func TestNewRecord(t *testing.T) {
	amount := int64(2500)
	orderID := uuid.New()
	at := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	t.Run("copies the event", func(t *testing.T) {
		ev := &payment.Event{
			Provider:          payment.ProviderRegional,
			ProviderEventID:   "evt_9",
			ProviderSessionID: "inv_9",
			Outcome:           payment.OutcomePaid,
			AmountCents:       &amount,
		}
		rec, err := payment.NewRecord(ev, orderID, at)
		require.NoError(t, err)

		assert.Equal(t, payment.ProviderRegional, rec.Provider())
		assert.Equal(t, "evt_9", rec.EventID())
		assert.Equal(t, orderID, rec.OrderID())
		assert.Equal(t, payment.OutcomePaid, rec.Outcome())
		assert.Equal(t, &amount, rec.AmountCents())
		assert.Equal(t, at, rec.ProcessedAt())
	})

	t.Run("rejects an unknown outcome", func(t *testing.T) {
		_, err := payment.NewRecord(&payment.Event{Outcome: payment.Outcome("refunded")}, orderID, at)
		require.ErrorIs(t, err, payment.ErrInvalidOutcome)
	})
}
