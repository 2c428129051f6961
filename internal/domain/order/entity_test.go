//go:build unit

package order_test

import (
	"testing"
	"time"

	"fractional-market/internal/domain/lot"
	"fractional-market/internal/domain/order"
	"fractional-market/internal/domain/payment"
	"fractional-market/internal/pkg/clock"
	"fractional-market/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func TestOrderTransitions(t *testing.T) {
	type transition func(o *order.Order) error

	markPaid := func(o *order.Order) error { return o.MarkPaid(5000, now) }
	markFailed := func(o *order.Order) error { return o.MarkFailed(now) }
	cancel := func(o *order.Order) error { return o.Cancel(now) }

	tests := []struct {
		name       string
		from       order.Status
		apply      transition
		wantStatus order.Status
		errIs      error
	}{
		{"awaiting to paid", order.StatusAwaitingPayment, markPaid, order.StatusPaid, nil},
		{"awaiting to failed", order.StatusAwaitingPayment, markFailed, order.StatusFailed, nil},
		{"awaiting to cancelled", order.StatusAwaitingPayment, cancel, order.StatusCancelled, nil},
		{"pending cannot be paid", order.StatusPending, markPaid, order.StatusPending, order.ErrInvalidTransition},
		{"paid cannot fail", order.StatusPaid, markFailed, order.StatusPaid, order.ErrInvalidTransition},
		{"paid cannot be cancelled", order.StatusPaid, cancel, order.StatusPaid, order.ErrInvalidTransition},
		{"failed cannot be paid", order.StatusFailed, markPaid, order.StatusFailed, order.ErrInvalidTransition},
		{"cancelled cannot be paid", order.StatusCancelled, markPaid, order.StatusCancelled, order.ErrInvalidTransition},
		{"cancelled cannot be cancelled again", order.StatusCancelled, cancel, order.StatusCancelled, order.ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := builder.NewOrderBuilder().WithStatus(tt.from).BuildDomain()
			require.NoError(t, err)
			before := o.UpdatedAt()

			err = tt.apply(o)
			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
				assert.Equal(t, before, o.UpdatedAt())
			} else {
				require.NoError(t, err)
				assert.Equal(t, now, o.UpdatedAt())
			}
			assert.Equal(t, tt.wantStatus, o.Status())
		})
	}
}

func TestOrderMarkPaidRecordsAmount(t *testing.T) {
	o, err := builder.NewOrderBuilder().BuildDomain()
	require.NoError(t, err)
	require.Nil(t, o.AmountPaidCents())

	require.NoError(t, o.MarkPaid(4999, now))
	require.NotNil(t, o.AmountPaidCents())
	assert.Equal(t, int64(4999), *o.AmountPaidCents())
}

func TestOrderAttachSession(t *testing.T) {
	pending := func(b *builder.OrderBuilder) {
		b.Status = order.StatusPending
		b.ProviderSessionID = ""
		b.CheckoutURL = ""
	}

	t.Run("opens the payment window", func(t *testing.T) {
		o, err := builder.NewOrderBuilder().With(pending).BuildDomain()
		require.NoError(t, err)

		require.NoError(t, o.AttachSession("cs_1", "https://pay.example/cs_1", now))
		assert.Equal(t, order.StatusAwaitingPayment, o.Status())
		assert.Equal(t, "cs_1", o.ProviderSessionID())
		assert.Equal(t, "https://pay.example/cs_1", o.CheckoutURL())
		assert.True(t, o.IsAwaitingPayment())
	})

	t.Run("empty session id", func(t *testing.T) {
		o, err := builder.NewOrderBuilder().With(pending).BuildDomain()
		require.NoError(t, err)
		require.ErrorIs(t, o.AttachSession("", "https://pay.example", now), order.ErrEmptySession)
		assert.Equal(t, order.StatusPending, o.Status())
	})

	t.Run("attached only once", func(t *testing.T) {
		o, err := builder.NewOrderBuilder().BuildDomain()
		require.NoError(t, err)
		require.ErrorIs(t, o.AttachSession("cs_2", "", now), order.ErrSessionAlreadyAttached)
		assert.Equal(t, "cs_test_123", o.ProviderSessionID())
	})
}

func TestOrderReconstructRejectsUnknownStatus(t *testing.T) {
	_, err := builder.NewOrderBuilder().WithStatus(order.Status("refunded")).BuildDomain()
	require.ErrorIs(t, err, order.ErrInvalidStatus)
}

func TestOrderOwnership(t *testing.T) {
	owner := uuid.New()
	o, err := builder.NewOrderBuilder().WithUser(owner).BuildDomain()
	require.NoError(t, err)

	assert.True(t, o.IsOwnedBy(owner))
	assert.False(t, o.IsOwnedBy(uuid.New()))
}

func TestStatus(t *testing.T) {
	assert.False(t, order.StatusPending.IsTerminal())
	assert.False(t, order.StatusAwaitingPayment.IsTerminal())
	for _, s := range []order.Status{order.StatusPaid, order.StatusFailed, order.StatusCancelled} {
		assert.True(t, s.IsTerminal(), s)
	}

	assert.True(t, order.StatusFailed.ReleasesFractions())
	assert.True(t, order.StatusCancelled.ReleasesFractions())
	assert.False(t, order.StatusPaid.ReleasesFractions())
}

func TestFactory(t *testing.T) {
	factory := order.NewFactory(clock.NewMockClock(now), order.NewDefaultPriceCalculator(), 2, "EUR")
	userID := uuid.New()

	t.Run("prices the order from the lot", func(t *testing.T) {
		l, err := builder.NewLotBuilder().BuildDomain()
		require.NoError(t, err)

		o, err := factory.CreateOrder(userID, l, 3, payment.ProviderCard)
		require.NoError(t, err)

		want, _ := order.NewMoney(3750, "eur")
		if diff := cmp.Diff(want, o.AmountDue(), cmp.AllowUnexported(order.Money{})); diff != "" {
			t.Errorf("amount due mismatch (-want +got):\n%s", diff)
		}
		assert.Equal(t, order.StatusPending, o.Status())
		assert.Equal(t, userID, o.UserID())
		assert.Equal(t, l.ID(), o.LotID())
		assert.Equal(t, now, o.CreatedAt())
		assert.Empty(t, o.ProviderSessionID())
	})

	t.Run("refusals", func(t *testing.T) {
		tests := []struct {
			name     string
			lot      func(*builder.LotBuilder)
			count    int32
			provider payment.Provider
			errIs    error
		}{
			{"below minimum", func(*builder.LotBuilder) {}, 1, payment.ProviderCard, order.ErrBelowMinimumFractions},
			{"unknown provider", func(*builder.LotBuilder) {}, 2, payment.Provider("barter"), order.ErrUnsupportedPaymentRoute},
			{"not enough left", func(b *builder.LotBuilder) { b.WithAvailable(1) }, 2, payment.ProviderCard, lot.ErrInsufficientInventory},
			{"inactive lot", func(b *builder.LotBuilder) { b.AsInactive() }, 2, payment.ProviderRegional, lot.ErrLotInactive},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				l, err := builder.NewLotBuilder().With(tt.lot).BuildDomain()
				require.NoError(t, err)

				o, err := factory.CreateOrder(userID, l, tt.count, tt.provider)
				require.ErrorIs(t, err, tt.errIs)
				assert.Nil(t, o)
			})
		}
	})
}

func TestDefaultPriceCalculator(t *testing.T) {
	pc := order.NewDefaultPriceCalculator()

	tests := []struct {
		price string
		count int32
		want  int64
	}{
		{"12.50", 4, 5000},
		{"0.01", 1, 1},
		{"0.333", 3, 99},
		{"19.999", 1, 1999},
		{"1000", 100, 10000000},
	}
	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			assert.Equal(t, tt.want, pc.AmountDueCents(decimal.RequireFromString(tt.price), tt.count))
		})
	}
}

func TestMoney(t *testing.T) {
	_, err := order.NewMoney(-1, "eur")
	require.ErrorIs(t, err, order.ErrNegativeAmount)

	m, err := order.NewMoney(5000, "EUR")
	require.NoError(t, err)
	assert.Equal(t, "eur", m.Currency())

	assert.True(t, m.Matches(5000, "eur"))
	assert.True(t, m.Matches(5000, "EUR"))
	assert.True(t, m.Matches(5000, ""))
	assert.False(t, m.Matches(4999, "eur"))
	assert.False(t, m.Matches(5000, "usd"))
}
