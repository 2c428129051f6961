//go:build unit || e2e

package builder

import (
	"time"

	"fractional-market/internal/domain/order"
	"fractional-market/internal/domain/payment"
	reqdto "fractional-market/internal/handler/dto/request"
	"fractional-market/internal/usecase/queries"

	"github.com/google/uuid"
)

type OrderBuilder struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	LotID             uuid.UUID
	LotTitle          string
	FractionCount     int32
	AmountDueCents    int64
	AmountPaidCents   *int64
	Currency          string
	Status            order.Status
	Provider          payment.Provider
	ProviderSessionID string
	CheckoutURL       string
	CreatedAt         time.Time
}

func NewOrderBuilder() *OrderBuilder {
	return &OrderBuilder{
		ID:                uuid.New(),
		UserID:            uuid.New(),
		LotID:             uuid.New(),
		LotTitle:          "Vintage Rolex Daytona",
		FractionCount:     4,
		AmountDueCents:    5000,
		Currency:          "eur",
		Status:            order.StatusAwaitingPayment,
		Provider:          payment.ProviderCard,
		ProviderSessionID: "cs_test_123",
		CheckoutURL:       "https://checkout.example.com/cs_test_123",
		CreatedAt:         time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (o *OrderBuilder) With(mutate func(*OrderBuilder)) *OrderBuilder {
	mutate(o)
	return o
}

func (o *OrderBuilder) WithStatus(s order.Status) *OrderBuilder {
	o.Status = s
	return o
}

func (o *OrderBuilder) WithUser(userID uuid.UUID) *OrderBuilder {
	o.UserID = userID
	return o
}

func (o *OrderBuilder) BuildDomain() (*order.Order, error) {
	amountDue, err := order.NewMoney(o.AmountDueCents, o.Currency)
	if err != nil {
		return nil, err
	}
	return order.Reconstruct(o.ID, o.UserID, o.LotID, o.FractionCount, amountDue, o.AmountPaidCents,
		o.Status, o.Provider, o.ProviderSessionID, o.CheckoutURL, o.CreatedAt, o.CreatedAt)
}

func (o *OrderBuilder) BuildReadModel() *queries.OrderView {
	var checkoutURL *string
	if o.CheckoutURL != "" {
		u := o.CheckoutURL
		checkoutURL = &u
	}
	return &queries.OrderView{
		ID:              o.ID,
		UserID:          o.UserID,
		LotID:           o.LotID,
		LotTitle:        o.LotTitle,
		FractionCount:   o.FractionCount,
		AmountDueCents:  o.AmountDueCents,
		AmountPaidCents: o.AmountPaidCents,
		Currency:        o.Currency,
		Status:          o.Status.String(),
		Provider:        o.Provider.String(),
		CheckoutURL:     checkoutURL,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.CreatedAt,
	}
}

func (o *OrderBuilder) BuildRequest() reqdto.CreateOrderRequest {
	return reqdto.CreateOrderRequest{
		LotID:         o.LotID,
		FractionCount: o.FractionCount,
		Provider:      o.Provider.String(),
	}
}
