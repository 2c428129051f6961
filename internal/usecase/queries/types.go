package queries

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Read models (DTO for read side)
type OrderView struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	LotID           uuid.UUID `json:"lot_id"`
	LotTitle        string    `json:"lot_title"`
	FractionCount   int32     `json:"fraction_count"`
	AmountDueCents  int64     `json:"amount_due_cents"`
	AmountPaidCents *int64    `json:"amount_paid_cents,omitempty"`
	Currency        string    `json:"currency"`
	Status          string    `json:"status"`
	Provider        string    `json:"provider"`
	CheckoutURL     *string   `json:"checkout_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type LotView struct {
	ID                 uuid.UUID       `json:"id"`
	Title              string          `json:"title"`
	Slug               string          `json:"slug"`
	TotalFractions     int32           `json:"total_fractions"`
	AvailableFractions int32           `json:"available_fractions"`
	PricePerFraction   decimal.Decimal `json:"price_per_fraction"`
	MinFractionsToBuy  int32           `json:"min_fractions_to_buy"`
	Active             bool            `json:"active"`
	CreatedAt          time.Time       `json:"created_at"`
}

type UserView struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName *string   `json:"display_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type PaymentMethodsView struct {
	AvailableMethods []string `json:"available_methods"`
	EnabledMethods   []string `json:"enabled_methods"`
}
