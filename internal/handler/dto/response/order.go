package response

import (
	"time"

	"fractional-market/internal/usecase/queries"

	"github.com/google/uuid"
)

type OrderResponse struct {
	ID              uuid.UUID `json:"id"`
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

type OrderListResponse struct {
	Items      []*OrderResponse `json:"items"`
	NextCursor *string          `json:"next_cursor,omitempty"`
}

func FromOrderView(v *queries.OrderView) *OrderResponse {
	return &OrderResponse{
		ID:              v.ID,
		LotID:           v.LotID,
		LotTitle:        v.LotTitle,
		FractionCount:   v.FractionCount,
		AmountDueCents:  v.AmountDueCents,
		AmountPaidCents: v.AmountPaidCents,
		Currency:        v.Currency,
		Status:          v.Status,
		Provider:        v.Provider,
		CheckoutURL:     v.CheckoutURL,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}

func FromOrderViews(views []*queries.OrderView, next *queries.Cursor) *OrderListResponse {
	items := make([]*OrderResponse, len(views))
	for i, v := range views {
		items[i] = FromOrderView(v)
	}
	resp := &OrderListResponse{Items: items}
	if next != nil && next.After != "" {
		after := next.After
		resp.NextCursor = &after
	}
	return resp
}

type PaymentMethodsResponse struct {
	AvailableMethods []string `json:"available_methods"`
	EnabledMethods   []string `json:"enabled_methods"`
}

type WebhookAckResponse struct {
	Received bool `json:"received"`
}
