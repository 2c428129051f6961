package request

import (
	"strings"

	"fractional-market/internal/domain/payment"
	"fractional-market/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateOrderRequest struct {
	LotID         uuid.UUID `json:"lot_id" binding:"required"`
	FractionCount int32     `json:"fraction_count" binding:"required,min=1"`
	Provider      string    `json:"provider" binding:"required"`
	ReturnURL     *string   `json:"return_url,omitempty" binding:"omitempty,url"`
	CancelURL     *string   `json:"cancel_url,omitempty" binding:"omitempty,url"`
}

func (r CreateOrderRequest) ToInput() commands.CreateOrderInput {
	return commands.CreateOrderInput{
		LotID:         r.LotID,
		FractionCount: r.FractionCount,
		Provider:      payment.Provider(strings.ToLower(strings.TrimSpace(r.Provider))),
		ReturnURL:     r.ReturnURL,
		CancelURL:     r.CancelURL,
	}
}

type ListOrdersQuery struct {
	Limit int    `form:"limit" binding:"omitempty,min=1,max=100"`
	After string `form:"after"`
}
