package shared

import (
	"time"

	"github.com/google/uuid"
)

const (
	TopicOrderPaid      = "order.paid"
	TopicOrderFailed    = "order.failed"
	TopicOrderCancelled = "order.cancelled"
)

type OutboxMessage struct {
	ID       uuid.UUID
	OrderID  uuid.UUID
	Topic    string
	Payload  []byte
	Attempts int32
}

// OrderEventPayload is the body published for every terminal order transition.
type OrderEventPayload struct {
	OrderID         uuid.UUID `json:"order_id"`
	UserID          uuid.UUID `json:"user_id"`
	LotID           uuid.UUID `json:"lot_id"`
	FractionCount   int32     `json:"fraction_count"`
	Status          string    `json:"status"`
	Provider        string    `json:"provider"`
	AmountDueCents  int64     `json:"amount_due_cents"`
	AmountPaidCents *int64    `json:"amount_paid_cents,omitempty"`
	Currency        string    `json:"currency"`
	OccurredAt      time.Time `json:"occurred_at"`
}
