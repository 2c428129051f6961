package payment

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidSignature   = errors.New("invalid callback signature")
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	ErrMalformedPayload   = errors.New("malformed callback payload")
	// ErrUnsupportedEvent marks authentic callbacks that carry no payment outcome
	ErrUnsupportedEvent = errors.New("unsupported callback event")
	ErrUnknownProvider  = errors.New("unknown payment provider")
	ErrProviderDisabled = errors.New("payment provider disabled")
	ErrInvalidOutcome   = errors.New("invalid payment outcome")
)

type Provider string

const (
	ProviderCard     Provider = "card"
	ProviderRegional Provider = "regional"
)

func (p Provider) String() string {
	return string(p)
}

func (p Provider) IsValid() bool {
	switch p {
	case ProviderCard, ProviderRegional:
		return true
	default:
		return false
	}
}

type Outcome string

const (
	OutcomePaid   Outcome = "paid"
	OutcomeFailed Outcome = "failed"
)

func (o Outcome) String() string {
	return string(o)
}

func (o Outcome) IsValid() bool {
	return o == OutcomePaid || o == OutcomeFailed
}

// Event is a verified, provider-neutral callback.
type Event struct {
	Provider          Provider
	ProviderEventID   string
	ProviderSessionID string
	Outcome           Outcome
	// AmountCents is nil when the provider omitted the amount
	AmountCents *int64
	Currency    string
}

type CheckoutRequest struct {
	OrderID       uuid.UUID
	AmountCents   int64
	Currency      string
	FractionCount int32
	LotTitle      string
	SuccessURL    string
	CancelURL     string
}

type CheckoutSession struct {
	SessionID   string
	RedirectURL string
}

// Record is the durable idempotency marker for one processed provider event.
type Record struct {
	provider    Provider
	eventID     string
	orderID     uuid.UUID
	outcome     Outcome
	amountCents *int64
	processedAt time.Time
}

func NewRecord(ev *Event, orderID uuid.UUID, processedAt time.Time) (*Record, error) {
	if !ev.Outcome.IsValid() {
		return nil, ErrInvalidOutcome
	}
	return &Record{
		provider:    ev.Provider,
		eventID:     ev.ProviderEventID,
		orderID:     orderID,
		outcome:     ev.Outcome,
		amountCents: ev.AmountCents,
		processedAt: processedAt,
	}, nil
}

func (r *Record) Provider() Provider     { return r.provider }
func (r *Record) EventID() string        { return r.eventID }
func (r *Record) OrderID() uuid.UUID     { return r.orderID }
func (r *Record) Outcome() Outcome       { return r.outcome }
func (r *Record) AmountCents() *int64    { return r.amountCents }
func (r *Record) ProcessedAt() time.Time { return r.processedAt }
