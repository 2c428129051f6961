package order

import (
	"errors"
	"time"

	"fractional-market/internal/domain/payment"

	"github.com/google/uuid"
)

var (
	ErrInvalidTransition       = errors.New("invalid order status transition")
	ErrSessionAlreadyAttached  = errors.New("provider session already attached")
	ErrEmptySession            = errors.New("provider session id is empty")
	ErrBelowMinimumFractions   = errors.New("fraction count below minimum")
	ErrInvalidStatus           = errors.New("invalid order status")
	ErrUnsupportedPaymentRoute = errors.New("unsupported payment provider")
)

type Order struct {
	id                uuid.UUID
	userID            uuid.UUID
	lotID             uuid.UUID
	fractionCount     int32
	amountDue         Money
	amountPaidCents   *int64
	status            Status
	provider          payment.Provider
	providerSessionID string
	checkoutURL       string
	createdAt         time.Time
	updatedAt         time.Time
}

func Reconstruct(
	id, userID, lotID uuid.UUID,
	fractionCount int32,
	amountDue Money,
	amountPaidCents *int64,
	status Status,
	provider payment.Provider,
	providerSessionID, checkoutURL string,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}
	return &Order{
		id:                id,
		userID:            userID,
		lotID:             lotID,
		fractionCount:     fractionCount,
		amountDue:         amountDue,
		amountPaidCents:   amountPaidCents,
		status:            status,
		provider:          provider,
		providerSessionID: providerSessionID,
		checkoutURL:       checkoutURL,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}, nil
}

// AttachSession stores the external reference exactly once and opens the payment window.
func (o *Order) AttachSession(sessionID, checkoutURL string, now time.Time) error {
	if sessionID == "" {
		return ErrEmptySession
	}
	if o.providerSessionID != "" {
		return ErrSessionAlreadyAttached
	}
	if o.status != StatusPending {
		return ErrInvalidTransition
	}
	o.providerSessionID = sessionID
	o.checkoutURL = checkoutURL
	o.status = StatusAwaitingPayment
	o.updatedAt = now
	return nil
}

func (o *Order) MarkPaid(amountPaidCents int64, now time.Time) error {
	if o.status != StatusAwaitingPayment {
		return ErrInvalidTransition
	}
	paid := amountPaidCents
	o.amountPaidCents = &paid
	o.status = StatusPaid
	o.updatedAt = now
	return nil
}

func (o *Order) MarkFailed(now time.Time) error {
	if o.status != StatusAwaitingPayment {
		return ErrInvalidTransition
	}
	o.status = StatusFailed
	o.updatedAt = now
	return nil
}

func (o *Order) Cancel(now time.Time) error {
	if o.status != StatusAwaitingPayment {
		return ErrInvalidTransition
	}
	o.status = StatusCancelled
	o.updatedAt = now
	return nil
}

func (o *Order) IsAwaitingPayment() bool {
	return o.status == StatusAwaitingPayment
}

func (o *Order) IsOwnedBy(userID uuid.UUID) bool {
	return o.userID == userID
}

func (o *Order) ID() uuid.UUID              { return o.id }
func (o *Order) UserID() uuid.UUID          { return o.userID }
func (o *Order) LotID() uuid.UUID           { return o.lotID }
func (o *Order) FractionCount() int32       { return o.fractionCount }
func (o *Order) AmountDue() Money           { return o.amountDue }
func (o *Order) AmountPaidCents() *int64    { return o.amountPaidCents }
func (o *Order) Status() Status             { return o.status }
func (o *Order) Provider() payment.Provider { return o.provider }
func (o *Order) ProviderSessionID() string  { return o.providerSessionID }
func (o *Order) CheckoutURL() string        { return o.checkoutURL }
func (o *Order) CreatedAt() time.Time       { return o.createdAt }
func (o *Order) UpdatedAt() time.Time       { return o.updatedAt }
