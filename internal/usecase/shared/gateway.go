package shared

import (
	"context"

	"fractional-market/internal/domain/payment"
)

// PaymentGateway is implemented once per provider.
type PaymentGateway interface {
	Provider() payment.Provider
	// Enabled reports whether credentials are configured
	Enabled() bool
	SignatureHeader() string
	CreateCheckoutSession(ctx context.Context, req payment.CheckoutRequest) (*payment.CheckoutSession, error)
	VerifyAndParseCallback(payload []byte, signatureHeader string) (*payment.Event, error)
	SuccessURL() string
	CancelURL() string
}

type GatewayRegistry interface {
	Get(provider payment.Provider) (PaymentGateway, error)
	Available() []payment.Provider
	Enabled() []payment.Provider
}

// EventCache is a best-effort replay filter in front of the payment_events table.
type EventCache interface {
	Seen(ctx context.Context, provider payment.Provider, eventID string) (bool, error)
	Remember(ctx context.Context, provider payment.Provider, eventID string) error
}

type EventPublisher interface {
	Publish(ctx context.Context, msg OutboxMessage) error
}
