package config

import (
	"strings"
	"time"

	"fractional-market/internal/pkg/errs"
	"fractional-market/internal/pkg/patch"
)

var ErrInvalidConfig = errs.New("invalid configuration")

// Validate normalizes cfg in place and rejects settings the services cannot run with.
func (c *Config) Validate() error {
	c.Order.Currency = strings.ToLower(strings.TrimSpace(c.Order.Currency))
	c.Regional.SuccessURL = patch.FirstNonZero(c.Regional.SuccessURL, c.Card.SuccessURL)
	c.Regional.CancelURL = patch.FirstNonZero(c.Regional.CancelURL, c.Card.CancelURL)

	switch {
	case c.Order.MinFractions < 1:
		return invalid("ORDER_MIN_FRACTIONS must be at least 1, got %d", c.Order.MinFractions)
	case len(c.Order.Currency) != 3:
		return invalid("ORDER_CURRENCY must be an ISO 4217 code, got %q", c.Order.Currency)
	case c.Order.ExpiryBatchSize < 1:
		return invalid("ORDER_EXPIRY_BATCH_SIZE must be positive")
	case c.Order.PaymentTimeout <= 0:
		return invalid("ORDER_PAYMENT_TIMEOUT must be positive")
	case c.Broker.BatchSize < 1:
		return invalid("BROKER_BATCH_SIZE must be positive")
	}

	if _, err := time.ParseDuration(c.JWT.Duration); err != nil {
		return errs.Mark(errs.Wrapf(err, "JWT_DURATION %q", c.JWT.Duration), ErrInvalidConfig)
	}

	switch c.Cookie.SameSite {
	case "Lax", "Strict", "None":
	default:
		return invalid("COOKIE_SAME_SITE must be Lax, Strict or None, got %q", c.Cookie.SameSite)
	}
	if c.Cookie.SameSite == "None" && !c.Cookie.Secure {
		return invalid("COOKIE_SAME_SITE=None requires COOKIE_SECURE=true")
	}

	// an enabled provider whose callbacks cannot be verified would strand every order
	if c.Card.SecretKey != "" && c.Card.WebhookSecret == "" {
		return invalid("CARD_WEBHOOK_SECRET is required when CARD_SECRET_KEY is set")
	}
	if c.Regional.APIKey != "" && c.Regional.WebhookSecret == "" {
		return invalid("REGIONAL_WEBHOOK_SECRET is required when REGIONAL_API_KEY is set")
	}
	return nil
}

func invalid(format string, args ...any) error {
	return errs.Mark(errs.Newf(format, args...), ErrInvalidConfig)
}
