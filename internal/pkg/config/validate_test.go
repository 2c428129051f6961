//go:build unit

package config_test

import (
	"testing"

	"fractional-market/internal/pkg/config"
	"fractional-market/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Run("test config is valid", func(t *testing.T) {
		cfg := config.NewTestConfig()
		require.NoError(t, cfg.Validate())
	})

	t.Run("normalizes currency and regional redirects", func(t *testing.T) {
		cfg := config.NewTestConfig()
		cfg.Order.Currency = " EUR "
		cfg.Regional.SuccessURL = ""

		require.NoError(t, cfg.Validate())
		assert.Equal(t, "eur", cfg.Order.Currency)
		assert.Equal(t, cfg.Card.SuccessURL, cfg.Regional.SuccessURL)
	})

	cases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"zero min fractions", func(c *config.Config) { c.Order.MinFractions = 0 }},
		{"bad currency", func(c *config.Config) { c.Order.Currency = "euro" }},
		{"zero expiry batch", func(c *config.Config) { c.Order.ExpiryBatchSize = 0 }},
		{"zero payment timeout", func(c *config.Config) { c.Order.PaymentTimeout = 0 }},
		{"zero relay batch", func(c *config.Config) { c.Broker.BatchSize = 0 }},
		{"unparsable jwt duration", func(c *config.Config) { c.JWT.Duration = "forever" }},
		{"unknown same site", func(c *config.Config) { c.Cookie.SameSite = "lax" }},
		{"same site none without secure", func(c *config.Config) { c.Cookie.SameSite = "None" }},
		{"card key without webhook secret", func(c *config.Config) { c.Card.WebhookSecret = "" }},
		{"regional key without webhook secret", func(c *config.Config) { c.Regional.WebhookSecret = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.NewTestConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errs.Is(err, config.ErrInvalidConfig), "%v", err)
		})
	}
}
