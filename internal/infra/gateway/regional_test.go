//go:build unit

package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"fractional-market/internal/domain/payment"
	"fractional-market/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegionalGateway(baseURL string) *RegionalGateway {
	cfg := config.NewTestConfig().Regional
	cfg.APIBaseURL = baseURL
	return NewRegionalGateway(cfg)
}

func TestRegionalGateway_VerifyAndParseCallback(t *testing.T) {
	gw := newTestRegionalGateway("http://unused")

	tests := []struct {
		name        string
		body        string
		badSig      bool
		wantErr     error
		wantEventID string
		wantOutcome payment.Outcome
	}{
		{
			name:        "paid with event id",
			body:        `{"event_id":"ev_9","payment_id":"pk_1","status":"success","amount":5000,"currency":"EUR"}`,
			wantEventID: "ev_9",
			wantOutcome: payment.OutcomePaid,
		},
		{
			name:        "falls back to transaction id",
			body:        `{"transaction_id":"tx_7","payment_id":"pk_1","status":"paid"}`,
			wantEventID: "tx_7",
			wantOutcome: payment.OutcomePaid,
		},
		{
			name:        "falls back to payment id and status",
			body:        `{"payment_id":"pk_1","status":"declined"}`,
			wantEventID: "pk_1:declined",
			wantOutcome: payment.OutcomeFailed,
		},
		{
			name:    "bad signature",
			body:    `{"payment_id":"pk_1","status":"paid"}`,
			badSig:  true,
			wantErr: payment.ErrInvalidSignature,
		},
		{
			name:    "pending status is not an outcome",
			body:    `{"payment_id":"pk_1","status":"pending"}`,
			wantErr: payment.ErrUnsupportedEvent,
		},
		{
			name:    "missing payment id",
			body:    `{"status":"paid"}`,
			wantErr: payment.ErrMalformedPayload,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := RegionalSignatureFor("regional_secret", []byte(tt.body))
			if tt.badSig {
				sig = RegionalSignatureFor("wrong", []byte(tt.body))
			}

			ev, err := gw.VerifyAndParseCallback([]byte(tt.body), sig)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, payment.ProviderRegional, ev.Provider)
			assert.Equal(t, "pk_1", ev.ProviderSessionID)
			assert.Equal(t, tt.wantEventID, ev.ProviderEventID)
			assert.Equal(t, tt.wantOutcome, ev.Outcome)
		})
	}
}

func TestRegionalGateway_CreateCheckoutSession(t *testing.T) {
	orderID := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payments", r.URL.Path)
		assert.Equal(t, "rk_test", r.Header.Get("X-API-Key"))
		assert.Equal(t, orderID.String(), r.Header.Get("Idempotency-Key"))

		var body regionalPaymentRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, orderID.String(), body.OrderID)
		assert.Equal(t, int64(1250), body.Amount)
		assert.Equal(t, "EUR", body.Currency)

		_, _ = w.Write([]byte(`{"payment_id":"pk_42","checkout_url":"https://regional.example/pay/pk_42"}`))
	}))
	defer srv.Close()

	session, err := newTestRegionalGateway(srv.URL).CreateCheckoutSession(context.Background(), payment.CheckoutRequest{
		OrderID:     orderID,
		AmountCents: 1250,
		Currency:    "eur",
		SuccessURL:  "https://shop.example/done",
		CancelURL:   "https://shop.example/cancel",
	})

	require.NoError(t, err)
	assert.Equal(t, "pk_42", session.SessionID)
	assert.Equal(t, "https://regional.example/pay/pk_42", session.RedirectURL)
}

func TestRegistry(t *testing.T) {
	card := newTestCardGateway("http://unused")
	regional := NewRegionalGateway(config.RegionalGatewayConfig{})
	reg := NewRegistry(card, regional)

	got, err := reg.Get(payment.ProviderCard)
	require.NoError(t, err)
	assert.Equal(t, payment.ProviderCard, got.Provider())

	_, err = reg.Get("paypal")
	assert.ErrorIs(t, err, payment.ErrUnknownProvider)

	assert.Equal(t, []payment.Provider{payment.ProviderCard, payment.ProviderRegional}, reg.Available())
	assert.Equal(t, []payment.Provider{payment.ProviderCard}, reg.Enabled())
}
