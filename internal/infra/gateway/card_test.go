//go:build unit

package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fractional-market/internal/domain/payment"
	"fractional-market/internal/pkg/clock"
	"fractional-market/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cardNow = time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

func newTestCardGateway(baseURL string) *CardGateway {
	cfg := config.NewTestConfig().Card
	cfg.APIBaseURL = baseURL
	return NewCardGateway(cfg, clock.NewMockClock(cardNow))
}

const completedEvent = `{"id":"evt_1","type":"checkout.session.completed","data":{"object":{"id":"cs_123","amount_total":5000,"currency":"EUR"}}}`

func TestCardGateway_VerifyAndParseCallback(t *testing.T) {
	gw := newTestCardGateway("http://unused")
	payload := []byte(completedEvent)

	tests := []struct {
		name    string
		payload []byte
		header  string
		wantErr error
		want    *payment.Event
	}{
		{
			name:    "valid completed event",
			payload: payload,
			header:  CardSignatureFor("whsec_test", cardNow, payload),
			want: &payment.Event{
				Provider:          payment.ProviderCard,
				ProviderEventID:   "evt_1",
				ProviderSessionID: "cs_123",
				Outcome:           payment.OutcomePaid,
				AmountCents:       ptr(int64(5000)),
				Currency:          "eur",
			},
		},
		{
			name:    "rotated secret, second v1 matches",
			payload: payload,
			header:  CardSignatureFor("whsec_test", cardNow, payload) + ",v1=deadbeef",
			want: &payment.Event{
				Provider:          payment.ProviderCard,
				ProviderEventID:   "evt_1",
				ProviderSessionID: "cs_123",
				Outcome:           payment.OutcomePaid,
				AmountCents:       ptr(int64(5000)),
				Currency:          "eur",
			},
		},
		{
			name:    "wrong secret",
			payload: payload,
			header:  CardSignatureFor("other", cardNow, payload),
			wantErr: payment.ErrInvalidSignature,
		},
		{
			name:    "tampered body",
			payload: []byte(`{"id":"evt_1","type":"checkout.session.completed","data":{"object":{"id":"cs_999"}}}`),
			header:  CardSignatureFor("whsec_test", cardNow, payload),
			wantErr: payment.ErrInvalidSignature,
		},
		{
			name:    "timestamp too old",
			payload: payload,
			header:  CardSignatureFor("whsec_test", cardNow.Add(-10*time.Minute), payload),
			wantErr: payment.ErrInvalidSignature,
		},
		{
			name:    "missing header",
			payload: payload,
			header:  "",
			wantErr: payment.ErrInvalidSignature,
		},
		{
			name:    "expired session is a failure",
			payload: []byte(`{"id":"evt_2","type":"checkout.session.expired","data":{"object":{"id":"cs_123"}}}`),
			header:  CardSignatureFor("whsec_test", cardNow, []byte(`{"id":"evt_2","type":"checkout.session.expired","data":{"object":{"id":"cs_123"}}}`)),
			want: &payment.Event{
				Provider:          payment.ProviderCard,
				ProviderEventID:   "evt_2",
				ProviderSessionID: "cs_123",
				Outcome:           payment.OutcomeFailed,
			},
		},
		{
			name:    "unrelated event type",
			payload: []byte(`{"id":"evt_3","type":"customer.created","data":{"object":{"id":"cus_1"}}}`),
			header:  CardSignatureFor("whsec_test", cardNow, []byte(`{"id":"evt_3","type":"customer.created","data":{"object":{"id":"cus_1"}}}`)),
			wantErr: payment.ErrUnsupportedEvent,
		},
		{
			name:    "signed garbage",
			payload: []byte(`not json`),
			header:  CardSignatureFor("whsec_test", cardNow, []byte(`not json`)),
			wantErr: payment.ErrMalformedPayload,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := gw.VerifyAndParseCallback(tt.payload, tt.header)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCardGateway_CreateCheckoutSession(t *testing.T) {
	orderID := uuid.New()

	t.Run("posts form and returns session", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
			assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))
			assert.Equal(t, orderID.String(), r.Header.Get("Idempotency-Key"))
			assert.NoError(t, r.ParseForm())
			assert.Equal(t, "5000", r.PostForm.Get("line_items[0][price_data][unit_amount]"))
			assert.Equal(t, "eur", r.PostForm.Get("line_items[0][price_data][currency]"))
			assert.Equal(t, "https://shop.example/done?from=mail&order_id="+orderID.String(), r.PostForm.Get("success_url"))
			assert.Equal(t, orderID.String(), r.PostForm.Get("metadata[order_id]"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"cs_abc","url":"https://pay.example/cs_abc"}`))
		}))
		defer srv.Close()

		session, err := newTestCardGateway(srv.URL).CreateCheckoutSession(context.Background(), payment.CheckoutRequest{
			OrderID:       orderID,
			AmountCents:   5000,
			Currency:      "eur",
			FractionCount: 4,
			LotTitle:      "Vintage watch",
			SuccessURL:    "https://shop.example/done?from=mail",
			CancelURL:     "https://shop.example/cancel",
		})

		require.NoError(t, err)
		assert.Equal(t, "cs_abc", session.SessionID)
		assert.Equal(t, "https://pay.example/cs_abc", session.RedirectURL)
	})

	t.Run("provider error is gateway unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		_, err := newTestCardGateway(srv.URL).CreateCheckoutSession(context.Background(), payment.CheckoutRequest{
			OrderID:    orderID,
			SuccessURL: "https://shop.example/done",
		})

		assert.ErrorIs(t, err, payment.ErrGatewayUnavailable)
	})

	t.Run("response without url is gateway unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"id":"cs_abc"}`))
		}))
		defer srv.Close()

		_, err := newTestCardGateway(srv.URL).CreateCheckoutSession(context.Background(), payment.CheckoutRequest{
			OrderID:    orderID,
			SuccessURL: "https://shop.example/done",
		})

		assert.ErrorIs(t, err, payment.ErrGatewayUnavailable)
	})

	t.Run("unreachable provider is gateway unavailable", func(t *testing.T) {
		_, err := newTestCardGateway("http://127.0.0.1:1").CreateCheckoutSession(context.Background(), payment.CheckoutRequest{
			OrderID:    orderID,
			SuccessURL: "https://shop.example/done",
		})

		assert.ErrorIs(t, err, payment.ErrGatewayUnavailable)
	})

	t.Run("disabled without credentials", func(t *testing.T) {
		gw := NewCardGateway(config.CardGatewayConfig{}, clock.NewMockClock(cardNow))

		_, err := gw.CreateCheckoutSession(context.Background(), payment.CheckoutRequest{OrderID: orderID})

		assert.ErrorIs(t, err, payment.ErrProviderDisabled)
		assert.False(t, gw.Enabled())
	})
}

func ptr[T any](v T) *T {
	return &v
}
