package gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"

	"fractional-market/internal/domain/payment"
	"fractional-market/internal/pkg/config"
	"fractional-market/internal/pkg/errs"
)

const RegionalSignatureHeader = "X-Signature"

// RegionalGateway is the secondary processor: JSON API, body-only HMAC.
type RegionalGateway struct {
	cfg    config.RegionalGatewayConfig
	client *providerClient
}

func NewRegionalGateway(cfg config.RegionalGatewayConfig) *RegionalGateway {
	return &RegionalGateway{
		cfg:    cfg,
		client: newProviderClient(cfg.Timeout, cfg.RequestsPerSecond),
	}
}

func (g *RegionalGateway) Provider() payment.Provider { return payment.ProviderRegional }
func (g *RegionalGateway) SignatureHeader() string    { return RegionalSignatureHeader }
func (g *RegionalGateway) SuccessURL() string         { return g.cfg.SuccessURL }
func (g *RegionalGateway) CancelURL() string          { return g.cfg.CancelURL }

func (g *RegionalGateway) Enabled() bool {
	return g.cfg.APIKey != "" && g.cfg.WebhookSecret != ""
}

type regionalPaymentRequest struct {
	OrderID    string `json:"order_id"`
	Amount     int64  `json:"amount"`
	Currency   string `json:"currency"`
	SuccessURL string `json:"success_url"`
	CancelURL  string `json:"cancel_url"`
}

type regionalPaymentResponse struct {
	PaymentID   string `json:"payment_id"`
	CheckoutURL string `json:"checkout_url"`
}

func (g *RegionalGateway) CreateCheckoutSession(ctx context.Context, req payment.CheckoutRequest) (*payment.CheckoutSession, error) {
	if !g.Enabled() {
		return nil, payment.ErrProviderDisabled
	}

	orderID := req.OrderID.String()
	successURL, err := withOrderID(req.SuccessURL, orderID)
	if err != nil {
		return nil, errs.Wrap(err, "invalid success url")
	}

	body, err := json.Marshal(regionalPaymentRequest{
		OrderID:    orderID,
		Amount:     req.AmountCents,
		Currency:   strings.ToUpper(req.Currency),
		SuccessURL: successURL,
		CancelURL:  req.CancelURL,
	})
	if err != nil {
		return nil, errs.Wrap(err, "encode regional payment request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(g.cfg.APIBaseURL, "/")+"/payments", bytes.NewReader(body))
	if err != nil {
		return nil, errs.Wrap(err, "build regional payment request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-API-Key", g.cfg.APIKey)
	// same key as the card gateway: a retried order transaction reuses the payment
	httpReq.Header.Set("Idempotency-Key", orderID)

	respBody, err := g.client.do(ctx, httpReq)
	if err != nil {
		return nil, err
	}

	var resp regionalPaymentResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, errs.Wrapf(payment.ErrGatewayUnavailable, "decode regional payment: %v", err)
	}
	if resp.PaymentID == "" || resp.CheckoutURL == "" {
		return nil, errs.Wrap(payment.ErrGatewayUnavailable, "regional payment response without id or url")
	}

	return &payment.CheckoutSession{SessionID: resp.PaymentID, RedirectURL: resp.CheckoutURL}, nil
}

type regionalCallback struct {
	EventID       string `json:"event_id"`
	TransactionID string `json:"transaction_id"`
	PaymentID     string `json:"payment_id"`
	OrderID       string `json:"order_id"`
	Status        string `json:"status"`
	Amount        *int64 `json:"amount"`
	Currency      string `json:"currency"`
}

func (g *RegionalGateway) VerifyAndParseCallback(payload []byte, signatureHeader string) (*payment.Event, error) {
	if g.cfg.WebhookSecret == "" {
		return nil, errs.Wrap(payment.ErrInvalidSignature, "regional webhook secret not configured")
	}
	got, err := hex.DecodeString(strings.TrimSpace(signatureHeader))
	if err != nil || len(got) == 0 {
		return nil, errs.Wrap(payment.ErrInvalidSignature, "signature is not hex")
	}
	if !hmac.Equal(got, signRegional(g.cfg.WebhookSecret, payload)) {
		return nil, errs.Wrap(payment.ErrInvalidSignature, "signature mismatch")
	}

	var cb regionalCallback
	if err := json.Unmarshal(payload, &cb); err != nil {
		return nil, errs.Wrapf(payment.ErrMalformedPayload, "regional callback: %v", err)
	}
	if cb.PaymentID == "" {
		return nil, errs.Wrap(payment.ErrMalformedPayload, "regional callback without payment_id")
	}

	var outcome payment.Outcome
	switch strings.ToLower(cb.Status) {
	case "paid", "success", "completed":
		outcome = payment.OutcomePaid
	case "failed", "cancelled", "canceled", "expired", "declined":
		outcome = payment.OutcomeFailed
	default:
		return nil, errs.Wrapf(payment.ErrUnsupportedEvent, "regional status %q", cb.Status)
	}

	eventID := cb.EventID
	if eventID == "" {
		eventID = cb.TransactionID
	}
	if eventID == "" {
		eventID = cb.PaymentID + ":" + strings.ToLower(cb.Status)
	}

	return &payment.Event{
		Provider:          payment.ProviderRegional,
		ProviderEventID:   eventID,
		ProviderSessionID: cb.PaymentID,
		Outcome:           outcome,
		AmountCents:       cb.Amount,
		Currency:          strings.ToLower(cb.Currency),
	}, nil
}

func signRegional(secret string, payload []byte) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return mac.Sum(nil)
}

func RegionalSignatureFor(secret string, payload []byte) string {
	return hex.EncodeToString(signRegional(secret, payload))
}
