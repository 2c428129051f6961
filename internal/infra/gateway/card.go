package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"fractional-market/internal/domain/payment"
	"fractional-market/internal/pkg/clock"
	"fractional-market/internal/pkg/config"
	"fractional-market/internal/pkg/errs"
)

const CardSignatureHeader = "Stripe-Signature"

// CardGateway speaks the hosted-checkout protocol of the card processor.
type CardGateway struct {
	cfg    config.CardGatewayConfig
	client *providerClient
	clock  clock.Clock
}

func NewCardGateway(cfg config.CardGatewayConfig, clk clock.Clock) *CardGateway {
	return &CardGateway{
		cfg:    cfg,
		client: newProviderClient(cfg.Timeout, cfg.RequestsPerSecond),
		clock:  clk,
	}
}

func (g *CardGateway) Provider() payment.Provider { return payment.ProviderCard }
func (g *CardGateway) SignatureHeader() string    { return CardSignatureHeader }
func (g *CardGateway) SuccessURL() string         { return g.cfg.SuccessURL }
func (g *CardGateway) CancelURL() string          { return g.cfg.CancelURL }

func (g *CardGateway) Enabled() bool {
	return g.cfg.SecretKey != "" && g.cfg.WebhookSecret != ""
}

type cardSessionResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

func (g *CardGateway) CreateCheckoutSession(ctx context.Context, req payment.CheckoutRequest) (*payment.CheckoutSession, error) {
	if !g.Enabled() {
		return nil, payment.ErrProviderDisabled
	}

	orderID := req.OrderID.String()
	successURL, err := withOrderID(req.SuccessURL, orderID)
	if err != nil {
		return nil, errs.Wrap(err, "invalid success url")
	}

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("line_items[0][price_data][currency]", req.Currency)
	form.Set("line_items[0][price_data][product_data][name]", fmt.Sprintf("%d fractions of %s", req.FractionCount, req.LotTitle))
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(req.AmountCents, 10))
	form.Set("line_items[0][quantity]", "1")
	form.Set("success_url", successURL)
	form.Set("cancel_url", req.CancelURL)
	form.Set("client_reference_id", orderID)
	form.Set("metadata[order_id]", orderID)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(g.cfg.APIBaseURL, "/")+"/v1/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errs.Wrap(err, "build card session request")
	}
	httpReq.Header.Set("Authorization", "Bearer "+g.cfg.SecretKey)
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	// a retried order transaction must not open a second session
	httpReq.Header.Set("Idempotency-Key", orderID)

	body, err := g.client.do(ctx, httpReq)
	if err != nil {
		return nil, err
	}

	var resp cardSessionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errs.Wrapf(payment.ErrGatewayUnavailable, "decode card session: %v", err)
	}
	if resp.ID == "" || resp.URL == "" {
		return nil, errs.Wrap(payment.ErrGatewayUnavailable, "card session response without id or url")
	}

	return &payment.CheckoutSession{SessionID: resp.ID, RedirectURL: resp.URL}, nil
}

type cardEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID          string `json:"id"`
			AmountTotal *int64 `json:"amount_total"`
			Currency    string `json:"currency"`
		} `json:"object"`
	} `json:"data"`
}

func (g *CardGateway) VerifyAndParseCallback(payload []byte, signatureHeader string) (*payment.Event, error) {
	if err := g.verifySignature(payload, signatureHeader); err != nil {
		return nil, err
	}

	var ev cardEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return nil, errs.Wrapf(payment.ErrMalformedPayload, "card event: %v", err)
	}
	if ev.ID == "" || ev.Data.Object.ID == "" {
		return nil, errs.Wrap(payment.ErrMalformedPayload, "card event without id or session id")
	}

	var outcome payment.Outcome
	switch ev.Type {
	case "checkout.session.completed", "checkout.session.async_payment_succeeded":
		outcome = payment.OutcomePaid
	case "checkout.session.expired", "checkout.session.async_payment_failed":
		outcome = payment.OutcomeFailed
	default:
		return nil, errs.Wrapf(payment.ErrUnsupportedEvent, "card event type %q", ev.Type)
	}

	return &payment.Event{
		Provider:          payment.ProviderCard,
		ProviderEventID:   ev.ID,
		ProviderSessionID: ev.Data.Object.ID,
		Outcome:           outcome,
		AmountCents:       ev.Data.Object.AmountTotal,
		Currency:          strings.ToLower(ev.Data.Object.Currency),
	}, nil
}

// verifySignature checks "t=<unix>,v1=<hex>" against HMAC-SHA256("<t>.<payload>").
// Several v1 entries may be present while the secret is being rotated.
func (g *CardGateway) verifySignature(payload []byte, header string) error {
	if g.cfg.WebhookSecret == "" {
		return errs.Wrap(payment.ErrInvalidSignature, "card webhook secret not configured")
	}

	var (
		timestamp  string
		signatures []string
	)
	for _, part := range strings.Split(header, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch key {
		case "t":
			timestamp = value
		case "v1":
			signatures = append(signatures, value)
		}
	}
	if timestamp == "" || len(signatures) == 0 {
		return errs.Wrap(payment.ErrInvalidSignature, "signature header missing t or v1")
	}

	unix, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return errs.Wrap(payment.ErrInvalidSignature, "signature timestamp is not a number")
	}
	if g.cfg.SignatureTolerance > 0 {
		age := g.clock.Now().Sub(time.Unix(unix, 0))
		if age > g.cfg.SignatureTolerance || age < -g.cfg.SignatureTolerance {
			return errs.Wrapf(payment.ErrInvalidSignature, "signature timestamp outside tolerance (%s)", age)
		}
	}

	expected := signCard(g.cfg.WebhookSecret, timestamp, payload)
	for _, sig := range signatures {
		decoded, err := hex.DecodeString(sig)
		if err != nil {
			continue
		}
		if hmac.Equal(decoded, expected) {
			return nil
		}
	}
	return errs.Wrap(payment.ErrInvalidSignature, "no matching v1 signature")
}

func signCard(secret, timestamp string, payload []byte) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	return mac.Sum(nil)
}

// CardSignatureFor builds a valid header value; used by tests and local tooling.
func CardSignatureFor(secret string, at time.Time, payload []byte) string {
	ts := strconv.FormatInt(at.Unix(), 10)
	return "t=" + ts + ",v1=" + hex.EncodeToString(signCard(secret, ts, payload))
}
