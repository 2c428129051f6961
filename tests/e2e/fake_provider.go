//go:build e2e

package e2e

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"fractional-market/internal/infra/gateway"
)

// FakeCardProvider stands in for the card processor's session API.
type FakeCardProvider struct {
	srv *httptest.Server

	mu       sync.Mutex
	failNext bool
	sessions []string
}

func NewFakeCardProvider(t *testing.T) *FakeCardProvider {
	p := &FakeCardProvider{}
	p.srv = httptest.NewServer(http.HandlerFunc(p.serve))
	t.Cleanup(p.srv.Close)
	return p
}

func (p *FakeCardProvider) URL() string { return p.srv.URL }

func (p *FakeCardProvider) serve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost || r.URL.Path != "/v1/checkout/sessions" {
		http.NotFound(w, r)
		return
	}

	p.mu.Lock()
	fail := p.failNext
	p.failNext = false
	var id string
	if !fail {
		id = fmt.Sprintf("cs_e2e_%d", len(p.sessions)+1)
		p.sessions = append(p.sessions, id)
	}
	p.mu.Unlock()

	if fail {
		w.WriteHeader(http.StatusBadGateway)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"id":  id,
		"url": "https://checkout.test/" + id,
	})
}

// FailNext makes the next session request fail with 502.
func (p *FakeCardProvider) FailNext() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failNext = true
}

func (p *FakeCardProvider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failNext = false
	p.sessions = nil
}

// CompletedEvent builds a signed checkout.session.completed callback.
func CompletedEvent(secret, eventID, sessionID string, amountCents int64) ([]byte, string) {
	return cardEvent(secret, eventID, "checkout.session.completed", sessionID, amountCents)
}

// ExpiredEvent builds a signed checkout.session.expired callback.
func ExpiredEvent(secret, eventID, sessionID string) ([]byte, string) {
	return cardEvent(secret, eventID, "checkout.session.expired", sessionID, 0)
}

func cardEvent(secret, eventID, eventType, sessionID string, amountCents int64) ([]byte, string) {
	object := map[string]any{"id": sessionID, "currency": "eur"}
	if amountCents > 0 {
		object["amount_total"] = amountCents
	}
	payload, _ := json.Marshal(map[string]any{
		"id":   eventID,
		"type": eventType,
		"data": map[string]any{"object": object},
	})
	return payload, gateway.CardSignatureFor(secret, time.Now(), payload)
}
