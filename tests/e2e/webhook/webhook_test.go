//go:build e2e

package webhook_test

import (
	"net/http"
	"sync"
	"testing"

	"fractional-market/internal/handler/dto/request"
	resdto "fractional-market/internal/handler/dto/response"
	"fractional-market/tests/common/authtest"
	"fractional-market/tests/common/dbtest"
	"fractional-market/tests/common/httptest"
	"fractional-market/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	cardWebhookURL  = "/api/webhooks/card"
	signatureHeader = "Stripe-Signature"
	webhookSecret   = "whsec_test"
)

type webhookSuite struct {
	e2e.SharedSuite
	token string
	lotID uuid.UUID
}

func TestWebhookSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(webhookSuite))
}

func (s *webhookSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
	_, s.token = authtest.CreateAndLogin(s.T(), s.DB, s.Router, "buyer@example.com")
	s.lotID = dbtest.CreateTestLot(s.T(), s.DB, "vineyard-row", 10, "25.00")
}

// placeOrder returns the new order id and its provider session id.
func (s *webhookSuite) placeOrder(count int32) (uuid.UUID, string) {
	t := s.T()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/orders",
		request.CreateOrderRequest{LotID: s.lotID, FractionCount: count, Provider: "card"}, s.token)
	var res resdto.OrderResponse
	httptest.AssertSuccessResponse(t, w, http.StatusCreated, &res)
	return res.ID, dbtest.OrderSessionID(t, s.DB, res.ID)
}

func (s *webhookSuite) deliver(payload []byte, signature string) int {
	w := httptest.PerformRawRequest(s.T(), s.Router, http.MethodPost, cardWebhookURL, payload,
		map[string]string{signatureHeader: signature, "Content-Type": "application/json"})
	return w.Code
}

func (s *webhookSuite) TestCompletedPayment() {
	s.Run("marks the order paid", func() {
		t := s.T()
		orderID, sessionID := s.placeOrder(2)

		payload, sig := e2e.CompletedEvent(webhookSecret, "evt_1", sessionID, 5000)
		require.Equal(t, http.StatusOK, s.deliver(payload, sig))

		require.Equal(t, "paid", dbtest.OrderStatus(t, s.DB, orderID))
		require.Equal(t, 1, dbtest.CountPaymentEvents(t, s.DB, orderID))
		require.Equal(t, 1, dbtest.CountPendingOutbox(t, s.DB, orderID))
		require.Equal(t, int32(8), dbtest.AvailableFractions(t, s.DB, s.lotID))
	})

	s.Run("replayed event changes nothing", func() {
		t := s.T()
		orderID, sessionID := s.placeOrder(2)
		payload, sig := e2e.CompletedEvent(webhookSecret, "evt_1", sessionID, 5000)

		for range 3 {
			require.Equal(t, http.StatusOK, s.deliver(payload, sig))
		}

		require.Equal(t, "paid", dbtest.OrderStatus(t, s.DB, orderID))
		require.Equal(t, 1, dbtest.CountPaymentEvents(t, s.DB, orderID))
		require.Equal(t, 1, dbtest.CountPendingOutbox(t, s.DB, orderID))
	})

	s.Run("amount mismatch is acknowledged and still paid by default", func() {
		t := s.T()
		orderID, sessionID := s.placeOrder(2)

		payload, sig := e2e.CompletedEvent(webhookSecret, "evt_short", sessionID, 4000)
		require.Equal(t, http.StatusOK, s.deliver(payload, sig))

		require.Equal(t, "paid", dbtest.OrderStatus(t, s.DB, orderID))
		require.Equal(t, 1, dbtest.CountPaymentEvents(t, s.DB, orderID))
	})
}

func (s *webhookSuite) TestExpiredSession() {
	s.Run("fails the order and releases fractions", func() {
		t := s.T()
		orderID, sessionID := s.placeOrder(6)
		require.Equal(t, int32(4), dbtest.AvailableFractions(t, s.DB, s.lotID))

		payload, sig := e2e.ExpiredEvent(webhookSecret, "evt_exp", sessionID)
		require.Equal(t, http.StatusOK, s.deliver(payload, sig))

		require.Equal(t, "failed", dbtest.OrderStatus(t, s.DB, orderID))
		require.Equal(t, int32(10), dbtest.AvailableFractions(t, s.DB, s.lotID))
	})
}

func (s *webhookSuite) TestStaleEvent() {
	s.Run("late failure after payment is recorded without changing the order", func() {
		t := s.T()
		orderID, sessionID := s.placeOrder(3)

		paid, paidSig := e2e.CompletedEvent(webhookSecret, "evt_paid", sessionID, 7500)
		require.Equal(t, http.StatusOK, s.deliver(paid, paidSig))

		expired, expiredSig := e2e.ExpiredEvent(webhookSecret, "evt_late", sessionID)
		require.Equal(t, http.StatusOK, s.deliver(expired, expiredSig))

		require.Equal(t, "paid", dbtest.OrderStatus(t, s.DB, orderID))
		require.Equal(t, 2, dbtest.CountPaymentEvents(t, s.DB, orderID))
		require.Equal(t, int32(7), dbtest.AvailableFractions(t, s.DB, s.lotID))
	})

	s.Run("payment after cancellation leaves the order cancelled", func() {
		t := s.T()
		orderID, sessionID := s.placeOrder(3)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/orders/"+orderID.String()+"/cancel", nil, s.token)
		require.Equal(t, http.StatusOK, w.Code)

		payload, sig := e2e.CompletedEvent(webhookSecret, "evt_after_cancel", sessionID, 7500)
		require.Equal(t, http.StatusOK, s.deliver(payload, sig))

		require.Equal(t, "cancelled", dbtest.OrderStatus(t, s.DB, orderID))
		require.Equal(t, 1, dbtest.CountPaymentEvents(t, s.DB, orderID))
		require.Equal(t, int32(10), dbtest.AvailableFractions(t, s.DB, s.lotID))
	})
}

// deliverConcurrently posts every payload at once and returns the status codes.
// Requests run on their own goroutines, so assertions stay with the caller.
func (s *webhookSuite) deliverConcurrently(payloads [][]byte, signatures []string) []int {
	start := make(chan struct{})
	codes := make([]int, len(payloads))
	var wg sync.WaitGroup
	for i := range payloads {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			w := httptest.ServeRaw(s.Router, http.MethodPost, cardWebhookURL, payloads[i],
				httptest.WithHeaders(map[string]string{signatureHeader: signatures[i]}))
			codes[i] = w.Code
		}()
	}
	close(start)
	wg.Wait()
	return codes
}

func (s *webhookSuite) TestConcurrentDeliveries() {
	s.Run("the same event delivered in parallel is applied once", func() {
		t := s.T()
		orderID, sessionID := s.placeOrder(2)
		payload, sig := e2e.CompletedEvent(webhookSecret, "evt_parallel", sessionID, 5000)

		const deliveries = 6
		payloads := make([][]byte, deliveries)
		sigs := make([]string, deliveries)
		for i := range deliveries {
			payloads[i], sigs[i] = payload, sig
		}

		for _, code := range s.deliverConcurrently(payloads, sigs) {
			require.Equal(t, http.StatusOK, code)
		}
		require.Equal(t, "paid", dbtest.OrderStatus(t, s.DB, orderID))
		require.Equal(t, 1, dbtest.CountPaymentEvents(t, s.DB, orderID))
		require.Equal(t, 1, dbtest.CountPendingOutbox(t, s.DB, orderID))
		require.Equal(t, int32(8), dbtest.AvailableFractions(t, s.DB, s.lotID))
	})

	s.Run("racing paid and failed outcomes settle on one terminal status", func() {
		t := s.T()
		orderID, sessionID := s.placeOrder(4)

		paid, paidSig := e2e.CompletedEvent(webhookSecret, "evt_race_paid", sessionID, 10000)
		failed, failedSig := e2e.ExpiredEvent(webhookSecret, "evt_race_failed", sessionID)

		codes := s.deliverConcurrently([][]byte{paid, failed}, []string{paidSig, failedSig})
		require.Equal(t, []int{http.StatusOK, http.StatusOK}, codes)

		// the loser is recorded as stale, so both events exist but only one moved the order
		require.Equal(t, 2, dbtest.CountPaymentEvents(t, s.DB, orderID))
		require.Equal(t, 1, dbtest.CountPendingOutbox(t, s.DB, orderID))

		switch status := dbtest.OrderStatus(t, s.DB, orderID); status {
		case "paid":
			require.Equal(t, int32(6), dbtest.AvailableFractions(t, s.DB, s.lotID))
		case "failed":
			require.Equal(t, int32(10), dbtest.AvailableFractions(t, s.DB, s.lotID))
		default:
			t.Fatalf("unexpected status %q", status)
		}
	})
}

func (s *webhookSuite) TestRejectedDeliveries() {
	s.Run("bad signature is unauthorized", func() {
		t := s.T()
		orderID, sessionID := s.placeOrder(1)

		payload, _ := e2e.CompletedEvent(webhookSecret, "evt_forged", sessionID, 2500)
		_, wrongSig := e2e.CompletedEvent("whsec_other", "evt_forged", sessionID, 2500)
		require.Equal(t, http.StatusUnauthorized, s.deliver(payload, wrongSig))

		require.Equal(t, "awaiting_payment", dbtest.OrderStatus(t, s.DB, orderID))
		require.Zero(t, dbtest.CountPaymentEvents(t, s.DB, orderID))
	})

	s.Run("missing signature is unauthorized", func() {
		payload, _ := e2e.CompletedEvent(webhookSecret, "evt_nosig", "cs_missing", 2500)
		require.Equal(s.T(), http.StatusUnauthorized, s.deliver(payload, ""))
	})

	s.Run("unknown session is acknowledged", func() {
		payload, sig := e2e.CompletedEvent(webhookSecret, "evt_orphan", "cs_does_not_exist", 2500)
		require.Equal(s.T(), http.StatusOK, s.deliver(payload, sig))
	})

	s.Run("unknown provider is not found", func() {
		w := httptest.PerformRawRequest(s.T(), s.Router, http.MethodPost, "/api/webhooks/barter", []byte(`{}`), nil)
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Unknown provider")
	})
}
