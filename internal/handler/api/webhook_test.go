//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"fractional-market/internal/domain/payment"
	"fractional-market/internal/handler/api"
	"fractional-market/internal/pkg/errs"
	"fractional-market/internal/usecase/commands"
	"fractional-market/tests/common/httptest"
	commandsmock "fractional-market/tests/mock/commands"
	sharedmock "fractional-market/tests/mock/shared"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type WebhookHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCmds     *commandsmock.MockReconciliationCommands
	mockRegistry *sharedmock.MockGatewayRegistry
	mockGateway  *sharedmock.MockPaymentGateway
}

func (s *WebhookHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCmds = commandsmock.NewMockReconciliationCommands(s.mockCtrl)
	s.mockRegistry = sharedmock.NewMockGatewayRegistry(s.mockCtrl)
	s.mockGateway = sharedmock.NewMockPaymentGateway(s.mockCtrl)

	h := api.NewWebhookHandler(s.mockCmds, s.mockRegistry)
	s.router.POST("/webhooks/:provider", h.Handle)
}

func (s *WebhookHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestWebhookHandlerSuite(t *testing.T) {
	suite.Run(t, new(WebhookHandlerTestSuite))
}

func (s *WebhookHandlerTestSuite) TestHandle() {
	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed"}`)
	header := "Card-Signature"
	sig := "t=1,v1=abc"

	expectGateway := func() {
		s.mockRegistry.EXPECT().Get(payment.ProviderCard).Return(s.mockGateway, nil).Times(1)
		s.mockGateway.EXPECT().SignatureHeader().Return(header).Times(1)
	}

	s.Run("success: acknowledges with the exact raw body", func() {
		expectGateway()
		s.mockCmds.EXPECT().HandleWebhook(gomock.Any(), payment.ProviderCard, payload, sig).
			Return(commands.ResultApplied, nil).Times(1)

		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, "/webhooks/card", payload, map[string]string{header: sig})
		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`{"received":true}`, rec.Body.String())
	})

	s.Run("success: non-applied outcomes are still acknowledged", func() {
		for _, result := range []commands.ReconcileResult{
			commands.ResultReplayed,
			commands.ResultStale,
			commands.ResultUnknownOrder,
			commands.ResultAmountMismatch,
			commands.ResultIgnored,
		} {
			expectGateway()
			s.mockCmds.EXPECT().HandleWebhook(gomock.Any(), payment.ProviderCard, payload, sig).
				Return(result, nil).Times(1)

			rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, "/webhooks/card", payload, map[string]string{header: sig})
			s.Equal(http.StatusOK, rec.Code, string(result))
		}
	})

	s.Run("error: invalid signature is 401", func() {
		expectGateway()
		s.mockCmds.EXPECT().HandleWebhook(gomock.Any(), payment.ProviderCard, payload, "").
			Return(commands.ResultIgnored, errs.Wrap(payment.ErrInvalidSignature, "verify")).Times(1)

		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, "/webhooks/card", payload, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid signature")
	})

	s.Run("error: unknown provider is 404 and never reaches reconciliation", func() {
		s.mockRegistry.EXPECT().Get(payment.Provider("paypal")).Return(nil, payment.ErrUnknownProvider).Times(1)

		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, "/webhooks/paypal", payload, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Unknown provider")
	})

	s.Run("error: storage failure is 500 so the provider retries", func() {
		expectGateway()
		s.mockCmds.EXPECT().HandleWebhook(gomock.Any(), payment.ProviderCard, payload, sig).
			Return(commands.ResultIgnored, commands.ErrDatabaseOperationFailed).Times(1)

		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, "/webhooks/card", payload, map[string]string{header: sig})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}
