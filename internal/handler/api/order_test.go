//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"fractional-market/internal/domain/lot"
	"fractional-market/internal/domain/order"
	"fractional-market/internal/domain/payment"
	"fractional-market/internal/handler/api"
	resdto "fractional-market/internal/handler/dto/response"
	"fractional-market/internal/usecase/commands"
	"fractional-market/internal/usecase/queries"
	"fractional-market/tests/common/builder"
	"fractional-market/tests/common/httptest"
	"fractional-market/tests/common/testutil"
	commandsmock "fractional-market/tests/mock/commands"
	queriesmock "fractional-market/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type OrderHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockCmds    *commandsmock.MockOrderCommands
	mockQueries *queriesmock.MockOrderQueries
	mockMethods *queriesmock.MockPaymentMethodQueries
	userID      uuid.UUID
}

func (s *OrderHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCmds = commandsmock.NewMockOrderCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockOrderQueries(s.mockCtrl)
	s.mockMethods = queriesmock.NewMockPaymentMethodQueries(s.mockCtrl)
	s.userID = uuid.New()

	h := api.NewOrderHandler(s.mockCmds, s.mockQueries, s.mockMethods)

	authed := s.router.Group("", func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			c.Set("user_id", s.userID)
		}
	})
	authed.POST("/orders", h.Create)
	authed.GET("/orders", h.List)
	authed.GET("/orders/:id", h.Get)
	authed.POST("/orders/:id/cancel", h.Cancel)
	s.router.GET("/orders/payment-methods", h.PaymentMethods)
}

func (s *OrderHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestOrderHandlerSuite(t *testing.T) {
	suite.Run(t, new(OrderHandlerTestSuite))
}

func (s *OrderHandlerTestSuite) TestCreate() {
	url := "/orders"
	ob := builder.NewOrderBuilder().WithUser(s.userID)
	reqBody := ob.BuildRequest()
	view := ob.BuildReadModel()

	s.Run("success: returns 201 Created with the checkout url", func() {
		s.mockCmds.EXPECT().CreateOrder(gomock.Any(), s.userID, reqBody.ToInput()).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")

		var response resdto.OrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(view.ID, response.ID)
		s.Equal("awaiting_payment", response.Status)
		s.Require().NotNil(response.CheckoutURL)
		s.Equal(*view.CheckoutURL, *response.CheckoutURL)
	})

	s.Run("success: provider name is normalised before reaching the usecase", func() {
		s.mockCmds.EXPECT().CreateOrder(gomock.Any(), s.userID, gomock.Cond(func(in commands.CreateOrderInput) bool {
			return in.Provider == payment.ProviderRegional
		})).Return(view, nil).Times(1)

		body := testutil.DtoMap(s.T(), reqBody, testutil.Field("provider", " Regional "))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "token")
		s.Equal(http.StatusCreated, rec.Code, rec.Body.String())
	})

	s.Run("error: 401 without an authenticated user", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []struct {
			name   string
			mutate func(map[string]any)
		}{
			{"missing lot_id", testutil.Field("lot_id", nil)},
			{"zero fractions", testutil.Field("fraction_count", 0)},
			{"negative fractions", testutil.Field("fraction_count", -2)},
			{"missing provider", testutil.Field("provider", nil)},
			{"malformed return url", testutil.Field("return_url", "not a url")},
			{"lot_id not a uuid", testutil.Field("lot_id", "abc")},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				body := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			err            error
			expectedStatus int
			expectedMsg    string
		}{
			{"insufficient inventory", lot.ErrInsufficientInventory, http.StatusConflict, "Not enough fractions available"},
			{"inactive lot", lot.ErrLotInactive, http.StatusConflict, "Lot is not available for purchase"},
			{"lot not found", commands.ErrLotNotFound, http.StatusNotFound, "Lot not found"},
			{"below minimum", order.ErrBelowMinimumFractions, http.StatusBadRequest, "Fraction count below minimum"},
			{"unknown provider", payment.ErrUnknownProvider, http.StatusBadRequest, "Unsupported payment provider"},
			{"disabled provider", payment.ErrProviderDisabled, http.StatusBadRequest, "Payment provider is disabled"},
			{"gateway unavailable", payment.ErrGatewayUnavailable, http.StatusServiceUnavailable, "Payment provider unavailable"},
			{"storage failure", commands.ErrDatabaseOperationFailed, http.StatusInternalServerError, "Internal server error"},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCmds.EXPECT().CreateOrder(gomock.Any(), s.userID, gomock.Any()).
					Return(nil, tc.err).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

func (s *OrderHandlerTestSuite) TestGet() {
	view := builder.NewOrderBuilder().WithUser(s.userID).BuildReadModel()

	s.Run("success: returns the caller's order", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.userID, view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/"+view.ID.String(), nil, "token")

		var response resdto.OrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(view.ID, response.ID)
		s.Equal(view.LotTitle, response.LotTitle)
	})

	s.Run("error: someone else's order reads as not found", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.userID, view.ID).
			Return(nil, queries.ErrOrderNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/"+view.ID.String(), nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Order not found")
	})

	s.Run("error: 400 on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/not-a-uuid", nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})
}

func (s *OrderHandlerTestSuite) TestList() {
	views := []*queries.OrderView{
		builder.NewOrderBuilder().WithUser(s.userID).BuildReadModel(),
		builder.NewOrderBuilder().WithUser(s.userID).WithStatus(order.StatusPaid).BuildReadModel(),
	}

	s.Run("success: passes cursor and limit through and returns the next cursor", func() {
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.userID, &queries.Cursor{After: "abc"}, 2).
			Return(views, &queries.Cursor{After: "next"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders?limit=2&after=abc", nil, "token")

		var response resdto.OrderListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response.Items, 2)
		s.Require().NotNil(response.NextCursor)
		s.Equal("next", *response.NextCursor)
	})

	s.Run("success: last page carries no cursor", func() {
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.userID, nil, 0).
			Return(views[:1], nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders", nil, "token")

		var response resdto.OrderListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response.Items, 1)
		s.Nil(response.NextCursor)
	})

	s.Run("error: limit out of range", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders?limit=500", nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid query")
	})

	s.Run("error: tampered cursor", func() {
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.userID, gomock.Any(), gomock.Any()).
			Return(nil, nil, queries.ErrInvalidCursor).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders?after=garbage", nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid cursor")
	})
}

func (s *OrderHandlerTestSuite) TestCancel() {
	ob := builder.NewOrderBuilder().WithUser(s.userID)
	url := "/orders/" + ob.ID.String() + "/cancel"

	s.Run("success: returns the cancelled order", func() {
		cancelled := ob.WithStatus(order.StatusCancelled).BuildReadModel()
		s.mockCmds.EXPECT().CancelOrder(gomock.Any(), s.userID, ob.ID).Return(cancelled, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "token")

		var response resdto.OrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("cancelled", response.Status)
	})

	s.Run("error: terminal order cannot be cancelled", func() {
		s.mockCmds.EXPECT().CancelOrder(gomock.Any(), s.userID, ob.ID).
			Return(nil, order.ErrInvalidTransition).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Order cannot change status")
	})

	s.Run("error: unknown order", func() {
		s.mockCmds.EXPECT().CancelOrder(gomock.Any(), s.userID, ob.ID).
			Return(nil, commands.ErrOrderNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Order not found")
	})

	s.Run("error: unexpected failure", func() {
		s.mockCmds.EXPECT().CancelOrder(gomock.Any(), s.userID, ob.ID).
			Return(nil, errors.New("boom")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}

func (s *OrderHandlerTestSuite) TestPaymentMethods() {
	s.mockMethods.EXPECT().List(gomock.Any()).Return(&queries.PaymentMethodsView{
		AvailableMethods: []string{"card", "regional"},
		EnabledMethods:   []string{"card"},
	}).Times(1)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/payment-methods", nil, "")

	var response resdto.PaymentMethodsResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
	s.Equal([]string{"card", "regional"}, response.AvailableMethods)
	s.Equal([]string{"card"}, response.EnabledMethods)
}
