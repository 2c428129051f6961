package api

import (
	"net/http"

	reqdto "fractional-market/internal/handler/dto/request"
	resdto "fractional-market/internal/handler/dto/response"
	"fractional-market/internal/handler/httperr"
	"fractional-market/internal/handler/middleware"
	"fractional-market/internal/usecase/commands"
	"fractional-market/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderHandler struct {
	cmds    commands.OrderCommands
	q       queries.OrderQueries
	methods queries.PaymentMethodQueries
}

func NewOrderHandler(cmds commands.OrderCommands, q queries.OrderQueries, methods queries.PaymentMethodQueries) *OrderHandler {
	return &OrderHandler{cmds: cmds, q: q, methods: methods}
}

// @Summary Create order
// @Description Reserve fractions of a lot and open a checkout session with the chosen provider
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateOrderRequest true "Create order request"
// @Success 201 {object} resdto.OrderResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}

	var req reqdto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	view, err := h.cmds.CreateOrder(c.Request.Context(), userID, req.ToInput())
	if err != nil {
		abortWithMappedError(c, err, orderErrorMappings)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromOrderView(view))
}

// @Summary Get order
// @Description Get one of the caller's orders
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), userID, id)
	if err != nil {
		abortWithMappedError(c, err, orderErrorMappings)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOrderView(view))
}

// @Summary List orders
// @Description List the caller's orders, newest first
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size (max 100)"
// @Param after query string false "Cursor from a previous page"
// @Success 200 {object} resdto.OrderListResponse
// @Failure 400 {object} httperr.Response
// @Router /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}

	var q reqdto.ListOrdersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}

	var after *queries.Cursor
	if q.After != "" {
		after = &queries.Cursor{After: q.After}
	}

	views, next, err := h.q.ListByUser(c.Request.Context(), userID, after, q.Limit)
	if err != nil {
		abortWithMappedError(c, err, orderErrorMappings)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOrderViews(views, next))
}

// @Summary Cancel order
// @Description Cancel an order that is still awaiting payment and release its fractions
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	view, err := h.cmds.CancelOrder(c.Request.Context(), userID, id)
	if err != nil {
		abortWithMappedError(c, err, orderErrorMappings)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOrderView(view))
}

// @Summary Payment methods
// @Description Registered payment providers and the ones currently accepting orders
// @Tags orders
// @Produce json
// @Success 200 {object} resdto.PaymentMethodsResponse
// @Router /orders/payment-methods [get]
func (h *OrderHandler) PaymentMethods(c *gin.Context) {
	v := h.methods.List(c.Request.Context())
	c.JSON(http.StatusOK, resdto.PaymentMethodsResponse{
		AvailableMethods: v.AvailableMethods,
		EnabledMethods:   v.EnabledMethods,
	})
}
