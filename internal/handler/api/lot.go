package api

import (
	"net/http"

	resdto "fractional-market/internal/handler/dto/response"
	"fractional-market/internal/handler/httperr"
	"fractional-market/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LotHandler struct {
	q queries.LotQueries
}

func NewLotHandler(q queries.LotQueries) *LotHandler {
	return &LotHandler{q: q}
}

// @Summary List lots
// @Description Active lots with their remaining fractions
// @Tags lots
// @Produce json
// @Success 200 {array} resdto.LotResponse
// @Router /lots [get]
func (h *LotHandler) List(c *gin.Context) {
	views, err := h.q.ListActive(c.Request.Context())
	if err != nil {
		abortWithMappedError(c, err, orderErrorMappings)
		return
	}
	resp, err := resdto.FromLotViews(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Get lot
// @Description Get one active lot
// @Tags lots
// @Produce json
// @Param id path string true "Lot ID"
// @Success 200 {object} resdto.LotResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /lots/{id} [get]
func (h *LotHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		abortWithMappedError(c, err, orderErrorMappings)
		return
	}
	resp, err := resdto.FromLotView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}
