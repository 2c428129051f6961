package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"fractional-market/internal/domain/payment"
	resdto "fractional-market/internal/handler/dto/response"
	"fractional-market/internal/handler/httperr"
	"fractional-market/internal/usecase/commands"
	"fractional-market/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

const maxWebhookBody = 1 << 20

type WebhookHandler struct {
	cmds     commands.ReconciliationCommands
	gateways shared.GatewayRegistry
}

func NewWebhookHandler(cmds commands.ReconciliationCommands, gateways shared.GatewayRegistry) *WebhookHandler {
	return &WebhookHandler{cmds: cmds, gateways: gateways}
}

// @Summary Payment provider callback
// @Description Verifies the provider signature and reconciles the payment outcome. Every authentic callback is acknowledged.
// @Tags webhooks
// @Accept json
// @Produce json
// @Param provider path string true "Provider name (card, regional)"
// @Success 200 {object} resdto.WebhookAckResponse
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /webhooks/{provider} [post]
func (h *WebhookHandler) Handle(c *gin.Context) {
	provider := payment.Provider(c.Param("provider"))
	gw, err := h.gateways.Get(provider)
	if err != nil {
		httperr.AbortWithError(c, http.StatusNotFound, err, "Unknown provider", nil)
		return
	}

	// the signature covers the exact bytes, so the body is never re-encoded
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Unreadable body", nil)
		return
	}

	result, err := h.cmds.HandleWebhook(c.Request.Context(), provider, body, c.GetHeader(gw.SignatureHeader()))
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrInvalidSignature):
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid signature", nil)
		case errors.Is(err, payment.ErrUnknownProvider):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Unknown provider", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	slog.Debug("webhook acknowledged", "provider", provider.String(), "result", string(result))
	c.JSON(http.StatusOK, resdto.WebhookAckResponse{Received: true})
}
