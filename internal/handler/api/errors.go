package api

import (
	"net/http"

	"fractional-market/internal/domain/lot"
	"fractional-market/internal/domain/order"
	"fractional-market/internal/domain/payment"
	"fractional-market/internal/domain/user"
	"fractional-market/internal/handler/httperr"
	"fractional-market/internal/pkg/errs"
	"fractional-market/internal/usecase/commands"
	"fractional-market/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type errorMapping struct {
	target  error
	status  int
	message string
}

// order of entries matters: the first match wins
var orderErrorMappings = []errorMapping{
	{lot.ErrInsufficientInventory, http.StatusConflict, "Not enough fractions available"},
	{lot.ErrLotInactive, http.StatusConflict, "Lot is not available for purchase"},
	{lot.ErrInvalidFractionCount, http.StatusBadRequest, "Fraction count must be positive"},
	{order.ErrBelowMinimumFractions, http.StatusBadRequest, "Fraction count below minimum"},
	{order.ErrUnsupportedPaymentRoute, http.StatusBadRequest, "Unsupported payment provider"},
	{order.ErrInvalidTransition, http.StatusConflict, "Order cannot change status"},
	{payment.ErrUnknownProvider, http.StatusBadRequest, "Unsupported payment provider"},
	{payment.ErrProviderDisabled, http.StatusBadRequest, "Payment provider is disabled"},
	{payment.ErrGatewayUnavailable, http.StatusServiceUnavailable, "Payment provider unavailable"},
	{commands.ErrLotNotFound, http.StatusNotFound, "Lot not found"},
	{commands.ErrOrderNotFound, http.StatusNotFound, "Order not found"},
	{queries.ErrOrderNotFound, http.StatusNotFound, "Order not found"},
	{queries.ErrLotNotFound, http.StatusNotFound, "Lot not found"},
	{queries.ErrInvalidCursor, http.StatusBadRequest, "Invalid cursor"},
}

var authErrorMappings = []errorMapping{
	{user.ErrInvalidEmail, http.StatusBadRequest, "Invalid email"},
	{user.ErrPasswordTooWeak, http.StatusBadRequest, "Password too weak"},
	{user.ErrPasswordTooLong, http.StatusBadRequest, "Password too long"},
	{commands.ErrEmailTaken, http.StatusConflict, "Email already registered"},
	{commands.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
	{queries.ErrUserNotFound, http.StatusNotFound, "User not found"},
}

func abortWithMappedError(c *gin.Context, err error, mappings []errorMapping) {
	for _, m := range mappings {
		if errs.Is(err, m.target) {
			httperr.AbortWithError(c, m.status, err, m.message, nil)
			return
		}
	}
	httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
}
