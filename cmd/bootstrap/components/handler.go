package components

import (
	"fractional-market/internal/handler"
	"fractional-market/internal/handler/api"
	"fractional-market/internal/handler/middleware"
	"fractional-market/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		func(cfg config.Config) config.CookieConfig {
			return cfg.Cookie
		},
		api.NewAuthHandler,
		api.NewLotHandler,
		api.NewOrderHandler,
		api.NewWebhookHandler,
		middleware.NewAuthMiddleware,
		func(auth *api.AuthHandler, lots *api.LotHandler, orders *api.OrderHandler, webhook *api.WebhookHandler) handler.Handlers {
			return handler.Handlers{Auth: auth, Lots: lots, Orders: orders, Webhook: webhook}
		},
	),
	fx.Invoke(handler.NewRouter),
)
