package bootstrap

import (
	"log/slog"

	"fractional-market/internal/infra/gateway"
	"fractional-market/internal/pkg/clock"
	"fractional-market/internal/pkg/config"
	"fractional-market/internal/usecase/queries"
	"fractional-market/internal/usecase/shared"

	"go.uber.org/fx"
)

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		fx.Annotate(
			NewGatewayRegistry,
			fx.As(new(shared.GatewayRegistry)),
			fx.As(new(queries.ProviderCatalog)),
		),
	),
)

func NewGatewayRegistry(cfg config.Config, clk clock.Clock) *gateway.Registry {
	registry := gateway.NewRegistry(
		gateway.NewCardGateway(cfg.Card, clk),
		gateway.NewRegionalGateway(cfg.Regional),
	)
	slog.Info("payment gateways registered",
		"available", registry.Available(),
		"enabled", registry.Enabled())
	return registry
}
