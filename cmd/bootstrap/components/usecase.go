package components

import (
	"fractional-market/internal/domain/order"
	"fractional-market/internal/pkg/clock"
	"fractional-market/internal/pkg/config"
	"fractional-market/internal/usecase"
	"fractional-market/internal/usecase/commands"
	"fractional-market/internal/usecase/queries"
	"fractional-market/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		order.NewDefaultPriceCalculator,
		fx.As(new(order.PriceCalculator)),
	),
	func(clock clock.Clock, calc order.PriceCalculator, cfg config.Config) *order.Factory {
		return order.NewFactory(clock, calc, cfg.Order.MinFractions, cfg.Order.Currency)
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		func(
			uow shared.UnitOfWork,
			gateways shared.GatewayRegistry,
			factory *order.Factory,
			orderQueries queries.OrderQueries,
			clock clock.Clock,
			cfg config.Config,
		) commands.OrderCommands {
			return commands.NewOrderCommands(uow, gateways, factory, orderQueries, clock, cfg.Order.CreateTimeout)
		},
		func(
			uow shared.UnitOfWork,
			gateways shared.GatewayRegistry,
			cache shared.EventCache,
			clock clock.Clock,
			cfg config.Config,
		) commands.ReconciliationCommands {
			return commands.NewReconciliationCommands(uow, gateways, cache, clock, cfg.Reconciliation.StrictAmountCheck)
		},
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewOrderQueries,
		queries.NewPaymentMethodQueries,
		func(store queries.LotReadStore, cfg config.Config) queries.LotQueries {
			return queries.NewLotQueries(store, cfg.Order.MinFractions)
		},
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
