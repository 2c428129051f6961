package bootstrap

import (
	"context"
	"log/slog"

	"fractional-market/internal/infra/broker"
	"fractional-market/internal/pkg/config"
	"fractional-market/internal/pkg/errs"
	"fractional-market/internal/usecase/shared"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/fx"
)

var BrokerModule = fx.Module("broker",
	fx.Provide(
		NewEventPublisher,
	),
)

// NewEventPublisher returns nil when no broker is configured; the outbox relay
// is then not started and rows stay pending.
func NewEventPublisher(lc fx.Lifecycle, cfg config.Config) (shared.EventPublisher, error) {
	if cfg.Broker.URL == "" {
		slog.Info("broker not configured, outbox relay disabled")
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.Broker.URL)
	if err != nil {
		return nil, errs.Wrap(err, "failed to connect to broker")
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errs.Wrap(err, "failed to open broker channel")
	}

	publisher, err := broker.NewRabbitPublisher(ch, cfg.Broker.Exchange)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			_ = ch.Close()
			return conn.Close()
		},
	})

	return publisher, nil
}
