package bootstrap

import (
	"context"
	"log/slog"
	"sync"

	"fractional-market/internal/pkg/clock"
	"fractional-market/internal/pkg/config"
	"fractional-market/internal/usecase/commands"
	"fractional-market/internal/usecase/shared"
	"fractional-market/internal/usecase/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Invoke(
		StartWorkers,
	),
)

type workerParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    config.Config
	Clock     clock.Clock
	UoW       shared.UnitOfWork
	Orders    commands.OrderCommands
	Publisher shared.EventPublisher `optional:"true"`
}

func StartWorkers(p workerParams) {
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	run := func(name string, fn func(context.Context)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			slog.Info("worker started", "worker", name)
			fn(ctx)
			slog.Info("worker stopped", "worker", name)
		}()
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			expiry := worker.NewOrderExpiry(p.Orders, p.Clock,
				p.Config.Order.PaymentTimeout, p.Config.Order.ExpirySweepInterval, p.Config.Order.ExpiryBatchSize)
			run("order_expiry", expiry.Run)

			if p.Publisher != nil {
				relay := worker.NewOutboxRelay(p.UoW, p.Publisher, p.Config.Broker.RelayInterval, p.Config.Broker.BatchSize)
				run("outbox_relay", relay.Run)
			}
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			done := make(chan struct{})
			go func() {
				wg.Wait()
				close(done)
			}()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}
