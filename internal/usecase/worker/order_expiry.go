package worker

import (
	"context"
	"log/slog"
	"time"

	"fractional-market/internal/pkg/clock"
	"fractional-market/internal/usecase/commands"
)

// OrderExpiry cancels orders whose payment window closed without a callback,
// handing their fractions back to the lot.
type OrderExpiry struct {
	orders    commands.OrderCommands
	clock     clock.Clock
	timeout   time.Duration
	interval  time.Duration
	batchSize int32
}

func NewOrderExpiry(orders commands.OrderCommands, clock clock.Clock, paymentTimeout, interval time.Duration, batchSize int32) *OrderExpiry {
	if batchSize <= 0 {
		batchSize = 50
	}
	return &OrderExpiry{
		orders:    orders,
		clock:     clock,
		timeout:   paymentTimeout,
		interval:  interval,
		batchSize: batchSize,
	}
}

func (w *OrderExpiry) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	slog.Info("order expiry worker started", "interval", w.interval.String(), "payment_timeout", w.timeout.String())
	for {
		select {
		case <-ctx.Done():
			slog.Info("order expiry worker stopped")
			return
		case <-ticker.C:
			if _, err := w.Sweep(ctx); err != nil && ctx.Err() == nil {
				slog.Error("order expiry sweep failed", "error", err.Error())
			}
		}
	}
}

// Sweep drains every expired order in batches and returns the total cancelled.
func (w *OrderExpiry) Sweep(ctx context.Context) (int, error) {
	cutoff := w.clock.Now().Add(-w.timeout)
	total := 0
	for {
		n, err := w.orders.ExpireOrders(ctx, cutoff, w.batchSize)
		total += n
		if err != nil {
			return total, err
		}
		if n < int(w.batchSize) {
			break
		}
	}
	if total > 0 {
		slog.Info("expired unpaid orders", "count", total, "cutoff", cutoff)
	}
	return total, nil
}
