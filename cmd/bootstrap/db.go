package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fractional-market/internal/infra/db"
	"fractional-market/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

const dbConnectTimeout = 30 * time.Second

var DBModule = fx.Module("db",
	fx.Provide(
		NewDB,
	),
	fx.Invoke(registerPoolMetrics),
)

func NewDB(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), dbConnectTimeout)
	defer cancel()

	pool, cleanup, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			stat := pool.Stat()
			slog.Info("closing database pool",
				"acquired", stat.AcquiredConns(),
				"total", stat.TotalConns(),
				"acquire_count", stat.AcquireCount())
			cleanup()
			return nil
		},
	})

	return pool, nil
}

// registerPoolMetrics exposes pool saturation; ledger CAS contention shows up here first.
func registerPoolMetrics(pool *pgxpool.Pool) error {
	gauges := map[string]func(*pgxpool.Stat) float64{
		"db_pool_acquired_conns": func(s *pgxpool.Stat) float64 { return float64(s.AcquiredConns()) },
		"db_pool_idle_conns":     func(s *pgxpool.Stat) float64 { return float64(s.IdleConns()) },
		"db_pool_total_conns":    func(s *pgxpool.Stat) float64 { return float64(s.TotalConns()) },
	}
	for name, read := range gauges {
		g := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: name,
			Help: "pgx pool " + name,
		}, func() float64 { return read(pool.Stat()) })

		if err := prometheus.Register(g); err != nil {
			// a second app in the same process (e2e suites) re-registers the same names
			var already prometheus.AlreadyRegisteredError
			if !errors.As(err, &already) {
				return err
			}
		}
	}
	return nil
}
