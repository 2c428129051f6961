//go:build unit || e2e

package dbtest

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// Querier is satisfied by a pool, a connection and a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const TestPassword = "password123"

// bcrypt hash of TestPassword
const testPasswordHash = "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."

func scalar[T any](t *testing.T, db Querier, sql string, args ...any) T {
	t.Helper()

	var v T
	require.NoError(t, db.QueryRow(context.Background(), sql, args...).Scan(&v), sql)
	return v
}

// CreateTestUser is idempotent per email and returns the existing id on conflict.
func CreateTestUser(t *testing.T, db Querier, email string) uuid.UUID {
	t.Helper()

	return scalar[uuid.UUID](t, db, `
		INSERT INTO users (id, email, password_hash) VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
		RETURNING id`,
		uuid.New(), email, testPasswordHash)
}

// CreateTestLot inserts an active lot priced per fraction and returns its id.
func CreateTestLot(t *testing.T, db Querier, slug string, totalFractions int32, pricePerFraction string) uuid.UUID {
	t.Helper()

	return scalar[uuid.UUID](t, db, `
		INSERT INTO lots (id, title, slug, total_fractions, available_fractions, price_per_fraction, active)
		VALUES ($1, $2, $3, $4, $4, $5::numeric, true)
		RETURNING id`,
		uuid.New(), "Lot "+slug, slug, totalFractions, pricePerFraction)
}

func AvailableFractions(t *testing.T, db Querier, lotID uuid.UUID) int32 {
	t.Helper()
	return scalar[int32](t, db, "SELECT available_fractions FROM lots WHERE id = $1", lotID)
}

func OrderStatus(t *testing.T, db Querier, orderID uuid.UUID) string {
	t.Helper()
	return scalar[string](t, db, "SELECT status FROM orders WHERE id = $1", orderID)
}

func OrderSessionID(t *testing.T, db Querier, orderID uuid.UUID) string {
	t.Helper()
	return scalar[string](t, db, "SELECT provider_session_id FROM orders WHERE id = $1", orderID)
}

func CountPaymentEvents(t *testing.T, db Querier, orderID uuid.UUID) int {
	t.Helper()
	return scalar[int](t, db, "SELECT count(*) FROM payment_events WHERE order_id = $1", orderID)
}

func CountPendingOutbox(t *testing.T, db Querier, orderID uuid.UUID) int {
	t.Helper()
	return scalar[int](t, db, "SELECT count(*) FROM order_outbox WHERE order_id = $1 AND status = 'pending'", orderID)
}

var (
	truncateOnce sync.Once
	truncateStmt string
	truncateErr  error
)

// ResetDB truncates every application table. The table list is read once per process.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	truncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
			SELECT 'public.' || quote_ident(tablename)
			FROM pg_tables
			WHERE schemaname = 'public' AND tablename <> 'schema_migrations'`)
		if err != nil {
			truncateErr = err
			return
		}
		tables, err := pgx.CollectRows(rows, pgx.RowTo[string])
		if err != nil {
			truncateErr = err
			return
		}
		if len(tables) > 0 {
			truncateStmt = "TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE"
		}
	})
	if truncateErr != nil || truncateStmt == "" {
		return truncateErr
	}

	_, err := pool.Exec(ctx, truncateStmt)
	return err
}
