package shared

import (
	"context"
	"time"

	"fractional-market/internal/domain/lot"
	"fractional-market/internal/domain/order"
	"fractional-market/internal/domain/payment"
	"fractional-market/internal/domain/user"
	sqlc "fractional-market/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error
}

// Tx exposes repositories bound to one open transaction.
type Tx interface {
	Lots() LotRepository
	Orders() OrderRepository
	PaymentEvents() PaymentEventRepository
	Outbox() OutboxRepository
	Users() UserRepository
	DB() sqlc.DBTX
}

// LotRepository is the lot ledger. Reserve and Release are single conditional
// updates, so concurrent callers on one lot never pass each other.
type LotRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*lot.Lot, error)
	Reserve(ctx context.Context, lotID uuid.UUID, count int32) (*lot.Lot, error)
	Release(ctx context.Context, lotID uuid.UUID, count int32) (*lot.Lot, error)
}

type OrderRepository interface {
	Create(ctx context.Context, o *order.Order) error
	AttachSession(ctx context.Context, o *order.Order) error
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*order.Order, error)
	FindBySessionForUpdate(ctx context.Context, provider payment.Provider, sessionID string) (*order.Order, error)
	// Transition persists o's current status only if the row is still in from
	Transition(ctx context.Context, o *order.Order, from order.Status) error
	ListExpiredAwaiting(ctx context.Context, createdBefore time.Time, limit int32, exclude []uuid.UUID) ([]*order.Order, error)
}

type PaymentEventRepository interface {
	Exists(ctx context.Context, provider payment.Provider, eventID string) (bool, error)
	Insert(ctx context.Context, rec *payment.Record) error
}

type OutboxRepository interface {
	Enqueue(ctx context.Context, orderID uuid.UUID, topic string, payload []byte) error
	ClaimPending(ctx context.Context, limit int32) ([]OutboxMessage, error)
	MarkSent(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, reason string) error
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	FindByEmail(ctx context.Context, email user.Email) (*user.User, error)
}
