package queries

import (
	"context"
	"time"

	"fractional-market/internal/infra"
	"fractional-market/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrOrderNotFound also covers orders owned by someone else, so ids cannot be probed.
var ErrOrderNotFound = errs.New("order not found")

type OrderQueries interface {
	GetByID(ctx context.Context, userID, orderID uuid.UUID) (*OrderView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, after *Cursor, limit int) ([]*OrderView, *Cursor, error)
}

type OrderReadStore interface {
	FindForUser(ctx context.Context, userID, orderID uuid.UUID) (*OrderView, error)
	FindByUserFirstPage(ctx context.Context, userID uuid.UUID, limit int32) ([]*OrderView, error)
	FindByUserKeyset(ctx context.Context, userID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*OrderView, error)
}

type orderQueriesImpl struct {
	store OrderReadStore
}

func NewOrderQueries(store OrderReadStore) OrderQueries {
	return &orderQueriesImpl{store: store}
}

func (q *orderQueriesImpl) GetByID(ctx context.Context, userID, orderID uuid.UUID) (*OrderView, error) {
	view, err := q.store.FindForUser(ctx, userID, orderID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return view, nil
}

// ListByUser pages newest first. One extra row is fetched to decide whether a next cursor exists.
func (q *orderQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID, after *Cursor, limit int) ([]*OrderView, *Cursor, error) {
	limit = ValidateLimit(limit)
	fetch := int32(limit + 1) // #nosec G115 -- bounded by MaxListLimit

	var (
		rows []*OrderView
		err  error
	)
	if after == nil || after.After == "" {
		rows, err = q.store.FindByUserFirstPage(ctx, userID, fetch)
	} else {
		createdAt, lastID, decodeErr := DecodeAfterCursor(after.After)
		if decodeErr != nil {
			return nil, nil, decodeErr
		}
		rows, err = q.store.FindByUserKeyset(ctx, userID, createdAt, lastID, fetch)
	}
	if err != nil {
		return nil, nil, err
	}

	if len(rows) <= limit {
		return rows, nil, nil
	}

	page := rows[:limit]
	last := page[len(page)-1]
	return page, &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}, nil
}
