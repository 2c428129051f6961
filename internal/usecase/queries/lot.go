package queries

import (
	"context"

	"fractional-market/internal/infra"
	"fractional-market/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrLotNotFound = errs.New("lot not found")

type LotQueries interface {
	ListActive(ctx context.Context) ([]*LotView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*LotView, error)
}

type LotReadStore interface {
	FindActive(ctx context.Context) ([]*LotView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*LotView, error)
}

type lotQueriesImpl struct {
	store        LotReadStore
	minFractions int32
}

func NewLotQueries(store LotReadStore, minFractions int32) LotQueries {
	return &lotQueriesImpl{store: store, minFractions: max(minFractions, 1)}
}

func (q *lotQueriesImpl) ListActive(ctx context.Context) ([]*LotView, error) {
	lots, err := q.store.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	for _, l := range lots {
		l.MinFractionsToBuy = q.minFractions
	}
	return lots, nil
}

// GetByID hides inactive lots the same way as missing ones.
func (q *lotQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*LotView, error) {
	l, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrLotNotFound
		}
		return nil, err
	}
	if !l.Active {
		return nil, ErrLotNotFound
	}
	l.MinFractionsToBuy = q.minFractions
	return l, nil
}
