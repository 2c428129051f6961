package readstore

import (
	"context"

	"fractional-market/internal/infra"
	sqlc "fractional-market/internal/infra/sqlc/generated"
	"fractional-market/internal/pkg/pgconv"
	"fractional-market/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserReadQueries interface {
	FindUserByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.FindUserByIDRow, error)
}

type UserReadStore struct {
	queries UserReadQueries
	db      sqlc.DBTX
}

func NewUserReadStore(queries UserReadQueries, db sqlc.DBTX) *UserReadStore {
	return &UserReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.UserView, error) {
	row, err := r.queries.FindUserByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}

	return &queries.UserView{
		ID:          row.ID,
		Email:       row.Email,
		DisplayName: pgconv.StringPtrFromPgtype(row.DisplayName),
		CreatedAt:   pgconv.TimeFromPgtype(row.CreatedAt),
	}, nil
}
