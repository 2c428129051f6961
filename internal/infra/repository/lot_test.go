//go:build unit

package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"fractional-market/internal/domain/lot"
	"fractional-market/internal/infra"
	sqlc "fractional-market/internal/infra/sqlc/generated"
	"fractional-market/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockLotQueries struct {
	mock.Mock
}

func (m *MockLotQueries) GetLotByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Lots, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(sqlc.Lots), args.Error(1)
}

func (m *MockLotQueries) ReserveLotFractions(ctx context.Context, db sqlc.DBTX, arg sqlc.ReserveLotFractionsParams) (sqlc.Lots, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(sqlc.Lots), args.Error(1)
}

func (m *MockLotQueries) ReleaseLotFractions(ctx context.Context, db sqlc.DBTX, arg sqlc.ReleaseLotFractionsParams) (sqlc.Lots, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(sqlc.Lots), args.Error(1)
}

func lotRow(id uuid.UUID, total, available int32, active bool) sqlc.Lots {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return sqlc.Lots{
		ID:                 id,
		Title:              "Vintage watch",
		Slug:               "vintage-watch",
		TotalFractions:     total,
		AvailableFractions: available,
		PricePerFraction:   pgconv.NumericFromDecimal(decimal.RequireFromString("12.50")),
		Active:             active,
		CreatedAt:          pgconv.TimeToPgtype(now),
		UpdatedAt:          pgconv.TimeToPgtype(now),
	}
}

func TestLotRepository_Reserve(t *testing.T) {
	lotID := uuid.New()

	tests := []struct {
		name        string
		count       int32
		updateRow   sqlc.Lots
		updateErr   error
		currentRow  *sqlc.Lots
		currentErr  error
		wantErr     error
		wantKind    infra.RepositoryErrorKind
		wantAvail   int32
		skipQueries bool
	}{
		{
			name:      "conditional update succeeds",
			count:     4,
			updateRow: lotRow(lotID, 10, 6, true),
			wantAvail: 6,
		},
		{
			name:       "not enough fractions left",
			count:      4,
			updateErr:  pgx.ErrNoRows,
			currentRow: ptr(lotRow(lotID, 10, 3, true)),
			wantErr:    lot.ErrInsufficientInventory,
		},
		{
			name:       "inactive lot",
			count:      1,
			updateErr:  pgx.ErrNoRows,
			currentRow: ptr(lotRow(lotID, 10, 10, false)),
			wantErr:    lot.ErrLotInactive,
		},
		{
			name:       "availability changed between update and re-read",
			count:      2,
			updateErr:  pgx.ErrNoRows,
			currentRow: ptr(lotRow(lotID, 10, 5, true)),
			wantErr:    lot.ErrInsufficientInventory,
		},
		{
			name:       "lot missing",
			count:      1,
			updateErr:  pgx.ErrNoRows,
			currentErr: pgx.ErrNoRows,
			wantKind:   infra.KindNotFound,
		},
		{
			name:      "database failure",
			count:     1,
			updateErr: assert.AnError,
			wantKind:  infra.KindDBFailure,
		},
		{
			name:        "non-positive count",
			count:       0,
			wantErr:     lot.ErrInvalidFractionCount,
			skipQueries: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockQueries := new(MockLotQueries)
			if !tt.skipQueries {
				mockQueries.On("ReserveLotFractions", mock.Anything, mock.Anything, sqlc.ReserveLotFractionsParams{
					FractionCount: tt.count,
					ID:            lotID,
				}).Return(tt.updateRow, tt.updateErr)
			}
			if tt.currentRow != nil {
				mockQueries.On("GetLotByID", mock.Anything, mock.Anything, lotID).Return(*tt.currentRow, nil)
			} else if tt.currentErr != nil {
				mockQueries.On("GetLotByID", mock.Anything, mock.Anything, lotID).Return(sqlc.Lots{}, tt.currentErr)
			}

			got, err := NewLotRepository(mockQueries, nil).Reserve(context.Background(), lotID, tt.count)

			switch {
			case tt.wantErr != nil:
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			case tt.wantKind != "":
				assert.True(t, infra.IsKind(err, tt.wantKind), "got %v", err)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.wantAvail, got.AvailableFractions())
			}
			mockQueries.AssertExpectations(t)
		})
	}
}

func TestLotRepository_Release(t *testing.T) {
	lotID := uuid.New()

	t.Run("restores availability", func(t *testing.T) {
		mockQueries := new(MockLotQueries)
		mockQueries.On("ReleaseLotFractions", mock.Anything, mock.Anything, sqlc.ReleaseLotFractionsParams{
			FractionCount: 4,
			ID:            lotID,
		}).Return(lotRow(lotID, 10, 10, true), nil)

		got, err := NewLotRepository(mockQueries, nil).Release(context.Background(), lotID, 4)

		require.NoError(t, err)
		assert.Equal(t, int32(10), got.AvailableFractions())
	})

	t.Run("release beyond total is refused", func(t *testing.T) {
		mockQueries := new(MockLotQueries)
		mockQueries.On("ReleaseLotFractions", mock.Anything, mock.Anything, mock.Anything).Return(sqlc.Lots{}, pgx.ErrNoRows)
		mockQueries.On("GetLotByID", mock.Anything, mock.Anything, lotID).Return(lotRow(lotID, 10, 8, true), nil)

		_, err := NewLotRepository(mockQueries, nil).Release(context.Background(), lotID, 4)

		assert.ErrorIs(t, err, lot.ErrOverRelease)
		mockQueries.AssertExpectations(t)
	})
}

func ptr[T any](v T) *T {
	return &v
}
