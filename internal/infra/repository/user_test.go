//go:build unit

package repository

import (
	"context"
	"testing"
	"time"

	"fractional-market/internal/domain/user"
	"fractional-market/internal/infra"
	sqlc "fractional-market/internal/infra/sqlc/generated"
	"fractional-market/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserQueries struct {
	mock.Mock
}

func (m *MockUserQueries) CreateUser(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateUserParams) error {
	args := m.Called(ctx, db, arg)
	return args.Error(0)
}

func (m *MockUserQueries) FindUserByEmail(ctx context.Context, db sqlc.DBTX, email string) (sqlc.Users, error) {
	args := m.Called(ctx, db, email)
	return args.Get(0).(sqlc.Users), args.Error(1)
}

func TestUserRepository_Create(t *testing.T) {
	email, err := user.NewEmail("buyer@example.com")
	require.NoError(t, err)
	u := user.NewUser(email, "hash", nil, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		name      string
		mockError error
		wantKind  infra.RepositoryErrorKind
	}{
		{
			name: "success",
		},
		{
			name:      "duplicate email",
			mockError: &pgconn.PgError{Code: "23505"},
			wantKind:  infra.KindDuplicateKey,
		},
		{
			name:      "database error",
			mockError: assert.AnError,
			wantKind:  infra.KindDBFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockQueries := new(MockUserQueries)
			mockQueries.On("CreateUser", mock.Anything, mock.Anything, mock.MatchedBy(func(p sqlc.CreateUserParams) bool {
				return p.ID == u.ID() && p.Email == "buyer@example.com" && !p.DisplayName.Valid
			})).Return(tt.mockError)

			repo := NewUserRepository(mockQueries, nil)
			err := repo.Create(context.Background(), u)

			if tt.wantKind != "" {
				assert.Error(t, err)
				assert.True(t, infra.IsKind(err, tt.wantKind))
			} else {
				assert.NoError(t, err)
			}
			mockQueries.AssertExpectations(t)
		})
	}
}

func TestUserRepository_FindByEmail(t *testing.T) {
	email, err := user.NewEmail("buyer@example.com")
	require.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		id := uuid.New()
		mockQueries := new(MockUserQueries)
		mockQueries.On("FindUserByEmail", mock.Anything, mock.Anything, "buyer@example.com").Return(sqlc.Users{
			ID:           id,
			Email:        "buyer@example.com",
			PasswordHash: "hash",
			DisplayName:  pgconv.StringToPgtype("Buyer"),
			CreatedAt:    pgconv.TimeToPgtype(time.Now()),
		}, nil)

		got, err := NewUserRepository(mockQueries, nil).FindByEmail(context.Background(), email)

		require.NoError(t, err)
		assert.Equal(t, id, got.ID())
		assert.Equal(t, "hash", got.PasswordHash())
		require.NotNil(t, got.DisplayName())
		assert.Equal(t, "Buyer", *got.DisplayName())
	})

	t.Run("not found", func(t *testing.T) {
		mockQueries := new(MockUserQueries)
		mockQueries.On("FindUserByEmail", mock.Anything, mock.Anything, "buyer@example.com").Return(sqlc.Users{}, pgx.ErrNoRows)

		_, err := NewUserRepository(mockQueries, nil).FindByEmail(context.Background(), email)

		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}
