//go:build unit || e2e

package builder

import (
	"time"

	"fractional-market/internal/domain/user"
	sqlc "fractional-market/internal/infra/sqlc/generated"
	"fractional-market/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type UserBuilder struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	DisplayName  *string
	CreatedAt    time.Time
}

func NewUserBuilder() *UserBuilder {
	name := "Test Buyer"
	return &UserBuilder{
		ID:           uuid.New(),
		Email:        "test@example.com",
		PasswordHash: "hashed_password",
		DisplayName:  &name,
		CreatedAt:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

func (u *UserBuilder) BuildDomain() (*user.User, error) {
	email, err := user.NewEmail(u.Email)
	if err != nil {
		return nil, err
	}
	return user.Reconstruct(u.ID, email, u.PasswordHash, u.DisplayName, u.CreatedAt), nil
}

func (u *UserBuilder) BuildInfra() sqlc.Users {
	var displayName pgtype.Text
	if u.DisplayName != nil {
		displayName = pgtype.Text{String: *u.DisplayName, Valid: true}
	}
	return sqlc.Users{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		DisplayName:  displayName,
		CreatedAt:    pgtype.Timestamptz{Time: u.CreatedAt, Valid: true},
	}
}

func (u *UserBuilder) BuildReadModel() *queries.UserView {
	return &queries.UserView{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}

func (u *UserBuilder) WithEmail(email string) *UserBuilder {
	u.Email = email
	return u
}

func (u *UserBuilder) WithPasswordHash(hash string) *UserBuilder {
	u.PasswordHash = hash
	return u
}

func (u *UserBuilder) WithoutDisplayName() *UserBuilder {
	u.DisplayName = nil
	return u
}
