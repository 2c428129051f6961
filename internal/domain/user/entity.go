package user

import (
	"time"

	"github.com/google/uuid"
)

// User is the identity collaborator's account; orders only ever see its ID.
type User struct {
	id           uuid.UUID
	email        Email
	passwordHash string
	displayName  *string
	createdAt    time.Time
}

func NewUser(email Email, passwordHash string, displayName *string, now time.Time) *User {
	return &User{
		id:           uuid.New(),
		email:        email,
		passwordHash: passwordHash,
		displayName:  displayName,
		createdAt:    now,
	}
}

func Reconstruct(id uuid.UUID, email Email, passwordHash string, displayName *string, createdAt time.Time) *User {
	return &User{
		id:           id,
		email:        email,
		passwordHash: passwordHash,
		displayName:  displayName,
		createdAt:    createdAt,
	}
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Email() Email         { return u.email }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) DisplayName() *string { return u.displayName }
func (u *User) CreatedAt() time.Time { return u.createdAt }
