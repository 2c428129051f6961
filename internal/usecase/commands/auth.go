package commands

import (
	"context"
	"log/slog"
	"time"

	"fractional-market/internal/domain/auth"
	"fractional-market/internal/domain/user"
	"fractional-market/internal/infra"
	"fractional-market/internal/pkg/clock"
	"fractional-market/internal/pkg/errs"
	"fractional-market/internal/pkg/jwt"
	"fractional-market/internal/pkg/password"
	"fractional-market/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials   = errs.New("invalid credentials")
	ErrEmailTaken           = errs.New("email already registered")
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
)

type RegisterInput struct {
	Email       string
	Password    string
	DisplayName *string
}

type LoginResult struct {
	UserID      uuid.UUID
	AccessToken string
	ExpiresAt   time.Time
}

type AuthCommands interface {
	Register(ctx context.Context, in RegisterInput) (uuid.UUID, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

type authCommandsImpl struct {
	uow        shared.UnitOfWork
	jwtService *jwt.Service
	clock      clock.Clock
}

func NewAuthCommands(uow shared.UnitOfWork, jwtService *jwt.Service, clock clock.Clock) AuthCommands {
	return &authCommandsImpl{
		uow:        uow,
		jwtService: jwtService,
		clock:      clock,
	}
}

func (a *authCommandsImpl) Register(ctx context.Context, in RegisterInput) (uuid.UUID, error) {
	credentials, err := auth.NewSignupCredentials(in.Email, in.Password)
	if err != nil {
		return uuid.Nil, err
	}

	hash, err := password.HashPassword(credentials.Password().Value())
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	u := user.NewUser(credentials.Email(), hash, in.DisplayName, a.clock.Now())
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().Create(ctx, u)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return uuid.Nil, ErrEmailTaken
		}
		return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	slog.Info("user registered", "user_id", u.ID())
	return u.ID(), nil
}

func (a *authCommandsImpl) Login(ctx context.Context, email, pw string) (*LoginResult, error) {
	credentials, err := auth.NewLoginCredentials(email, pw)
	if err != nil {
		// same answer as a wrong password to prevent user enumeration
		return nil, ErrInvalidCredentials
	}

	var found *user.User
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		u, err := tx.Users().FindByEmail(ctx, credentials.Email())
		if err != nil {
			return err
		}
		found = u
		return nil
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := password.ComparePassword(found.PasswordHash(), credentials.Password().Value()); err != nil {
		return nil, ErrInvalidCredentials
	}

	if password.NeedsRehash(found.PasswordHash()) {
		slog.Debug("password hash uses an outdated cost", "user_id", found.ID())
	}

	token, expiresAt, err := a.jwtService.GenerateToken(found.ID())
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	return &LoginResult{
		UserID:      found.ID(),
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}
