//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fractional-market/internal/domain/user"
	"fractional-market/internal/infra"
	"fractional-market/internal/pkg/errs"
	"fractional-market/internal/pkg/jwt"
	"fractional-market/internal/pkg/password"
	"fractional-market/internal/usecase/commands"
	"fractional-market/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

type AuthCommandsTestSuite struct {
	suite.Suite
	m    *txMocks
	jwt  *jwt.Service
	cmds commands.AuthCommands
}

func TestAuthCommandsTestSuite(t *testing.T) {
	suite.Run(t, new(AuthCommandsTestSuite))
}

func (s *AuthCommandsTestSuite) SetupSuite() {
	password.Cost = bcrypt.MinCost
}

func (s *AuthCommandsTestSuite) TearDownSuite() {
	password.Cost = bcrypt.DefaultCost
}

func (s *AuthCommandsTestSuite) SetupTest() {
	s.m = newTxMocks(gomock.NewController(s.T()))
	s.jwt = jwt.NewService("test-secret", time.Hour)
	s.cmds = commands.NewAuthCommands(s.m.uow, s.jwt, s.m.clock)
}

func (s *AuthCommandsTestSuite) SetupSubTest() {
	s.SetupTest()
}

func (s *AuthCommandsTestSuite) TestRegister() {
	s.Run("stores a hashed password", func() {
		name := "Buyer"
		s.m.expectWithin()
		s.m.users.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u *user.User) error {
			s.Equal("buyer@example.com", u.Email().Value())
			s.NotEqual("password123", u.PasswordHash())
			s.NoError(password.ComparePassword(u.PasswordHash(), "password123"))
			s.Equal(&name, u.DisplayName())
			s.Equal(fixedNow, u.CreatedAt())
			return nil
		})

		id, err := s.cmds.Register(context.Background(), commands.RegisterInput{
			Email: "Buyer@Example.com", Password: "password123", DisplayName: &name,
		})
		s.Require().NoError(err)
		s.NotEqual(uuid.Nil, id)
	})

	s.Run("duplicate email", func() {
		s.m.expectWithin()
		s.m.users.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(infra.WrapRepoErr("create user", nil, infra.KindDuplicateKey))

		_, err := s.cmds.Register(context.Background(), commands.RegisterInput{Email: "a@example.com", Password: "password123"})
		s.Require().ErrorIs(err, commands.ErrEmailTaken)
	})

	s.Run("invalid input never reaches storage", func() {
		_, err := s.cmds.Register(context.Background(), commands.RegisterInput{Email: "nope", Password: "password123"})
		s.Require().ErrorIs(err, user.ErrInvalidEmail)

		_, err = s.cmds.Register(context.Background(), commands.RegisterInput{Email: "a@example.com", Password: "short"})
		s.Require().ErrorIs(err, user.ErrPasswordTooWeak)
		s.Zero(s.m.withins)
	})

	s.Run("storage failure", func() {
		s.m.expectWithin()
		s.m.users.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))

		_, err := s.cmds.Register(context.Background(), commands.RegisterInput{Email: "a@example.com", Password: "password123"})
		s.Require().True(errs.Is(err, commands.ErrDatabaseOperationFailed), "%v", err)
	})
}

func (s *AuthCommandsTestSuite) TestLogin() {
	hash, err := password.HashPassword("password123")
	s.Require().NoError(err)

	s.Run("issues a token for valid credentials", func() {
		u, _ := builder.NewUserBuilder().WithPasswordHash(hash).BuildDomain()
		s.m.expectWithin()
		s.m.users.EXPECT().FindByEmail(gomock.Any(), u.Email()).Return(u, nil)

		res, err := s.cmds.Login(context.Background(), "test@example.com", "password123")
		s.Require().NoError(err)
		s.Equal(u.ID(), res.UserID)
		s.True(res.ExpiresAt.After(time.Now()))

		claims, err := s.jwt.ValidateToken(res.AccessToken)
		s.Require().NoError(err)
		s.Equal(u.ID(), claims.UserID)
	})

	s.Run("wrong password", func() {
		u, _ := builder.NewUserBuilder().WithPasswordHash(hash).BuildDomain()
		s.m.expectWithin()
		s.m.users.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(u, nil)

		_, err := s.cmds.Login(context.Background(), "test@example.com", "wrongpassword")
		s.Require().ErrorIs(err, commands.ErrInvalidCredentials)
	})

	s.Run("unknown email looks like a wrong password", func() {
		s.m.expectWithin()
		s.m.users.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(nil, notFound())

		_, err := s.cmds.Login(context.Background(), "ghost@example.com", "password123")
		s.Require().ErrorIs(err, commands.ErrInvalidCredentials)
	})

	s.Run("short legacy password is still compared", func() {
		legacy, err := password.HashPassword("short")
		s.Require().NoError(err)
		u, _ := builder.NewUserBuilder().WithPasswordHash(legacy).BuildDomain()
		s.m.expectWithin()
		s.m.users.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(u, nil)

		_, err = s.cmds.Login(context.Background(), "test@example.com", "short")
		s.Require().NoError(err)
	})

	s.Run("malformed input looks like a wrong password", func() {
		_, err := s.cmds.Login(context.Background(), "not-an-email", "password123")
		s.Require().ErrorIs(err, commands.ErrInvalidCredentials)
		s.Zero(s.m.withins)
	})
}
