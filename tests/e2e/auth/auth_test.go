//go:build e2e

package auth_test

import (
	"net/http"
	"testing"

	"fractional-market/internal/handler/dto/request"
	resdto "fractional-market/internal/handler/dto/response"
	"fractional-market/internal/usecase/queries"
	"fractional-market/tests/common/authtest"
	"fractional-market/tests/common/dbtest"
	"fractional-market/tests/common/httptest"
	"fractional-market/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	registerURL = "/api/auth/register"
	loginURL    = "/api/auth/login"
	logoutURL   = "/api/auth/logout"
	meURL       = "/api/auth/me"
)

type authSuite struct {
	e2e.SharedSuite
	jwtHelper *authtest.JWTHelper
}

func TestAuthSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(authSuite))
}

func (s *authSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwtHelper = authtest.NewJWTHelper(s.Config.JWT)
}

func (s *authSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
	dbtest.CreateTestUser(s.T(), s.DB, "buyer@example.com")
}

func (s *authSuite) TestRegister() {
	s.Run("new account can log in", func() {
		t := s.T()
		name := "New Buyer"
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, registerURL,
			request.RegisterRequest{Email: "new@example.com", Password: "longenough1", DisplayName: &name}, "")
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var res resdto.RegisterResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &res)
		require.NotEqual(t, uuid.Nil, res.UserID)

		token := authtest.LoginUser(t, s.Router, "new@example.com", "longenough1")
		me := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token)
		var view queries.UserView
		httptest.AssertSuccessResponse(t, me, http.StatusOK, &view)
		require.Equal(t, res.UserID, view.ID)
		require.NotNil(t, view.DisplayName)
		require.Equal(t, name, *view.DisplayName)
	})

	s.Run("duplicate email is a conflict", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, registerURL,
			request.RegisterRequest{Email: "buyer@example.com", Password: "longenough1"}, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "Email already registered")
	})
}

func (s *authSuite) TestLogin() {
	tests := []struct {
		name           string
		email          string
		password       string
		expectedStatus int
	}{
		{"valid credentials", "buyer@example.com", dbtest.TestPassword, http.StatusOK},
		{"unknown user", "nobody@example.com", dbtest.TestPassword, http.StatusUnauthorized},
		{"wrong password", "buyer@example.com", "wrongpassword", http.StatusUnauthorized},
		{"empty email", "", dbtest.TestPassword, http.StatusBadRequest},
		{"empty password", "buyer@example.com", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()
			w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
				request.LoginRequest{Email: tt.email, Password: tt.password}, "")
			require.Equal(t, tt.expectedStatus, w.Code, w.Body.String())

			if tt.expectedStatus == http.StatusOK {
				var res resdto.LoginResponse
				httptest.AssertSuccessResponse(t, w, http.StatusOK, &res)
				require.NotEmpty(t, res.AccessToken)
				require.Equal(t, "Bearer", res.TokenType)
				require.NotNil(t, httptest.ExtractCookie(w, "access_token"))
			}
		})
	}
}

func (s *authSuite) TestMe() {
	tests := []struct {
		name           string
		token          func() string
		expectedStatus int
	}{
		{
			name:           "valid token",
			token:          func() string { return authtest.LoginUser(s.T(), s.Router, "buyer@example.com", dbtest.TestPassword) },
			expectedStatus: http.StatusOK,
		},
		{
			name:           "expired token",
			token:          func() string { return s.jwtHelper.CreateExpiredToken(s.T(), uuid.New()) },
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "garbage token",
			token:          func() string { return "invalid-token" },
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "no token",
			token:          func() string { return "" },
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "valid token for a deleted user",
			token:          func() string { return s.jwtHelper.GenerateToken(s.T(), uuid.New()) },
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, meURL, nil, tt.token())
			require.Equal(s.T(), tt.expectedStatus, w.Code, w.Body.String())
		})
	}
}

func (s *authSuite) TestLogout() {
	s.Run("clears the cookie", func() {
		t := s.T()
		login := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
			request.LoginRequest{Email: "buyer@example.com", Password: dbtest.TestPassword}, "")
		require.Equal(t, http.StatusOK, login.Code)

		w := httptest.PerformRequestWithCookies(t, s.Router, http.MethodPost, logoutURL, nil, httptest.ExtractCookies(login), "")
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		cleared := httptest.ExtractCookie(w, "access_token")
		require.NotNil(t, cleared)
		require.Empty(t, cleared.Value)
	})

	s.Run("requires authentication", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, logoutURL, nil, "")
		require.Equal(s.T(), http.StatusUnauthorized, w.Code)
	})
}
