//go:build unit

package jwt_test

import (
	"testing"
	"time"

	"fractional-market/internal/pkg/jwt"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	svc := jwt.NewService("secret", time.Hour)
	userID := uuid.New()

	token, expiresAt, err := svc.GenerateToken(userID)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, jwt.DefaultIssuer, claims.Issuer)
}

func TestValidateRejects(t *testing.T) {
	userID := uuid.New()
	past := func() time.Time { return time.Now().Add(-2 * time.Hour) }

	expired, _, err := jwt.NewService("secret", time.Hour, jwt.WithNow(past)).GenerateToken(userID)
	require.NoError(t, err)
	otherKey, _, err := jwt.NewService("other", time.Hour).GenerateToken(userID)
	require.NoError(t, err)
	otherIssuer, _, err := jwt.NewService("secret", time.Hour, jwt.WithIssuer("someone-else")).GenerateToken(userID)
	require.NoError(t, err)
	noneAlg, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, jwt.Claims{UserID: userID}).
		SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	svc := jwt.NewService("secret", time.Hour)
	cases := []struct {
		name  string
		token string
		want  error
	}{
		{"expired", expired, jwt.ErrExpiredToken},
		{"wrong key", otherKey, jwt.ErrInvalidToken},
		{"wrong issuer", otherIssuer, jwt.ErrInvalidToken},
		{"alg none", noneAlg, jwt.ErrInvalidToken},
		{"garbage", "not.a.token", jwt.ErrInvalidToken},
		{"empty", "", jwt.ErrInvalidToken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.ValidateToken(tc.token)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}
