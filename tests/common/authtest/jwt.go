//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"fractional-market/internal/pkg/config"
	"fractional-market/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

// GenerateToken signs with the same secret and lifetime the app under test uses.
func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	duration, err := time.ParseDuration(h.cfg.Duration)
	require.NoError(t, err)
	service := jwt.NewService(h.cfg.Secret, duration)
	token, _, err := service.GenerateToken(userID)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	issuedLongAgo := func() time.Time { return time.Now().Add(-24 * time.Hour) }
	service := jwt.NewService(h.cfg.Secret, time.Hour, jwt.WithNow(issuedLongAgo))
	token, _, err := service.GenerateToken(userID)
	require.NoError(t, err)
	return token
}
