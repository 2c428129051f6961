package usecase

import (
	"fractional-market/internal/pkg/errs"
	"fractional-market/internal/pkg/jwt"

	"github.com/google/uuid"
)

// TokenValidator resolves an access token to the buyer id every order query is scoped by.
type TokenValidator interface {
	ValidateToken(tokenString string) (uuid.UUID, error)
}

type jwtTokenValidator struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &jwtTokenValidator{jwtService: jwtService}
}

func (v *jwtTokenValidator) ValidateToken(tokenString string) (uuid.UUID, error) {
	claims, err := v.jwtService.ValidateToken(tokenString)
	if err != nil {
		return uuid.Nil, errs.Wrap(err, "validate access token")
	}
	return claims.UserID, nil
}
