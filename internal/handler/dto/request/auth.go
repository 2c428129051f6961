package request

import (
	"strings"

	"fractional-market/internal/usecase/commands"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type RegisterRequest struct {
	Email       string  `json:"email" binding:"required,email"`
	Password    string  `json:"password" binding:"required,min=8,max=72"`
	DisplayName *string `json:"display_name,omitempty" binding:"omitempty,max=100"`
}

func (r RegisterRequest) ToInput() commands.RegisterInput {
	var displayName *string
	if r.DisplayName != nil {
		if trimmed := strings.TrimSpace(*r.DisplayName); trimmed != "" {
			displayName = &trimmed
		}
	}
	return commands.RegisterInput{
		Email:       r.Email,
		Password:    r.Password,
		DisplayName: displayName,
	}
}
