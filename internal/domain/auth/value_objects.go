package auth

import (
	"fractional-market/internal/domain/user"
)

// Credentials is an email and password pair that passed format checks.
type Credentials struct {
	email    user.Email
	password user.Password
}

// NewSignupCredentials enforces the password policy for new accounts.
func NewSignupCredentials(emailStr, passwordStr string) (Credentials, error) {
	return build(emailStr, passwordStr, user.NewPassword)
}

// NewLoginCredentials only checks that a password was sent.
func NewLoginCredentials(emailStr, passwordStr string) (Credentials, error) {
	return build(emailStr, passwordStr, user.PasswordAttempt)
}

func build(emailStr, passwordStr string, parse func(string) (user.Password, error)) (Credentials, error) {
	email, err := user.NewEmail(emailStr)
	if err != nil {
		return Credentials{}, err
	}
	pw, err := parse(passwordStr)
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{email: email, password: pw}, nil
}

func (c Credentials) Email() user.Email {
	return c.email
}

func (c Credentials) Password() user.Password {
	return c.password
}
