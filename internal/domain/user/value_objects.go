package user

import (
	"errors"
	"net/mail"
	"strings"
)

var (
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrPasswordTooWeak  = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong  = errors.New("password must be at most 72 bytes")
	ErrPasswordRequired = errors.New("password is required")
)

const (
	maxEmailLength    = 254
	minPasswordLength = 8
	// bcrypt ignores everything past 72 bytes
	maxPasswordBytes = 72
)

// Email is lower-cased and trimmed; two spellings of one address are one account.
type Email struct {
	value string
}

func NewEmail(s string) (Email, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || len(s) > maxEmailLength {
		return Email{}, ErrInvalidEmail
	}

	addr, err := mail.ParseAddress(s)
	// reject display-name forms such as "Bob <bob@example.com>"
	if err != nil || addr.Address != s {
		return Email{}, ErrInvalidEmail
	}
	at := strings.LastIndexByte(s, '@')
	if !strings.Contains(s[at+1:], ".") {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: s}, nil
}

func (e Email) Value() string {
	return e.value
}

func (e Email) String() string {
	return e.value
}

type Password struct {
	value string
}

// NewPassword applies the registration policy.
func NewPassword(s string) (Password, error) {
	switch {
	case len(s) < minPasswordLength:
		return Password{}, ErrPasswordTooWeak
	case len(s) > maxPasswordBytes:
		return Password{}, ErrPasswordTooLong
	}
	return Password{value: s}, nil
}

// PasswordAttempt only requires a value. Login compares against the stored
// hash, so the registration policy does not apply.
func PasswordAttempt(s string) (Password, error) {
	if s == "" {
		return Password{}, ErrPasswordRequired
	}
	return Password{value: s}, nil
}

func (p Password) Value() string {
	return p.value
}

// String keeps the secret out of logs and fmt verbs.
func (p Password) String() string {
	return "[REDACTED]"
}
