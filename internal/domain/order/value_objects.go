package order

import (
	"errors"
	"strings"
)

var ErrNegativeAmount = errors.New("amount cannot be negative")

type Money struct {
	cents    int64
	currency string
}

func NewMoney(cents int64, currency string) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativeAmount
	}
	return Money{cents: cents, currency: strings.ToLower(currency)}, nil
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Currency() string {
	return m.currency
}

// Matches treats an empty currency on either side as "not reported".
func (m Money) Matches(cents int64, currency string) bool {
	if m.cents != cents {
		return false
	}
	currency = strings.ToLower(currency)
	return currency == "" || m.currency == "" || currency == m.currency
}
