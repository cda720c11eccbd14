package models

import (
	"github.com/shopspring/decimal"

	apperrors "caja/internal/errors"
)

// Currency tracks the cash position of one currency at the register.
// The derived balance is StartingBalance + Credits - Debits and must
// never go below zero; Credit and Debit reject any amount that would.
type Currency struct {
	Code            int             `json:"code"`
	Name            string          `json:"name"`
	StartingBalance decimal.Decimal `json:"starting_balance"`
	Credits         decimal.Decimal `json:"credits"`
	Debits          decimal.Decimal `json:"debits"`
	CreditCount     int             `json:"credit_count"`
	DebitCount      int             `json:"debit_count"`
}

// NewCurrency creates a currency with a zero starting balance.
func NewCurrency(code int, name string) *Currency {
	return NewCurrencyWithBalance(code, name, decimal.Zero)
}

// NewCurrencyWithBalance creates a currency opened with the given starting balance.
func NewCurrencyWithBalance(code int, name string, starting decimal.Decimal) *Currency {
	return &Currency{
		Code:            code,
		Name:            name,
		StartingBalance: starting,
		Credits:         decimal.Zero,
		Debits:          decimal.Zero,
	}
}

// Balance returns the current balance: starting balance plus cumulative
// credits minus cumulative debits.
func (c *Currency) Balance() decimal.Decimal {
	return c.StartingBalance.Add(c.Credits).Sub(c.Debits)
}

// Credit adds cash to the currency and returns the resulting balance.
// A negative amount is the reversal path: it backs out a prior credit
// and decrements CreditCount, which can therefore go negative.
func (c *Currency) Credit(amount decimal.Decimal) (decimal.Decimal, error) {
	if c.Balance().Add(amount).IsNegative() {
		return c.Balance(), apperrors.ErrNegativeBalance
	}
	c.Credits = c.Credits.Add(amount)
	if amount.Sign() > 0 {
		c.CreditCount++
	} else {
		c.CreditCount--
	}
	return c.Balance(), nil
}

// Debit removes cash from the currency and returns the resulting balance.
// A negative amount backs out a prior debit and decrements DebitCount.
func (c *Currency) Debit(amount decimal.Decimal) (decimal.Decimal, error) {
	if c.Balance().Sub(amount).IsNegative() {
		return c.Balance(), apperrors.ErrNegativeBalance
	}
	c.Debits = c.Debits.Add(amount)
	if amount.Sign() > 0 {
		c.DebitCount++
	} else {
		c.DebitCount--
	}
	return c.Balance(), nil
}

// Reset returns the currency to its zero state, preserving its identity.
func (c *Currency) Reset() {
	c.StartingBalance = decimal.Zero
	c.Credits = decimal.Zero
	c.Debits = decimal.Zero
	c.CreditCount = 0
	c.DebitCount = 0
}
