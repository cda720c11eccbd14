package models

import (
	"github.com/shopspring/decimal"

	apperrors "caja/internal/errors"
)

// Totalizer is a named running aggregate updated as a side effect of
// transactions, independent of any single currency. Its amount must
// never go below zero.
type Totalizer struct {
	Code          int             `json:"code"`
	Name          string          `json:"name"`
	Amount        decimal.Decimal `json:"amount"`
	IncreaseCount int             `json:"increase_count"`
	DecreaseCount int             `json:"decrease_count"`
}

// NewTotalizer creates a totalizer starting at zero.
func NewTotalizer(code int, name string) *Totalizer {
	return &Totalizer{Code: code, Name: name, Amount: decimal.Zero}
}

// Adjust moves the totalizer by the signed amount and returns the
// resulting value. Positive amounts bump IncreaseCount, negative (and
// zero) amounts bump DecreaseCount; reversals therefore register as
// decreases.
func (t *Totalizer) Adjust(amount decimal.Decimal) (decimal.Decimal, error) {
	if t.Amount.Add(amount).IsNegative() {
		return t.Amount, apperrors.ErrNegativeBalance
	}
	if amount.Sign() > 0 {
		t.IncreaseCount++
	} else {
		t.DecreaseCount++
	}
	t.Amount = t.Amount.Add(amount)
	return t.Amount, nil
}

// Reset returns the totalizer to its zero state, preserving its identity.
func (t *Totalizer) Reset() {
	t.Amount = decimal.Zero
	t.IncreaseCount = 0
	t.DecreaseCount = 0
}
