// Package registry holds the in-memory keyed collections owned by the
// engine for the lifetime of a teller session: the currency registry,
// the totalizer registry and the append-only movement log.
package registry

import (
	"github.com/shopspring/decimal"

	apperrors "caja/internal/errors"
	"caja/internal/models"
)

// CurrencyRegistry indexes currencies by code. Codes are unique;
// Add rejects duplicates.
type CurrencyRegistry struct {
	byCode map[int]*models.Currency
	order  []int
}

// NewCurrencyRegistry creates an empty registry.
func NewCurrencyRegistry() *CurrencyRegistry {
	return &CurrencyRegistry{byCode: make(map[int]*models.Currency)}
}

// Add registers a currency. It fails with ErrDuplicateCode if a
// currency with the same code is already present.
func (r *CurrencyRegistry) Add(c *models.Currency) error {
	if _, exists := r.byCode[c.Code]; exists {
		return apperrors.WithMessage(apperrors.ErrDuplicateCode, "A currency with this code already exists")
	}
	r.byCode[c.Code] = c
	r.order = append(r.order, c.Code)
	return nil
}

// FindByCode returns the currency with the given code, or
// ErrCurrencyNotFound.
func (r *CurrencyRegistry) FindByCode(code int) (*models.Currency, error) {
	c, ok := r.byCode[code]
	if !ok {
		return nil, apperrors.ErrCurrencyNotFound
	}
	return c, nil
}

// All returns the registered currencies in insertion order.
func (r *CurrencyRegistry) All() []*models.Currency {
	out := make([]*models.Currency, 0, len(r.order))
	for _, code := range r.order {
		out = append(out, r.byCode[code])
	}
	return out
}

// Len returns the number of registered currencies.
func (r *CurrencyRegistry) Len() int { return len(r.order) }

// ResetAll returns every currency to its zero state and reports whether
// the balances afterwards sum to exactly zero. This is a cross-currency
// sanity check for the start-of-day reset, not a per-currency guarantee.
func (r *CurrencyRegistry) ResetAll() bool {
	total := decimal.Zero
	for _, code := range r.order {
		c := r.byCode[code]
		c.Reset()
		total = total.Add(c.Balance())
	}
	return total.IsZero()
}
