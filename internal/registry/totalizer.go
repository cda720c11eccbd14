package registry

import (
	"github.com/shopspring/decimal"

	apperrors "caja/internal/errors"
	"caja/internal/models"
)

// TotalizerRegistry indexes totalizers by code. Codes are unique;
// Add rejects duplicates.
type TotalizerRegistry struct {
	byCode map[int]*models.Totalizer
	order  []int
}

// NewTotalizerRegistry creates an empty registry.
func NewTotalizerRegistry() *TotalizerRegistry {
	return &TotalizerRegistry{byCode: make(map[int]*models.Totalizer)}
}

// Add registers a totalizer. It fails with ErrDuplicateCode if a
// totalizer with the same code is already present.
func (r *TotalizerRegistry) Add(t *models.Totalizer) error {
	if _, exists := r.byCode[t.Code]; exists {
		return apperrors.WithMessage(apperrors.ErrDuplicateCode, "A totalizer with this code already exists")
	}
	r.byCode[t.Code] = t
	r.order = append(r.order, t.Code)
	return nil
}

// FindByCode returns the totalizer with the given code, or
// ErrTotalizerNotFound.
func (r *TotalizerRegistry) FindByCode(code int) (*models.Totalizer, error) {
	t, ok := r.byCode[code]
	if !ok {
		return nil, apperrors.ErrTotalizerNotFound
	}
	return t, nil
}

// All returns the registered totalizers in insertion order.
func (r *TotalizerRegistry) All() []*models.Totalizer {
	out := make([]*models.Totalizer, 0, len(r.order))
	for _, code := range r.order {
		out = append(out, r.byCode[code])
	}
	return out
}

// Len returns the number of registered totalizers.
func (r *TotalizerRegistry) Len() int { return len(r.order) }

// ResetAll returns every totalizer to its zero state and reports whether
// the amounts afterwards sum to exactly zero.
func (r *TotalizerRegistry) ResetAll() bool {
	total := decimal.Zero
	for _, code := range r.order {
		t := r.byCode[code]
		t.Reset()
		total = total.Add(t.Amount)
	}
	return total.IsZero()
}
