package models

import (
	"time"

	"github.com/shopspring/decimal"

	apperrors "caja/internal/errors"
)

// MovementStatus is the lifecycle state of an executed movement.
type MovementStatus string

const (
	MovementStatusActive   MovementStatus = "active"
	MovementStatusReversed MovementStatus = "reversed"
)

// LineItem is one sold article inside a product-sale movement. A zero
// UnitPrice means "not priced yet": the engine resolves it through the
// price service on execution and freezes the result here.
type LineItem struct {
	ProductCode int             `json:"product_code"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// Subtotal returns price times quantity for this line.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(li.Quantity)
}

// Movement records one executed transaction instance. The caller builds
// it with code, subcode, currencies, amounts and free-text fields; the
// engine completes OperationNumber, Date and Status on successful
// execution and freezes any resolved rate or prices onto it so that a
// later reversal uses the same values.
type Movement struct {
	OperationNumber   int             `json:"operation_number"`
	Code              int             `json:"code"`
	Subcode           int             `json:"subcode"`
	PrimaryCurrency   int             `json:"primary_currency"`
	PrimaryAmount     decimal.Decimal `json:"primary_amount"`
	SecondaryCurrency int             `json:"secondary_currency"`
	SecondaryAmount   decimal.Decimal `json:"secondary_amount"`
	Rate              decimal.Decimal `json:"rate"` // zero = unresolved or not applicable
	Date              time.Time       `json:"date"`
	Status            MovementStatus  `json:"status"`
	Reference         string          `json:"reference"`
	Description       string          `json:"description"`
	Items             []LineItem      `json:"items,omitempty"`
}

// Reverse flips the movement to reversed. It fails if the movement is
// not currently active, so a movement can only be reversed once.
func (m *Movement) Reverse() error {
	if m.Status != MovementStatusActive {
		return apperrors.ErrAlreadyReversed
	}
	m.Status = MovementStatusReversed
	return nil
}

// TotalBeforeDiscount sums price times quantity across all line items.
func (m *Movement) TotalBeforeDiscount() decimal.Decimal {
	total := decimal.Zero
	for _, li := range m.Items {
		total = total.Add(li.Subtotal())
	}
	return total
}
