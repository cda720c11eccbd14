// Package catalog holds the configuration-derived definitions of every
// transaction type the teller can execute, plus the totalizers the
// system uses. The catalog is loaded once and never mutated; the engine
// references its definitions during execution and reversal.
package catalog

import (
	apperrors "caja/internal/errors"
)

// TransactionKind enumerates the four recognized transaction kinds.
// The set is closed and drives the engine's dispatch.
type TransactionKind int

const (
	KindCurrencyBuy TransactionKind = iota + 1
	KindCurrencySell
	KindTreasuryTransfer
	KindProductSale
)

var kindNames = map[TransactionKind]string{
	KindCurrencyBuy:      "currency-buy",
	KindCurrencySell:     "currency-sell",
	KindTreasuryTransfer: "treasury-transfer",
	KindProductSale:      "product-sale",
}

// String returns the configuration name of the kind.
func (k TransactionKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// KindFromName maps a configuration name to its TransactionKind.
func KindFromName(name string) (TransactionKind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// Treasury-transfer subcodes: inbound receives cash from the reserve,
// outbound sends cash back to it.
const (
	SubcodeTreasuryInbound  = 1
	SubcodeTreasuryOutbound = 2
)

// WholesaleSubcode marks a product sale as wholesale, which triggers
// the automatic tiered discount.
const WholesaleSubcode = 10

// EffectSign says whether a totalizer effect adds or subtracts.
type EffectSign string

const (
	SignPlus  EffectSign = "+"
	SignMinus EffectSign = "-"
)

// Leg selects which of a movement's two amounts an effect applies to.
type Leg int

const (
	LegPrimary   Leg = 1
	LegSecondary Leg = 2
)

// TotalizerEffect is one side effect a transaction type applies to a
// totalizer: adjust the target totalizer by the chosen leg's amount,
// negated when the sign is minus.
type TotalizerEffect struct {
	TotalizerCode int        `json:"totalizer_code"`
	Sign          EffectSign `json:"sign"`
	Leg           Leg        `json:"leg"`
}

// TotalizerDefinition describes one totalizer the system uses.
type TotalizerDefinition struct {
	Code        int    `json:"code"`
	Description string `json:"description"`
}

// TransactionType is the configured definition of one transaction,
// identified by its (code, subcode) pair. Currencies holds the expected
// currency pair in order; for single-currency kinds the second slot
// repeats the first. Immutable once loaded.
type TransactionType struct {
	Code        int               `json:"code"`
	Subcode     int               `json:"subcode"`
	Description string            `json:"description"`
	Kind        TransactionKind   `json:"kind"`
	Currencies  [2]int            `json:"currencies"`
	Effects     []TotalizerEffect `json:"effects"`
}

type typeKey struct {
	code    int
	subcode int
}

// Catalog is the immutable set of configured totalizer and transaction
// type definitions.
type Catalog struct {
	totalizers []TotalizerDefinition
	types      map[typeKey]*TransactionType
	order      []typeKey
}

// New builds a catalog from parsed definitions. It fails with
// ErrDuplicateCode when two transaction types share a (code, subcode)
// pair or two totalizer definitions share a code.
func New(totalizers []TotalizerDefinition, types []*TransactionType) (*Catalog, error) {
	seen := make(map[int]bool, len(totalizers))
	for _, td := range totalizers {
		if seen[td.Code] {
			return nil, apperrors.WithMessage(apperrors.ErrDuplicateCode, "Duplicate totalizer definition in catalog")
		}
		seen[td.Code] = true
	}

	c := &Catalog{
		totalizers: make([]TotalizerDefinition, len(totalizers)),
		types:      make(map[typeKey]*TransactionType, len(types)),
	}
	copy(c.totalizers, totalizers)
	for _, tt := range types {
		key := typeKey{tt.Code, tt.Subcode}
		if _, exists := c.types[key]; exists {
			return nil, apperrors.WithMessage(apperrors.ErrDuplicateCode, "Duplicate transaction type in catalog")
		}
		c.types[key] = tt
		c.order = append(c.order, key)
	}
	return c, nil
}

// FindTypeDefinition returns the transaction type configured for the
// given (code, subcode) pair, or ErrTransactionTypeNotFound.
func (c *Catalog) FindTypeDefinition(code, subcode int) (*TransactionType, error) {
	tt, ok := c.types[typeKey{code, subcode}]
	if !ok {
		return nil, apperrors.ErrTransactionTypeNotFound
	}
	return tt, nil
}

// Totalizers returns the configured totalizer definitions.
func (c *Catalog) Totalizers() []TotalizerDefinition {
	out := make([]TotalizerDefinition, len(c.totalizers))
	copy(out, c.totalizers)
	return out
}

// Types returns the configured transaction types in catalog order.
func (c *Catalog) Types() []*TransactionType {
	out := make([]*TransactionType, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, c.types[key])
	}
	return out
}
