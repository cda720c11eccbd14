// Package resolver defines the two narrow collaborator contracts the
// engine depends on for external data: currency quotes and product
// prices. Implementations are injected into the engine; the engine only
// calls them when a movement arrives without the value pre-supplied.
package resolver

import (
	"github.com/shopspring/decimal"
)

// QuoteSide selects the buy or sell quote for a currency.
type QuoteSide int

const (
	SideBuy QuoteSide = iota
	SideSell
)

// String returns the wire name of the side.
func (s QuoteSide) String() string {
	if s == SideBuy {
		return "buy"
	}
	return "sell"
}

// CurrencyInfo is the full quote record of one currency.
type CurrencyInfo struct {
	Code        int             `json:"code"`
	Description string          `json:"description"`
	BuyRate     decimal.Decimal `json:"buy_rate"`
	SellRate    decimal.Decimal `json:"sell_rate"`
}

// ProductInfo is the full price record of one product.
type ProductInfo struct {
	Code        int             `json:"code"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// RateResolver supplies currency quotes on demand.
type RateResolver interface {
	// Quote returns the rate for one side of a currency.
	Quote(currencyCode int, side QuoteSide) (decimal.Decimal, error)
	// CurrencyInfo returns the full quote record for a currency.
	CurrencyInfo(currencyCode int) (*CurrencyInfo, error)
}

// PriceResolver supplies product prices on demand.
type PriceResolver interface {
	// Price returns the unit price of a product.
	Price(productCode int) (decimal.Decimal, error)
	// ProductInfo returns the full price record for a product.
	ProductInfo(productCode int) (*ProductInfo, error)
}
