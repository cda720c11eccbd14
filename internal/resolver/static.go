package resolver

import (
	"sync/atomic"

	"github.com/shopspring/decimal"

	apperrors "caja/internal/errors"
)

// StaticRateResolver serves quotes from a fixed in-memory table. Used
// for tests and offline operation. Calls counts every Quote lookup.
type StaticRateResolver struct {
	Currencies map[int]CurrencyInfo
	Calls      atomic.Int64
}

// Quote returns the configured rate for the given side.
func (r *StaticRateResolver) Quote(currencyCode int, side QuoteSide) (decimal.Decimal, error) {
	r.Calls.Add(1)
	info, ok := r.Currencies[currencyCode]
	if !ok {
		return decimal.Zero, apperrors.ErrCurrencyNotFound
	}
	if side == SideBuy {
		return info.BuyRate, nil
	}
	return info.SellRate, nil
}

// CurrencyInfo returns the configured record for a currency.
func (r *StaticRateResolver) CurrencyInfo(currencyCode int) (*CurrencyInfo, error) {
	info, ok := r.Currencies[currencyCode]
	if !ok {
		return nil, apperrors.ErrCurrencyNotFound
	}
	out := info
	return &out, nil
}

// StaticPriceResolver serves prices from a fixed in-memory table.
type StaticPriceResolver struct {
	Products map[int]ProductInfo
	Calls    atomic.Int64
}

// Price returns the configured unit price of a product.
func (r *StaticPriceResolver) Price(productCode int) (decimal.Decimal, error) {
	r.Calls.Add(1)
	info, ok := r.Products[productCode]
	if !ok {
		return decimal.Zero, apperrors.ErrProductNotFound
	}
	return info.Price, nil
}

// ProductInfo returns the configured record for a product.
func (r *StaticPriceResolver) ProductInfo(productCode int) (*ProductInfo, error) {
	info, ok := r.Products[productCode]
	if !ok {
		return nil, apperrors.ErrProductNotFound
	}
	out := info
	return &out, nil
}
