package testutil

import (
	"testing"

	"github.com/shopspring/decimal"

	"caja/internal/catalog"
	"caja/internal/engine"
	"caja/internal/models"
	"caja/internal/resolver"
)

// Fixture codes shared by the engine and handler tests. Currency 1 is
// the till's base currency; currency 2 is the traded foreign currency.
const (
	BaseCurrency    = 1
	ForeignCurrency = 2

	TotalizerBoughtForeign = 100
	TotalizerPaidLocal     = 110
	TotalizerSoldForeign   = 200
	TotalizerReceivedLocal = 210
	TotalizerTreasury      = 300
	TotalizerSales         = 400

	TypeCurrencyBuy  = 100
	TypeCurrencySell = 200
	TypeTreasury     = 300
	TypeProductSale  = 400
)

// Dec parses a decimal literal, failing the test on a bad string.
func Dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

// NewTestCatalog builds a catalog covering all four transaction kinds.
func NewTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	totalizers := []catalog.TotalizerDefinition{
		{Code: TotalizerBoughtForeign, Description: "Foreign currency purchased"},
		{Code: TotalizerPaidLocal, Description: "Local cash paid for purchases"},
		{Code: TotalizerSoldForeign, Description: "Foreign currency sold"},
		{Code: TotalizerReceivedLocal, Description: "Local cash received for sales"},
		{Code: TotalizerTreasury, Description: "Treasury volume"},
		{Code: TotalizerSales, Description: "Product sales"},
	}

	types := []*catalog.TransactionType{
		{
			Code: TypeCurrencyBuy, Subcode: 1, Description: "Buy foreign currency",
			Kind:       catalog.KindCurrencyBuy,
			Currencies: [2]int{ForeignCurrency, BaseCurrency},
			Effects: []catalog.TotalizerEffect{
				{TotalizerCode: TotalizerBoughtForeign, Sign: catalog.SignPlus, Leg: catalog.LegPrimary},
				{TotalizerCode: TotalizerPaidLocal, Sign: catalog.SignPlus, Leg: catalog.LegSecondary},
			},
		},
		{
			Code: TypeCurrencySell, Subcode: 1, Description: "Sell foreign currency",
			Kind:       catalog.KindCurrencySell,
			Currencies: [2]int{ForeignCurrency, BaseCurrency},
			Effects: []catalog.TotalizerEffect{
				{TotalizerCode: TotalizerSoldForeign, Sign: catalog.SignPlus, Leg: catalog.LegPrimary},
				{TotalizerCode: TotalizerReceivedLocal, Sign: catalog.SignPlus, Leg: catalog.LegSecondary},
			},
		},
		{
			Code: TypeTreasury, Subcode: catalog.SubcodeTreasuryInbound, Description: "Treasury inbound",
			Kind:       catalog.KindTreasuryTransfer,
			Currencies: [2]int{BaseCurrency, BaseCurrency},
			Effects: []catalog.TotalizerEffect{
				{TotalizerCode: TotalizerTreasury, Sign: catalog.SignPlus, Leg: catalog.LegPrimary},
			},
		},
		{
			Code: TypeTreasury, Subcode: catalog.SubcodeTreasuryOutbound, Description: "Treasury outbound",
			Kind:       catalog.KindTreasuryTransfer,
			Currencies: [2]int{BaseCurrency, BaseCurrency},
			Effects: []catalog.TotalizerEffect{
				{TotalizerCode: TotalizerTreasury, Sign: catalog.SignPlus, Leg: catalog.LegPrimary},
			},
		},
		{
			Code: TypeProductSale, Subcode: 1, Description: "Retail product sale",
			Kind:       catalog.KindProductSale,
			Currencies: [2]int{BaseCurrency, BaseCurrency},
			Effects: []catalog.TotalizerEffect{
				{TotalizerCode: TotalizerSales, Sign: catalog.SignPlus, Leg: catalog.LegPrimary},
			},
		},
		{
			Code: TypeProductSale, Subcode: catalog.WholesaleSubcode, Description: "Wholesale product sale",
			Kind:       catalog.KindProductSale,
			Currencies: [2]int{BaseCurrency, BaseCurrency},
			Effects: []catalog.TotalizerEffect{
				{TotalizerCode: TotalizerSales, Sign: catalog.SignPlus, Leg: catalog.LegPrimary},
			},
		},
	}

	cat, err := catalog.New(totalizers, types)
	if err != nil {
		t.Fatalf("failed to build test catalog: %v", err)
	}
	return cat
}

// NewStaticRates returns a rate resolver quoting the foreign currency
// at buy 2, sell 4.
func NewStaticRates(t *testing.T) *resolver.StaticRateResolver {
	t.Helper()
	return &resolver.StaticRateResolver{
		Currencies: map[int]resolver.CurrencyInfo{
			ForeignCurrency: {
				Code:        ForeignCurrency,
				Description: "US Dollar",
				BuyRate:     Dec(t, "2"),
				SellRate:    Dec(t, "4"),
			},
		},
	}
}

// NewStaticPrices returns a price resolver with three known products.
func NewStaticPrices(t *testing.T) *resolver.StaticPriceResolver {
	t.Helper()
	return &resolver.StaticPriceResolver{
		Products: map[int]resolver.ProductInfo{
			10: {Code: 10, Description: "Transfer form", Price: Dec(t, "100")},
			20: {Code: 20, Description: "Gift card", Price: Dec(t, "5000")},
			30: {Code: 30, Description: "Gold coin", Price: Dec(t, "12500")},
		},
	}
}

// NewTestEngine builds an engine over the fixture catalog and static
// resolvers, with the base currency opened at 10000 and the foreign
// currency at 1000, and one totalizer seeded per definition.
func NewTestEngine(t *testing.T) (*engine.Engine, *resolver.StaticRateResolver, *resolver.StaticPriceResolver) {
	t.Helper()

	rates := NewStaticRates(t)
	prices := NewStaticPrices(t)
	eng := engine.New(NewTestCatalog(t), rates, prices, BaseCurrency)

	if err := eng.RegisterCurrency(models.NewCurrencyWithBalance(BaseCurrency, "Peso", Dec(t, "10000"))); err != nil {
		t.Fatalf("failed to register base currency: %v", err)
	}
	if err := eng.RegisterCurrency(models.NewCurrencyWithBalance(ForeignCurrency, "US Dollar", Dec(t, "1000"))); err != nil {
		t.Fatalf("failed to register foreign currency: %v", err)
	}
	if err := eng.SeedTotalizers(); err != nil {
		t.Fatalf("failed to seed totalizers: %v", err)
	}
	return eng, rates, prices
}
