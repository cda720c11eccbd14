// Package engine executes and reverses teller movements, enforcing the
// balance and bookkeeping invariants across the currency registry, the
// totalizer registry and the movement log it owns for the session.
package engine

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"caja/internal/catalog"
	apperrors "caja/internal/errors"
	"caja/internal/logger"
	"caja/internal/models"
	"caja/internal/registry"
	"caja/internal/resolver"
)

// Wholesale discount tiers: 20% off above the threshold, 15% below.
var (
	wholesaleThreshold = decimal.NewFromInt(20000)
	discountHigh       = decimal.NewFromFloat(0.20)
	discountLow        = decimal.NewFromFloat(0.15)
)

// Engine validates, executes and reverses movements against the
// transaction catalog. Execute and Reverse each run as one atomic unit
// of work under an exclusive lock over all three registries; a call
// either fully succeeds or leaves no observable mutation behind.
type Engine struct {
	mu sync.Mutex

	catalog      *catalog.Catalog
	currencies   *registry.CurrencyRegistry
	totalizers   *registry.TotalizerRegistry
	movements    *registry.MovementLog
	rates        resolver.RateResolver
	prices       resolver.PriceResolver
	baseCurrency int

	log *zap.SugaredLogger
}

// New creates an engine for one teller session. The catalog is shared,
// read-only input; the registries are created empty and owned by the
// engine. baseCurrency is the home currency code: movements entirely in
// it never trigger rate resolution.
func New(cat *catalog.Catalog, rates resolver.RateResolver, prices resolver.PriceResolver, baseCurrency int) *Engine {
	return &Engine{
		catalog:      cat,
		currencies:   registry.NewCurrencyRegistry(),
		totalizers:   registry.NewTotalizerRegistry(),
		movements:    registry.NewMovementLog(),
		rates:        rates,
		prices:       prices,
		baseCurrency: baseCurrency,
		log:          logger.Named("engine"),
	}
}

// Catalog returns the engine's transaction catalog.
func (e *Engine) Catalog() *catalog.Catalog { return e.catalog }

// Currencies returns the session's currency registry.
func (e *Engine) Currencies() *registry.CurrencyRegistry { return e.currencies }

// Totalizers returns the session's totalizer registry.
func (e *Engine) Totalizers() *registry.TotalizerRegistry { return e.totalizers }

// Movements returns the session's movement log.
func (e *Engine) Movements() *registry.MovementLog { return e.movements }

// RegisterCurrency adds a currency to the session under the engine lock.
func (e *Engine) RegisterCurrency(c *models.Currency) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currencies.Add(c)
}

// RegisterTotalizer adds a totalizer to the session under the engine lock.
func (e *Engine) RegisterTotalizer(t *models.Totalizer) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.totalizers.Add(t)
}

// SeedTotalizers registers one zeroed totalizer per catalog definition.
func (e *Engine) SeedTotalizers() error {
	for _, def := range e.catalog.Totalizers() {
		if err := e.RegisterTotalizer(models.NewTotalizer(def.Code, def.Description)); err != nil {
			return err
		}
	}
	return nil
}

// currencyOp is one planned credit or debit against a currency.
type currencyOp struct {
	currency *models.Currency
	amount   decimal.Decimal
	credit   bool
}

// totalizerOp is one planned adjustment against a totalizer.
type totalizerOp struct {
	totalizer *models.Totalizer
	amount    decimal.Decimal
}

// Execute runs the transaction described by the movement and returns
// its operation number. Missing rates and prices are resolved through
// the collaborators exactly once and written back onto the movement, so
// reversal later replays the same frozen values. All validation happens
// before any registry mutation: a failing execution leaves the
// currencies, totalizers and log untouched.
func (e *Engine) Execute(m *models.Movement) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	def, err := e.catalog.FindTypeDefinition(m.Code, m.Subcode)
	if err != nil {
		return 0, err
	}
	if err := validatePair(m, def); err != nil {
		return 0, err
	}
	if err := e.resolveRate(m, def); err != nil {
		return 0, err
	}

	curOps, err := e.planCurrencyEffects(m, def)
	if err != nil {
		return 0, err
	}
	totOps, err := e.planTotalizerEffects(m, def, false)
	if err != nil {
		return 0, err
	}
	if err := e.validatePlan(curOps, totOps); err != nil {
		return 0, err
	}
	e.applyPlan(curOps, totOps)

	m.Date = time.Now()
	m.Status = models.MovementStatusActive
	e.movements.Append(m)
	m.OperationNumber = e.movements.Len()

	e.log.Infow("movement executed",
		"operation", m.OperationNumber,
		"code", m.Code,
		"subcode", m.Subcode,
		"kind", def.Kind.String(),
		"primary_currency", m.PrimaryCurrency,
		"primary_amount", m.PrimaryAmount.String(),
	)
	return m.OperationNumber, nil
}

// Reverse exactly inverts the movement with the given operation number,
// using the amounts and rates frozen on it at execution time. The
// reversed status is checked before any mutation so a double reversal
// has no side effects.
func (e *Engine) Reverse(operationNumber int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	m, err := e.movements.FindByOperationNumber(operationNumber)
	if err != nil {
		return err
	}
	if m.Status == models.MovementStatusReversed {
		return apperrors.ErrAlreadyReversed
	}

	def, err := e.catalog.FindTypeDefinition(m.Code, m.Subcode)
	if err != nil {
		return err
	}
	if err := validatePair(m, def); err != nil {
		return err
	}

	curOps, err := e.planReversalCurrencyEffects(m, def)
	if err != nil {
		return err
	}
	totOps, err := e.planTotalizerEffects(m, def, true)
	if err != nil {
		return err
	}
	if err := e.validatePlan(curOps, totOps); err != nil {
		return err
	}
	e.applyPlan(curOps, totOps)

	if err := m.Reverse(); err != nil {
		// Status was checked above; this cannot trigger.
		return err
	}

	e.log.Infow("movement reversed",
		"operation", m.OperationNumber,
		"code", m.Code,
		"subcode", m.Subcode,
		"kind", def.Kind.String(),
	)
	return nil
}

// ResetSession zeroes every currency and totalizer and clears the
// movement log for a new trading day. The returned booleans report the
// zero-sum checks of the two registries.
func (e *Engine) ResetSession() (currenciesZero, totalizersZero bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	currenciesZero = e.currencies.ResetAll()
	totalizersZero = e.totalizers.ResetAll()
	e.movements.Clear()

	e.log.Infow("session reset",
		"currencies_zero", currenciesZero,
		"totalizers_zero", totalizersZero,
	)
	return currenciesZero, totalizersZero
}

// validatePair checks the movement's currency pair against the
// definition's expected pair, order-sensitive.
func validatePair(m *models.Movement, def *catalog.TransactionType) error {
	if m.PrimaryCurrency != def.Currencies[0] || m.SecondaryCurrency != def.Currencies[1] {
		return apperrors.ErrCurrencyMismatch
	}
	return nil
}

// resolveRate fetches the quote for buy/sell movements that involve a
// foreign leg and arrived without a rate, then derives the secondary
// amount. A caller-supplied rate is the explicit override path and
// skips resolution entirely.
func (e *Engine) resolveRate(m *models.Movement, def *catalog.TransactionType) error {
	if def.Kind != catalog.KindCurrencyBuy && def.Kind != catalog.KindCurrencySell {
		return nil
	}
	if m.PrimaryCurrency == e.baseCurrency && m.SecondaryCurrency == e.baseCurrency {
		return nil
	}
	if !m.Rate.IsZero() {
		return nil
	}

	side := resolver.SideBuy
	if def.Kind == catalog.KindCurrencySell {
		side = resolver.SideSell
	}
	rate, err := e.rates.Quote(m.PrimaryCurrency, side)
	if err != nil {
		return err
	}
	if !rate.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrResolverUnavailable,
			"Quote service returned a non-positive rate")
	}

	m.Rate = rate
	if def.Kind == catalog.KindCurrencyBuy {
		m.SecondaryAmount = m.PrimaryAmount.Mul(rate)
	} else {
		m.SecondaryAmount = m.PrimaryAmount.Div(rate)
	}
	return nil
}

// planCurrencyEffects builds the currency mutations for an execution,
// running the kind-specific amount checks first.
func (e *Engine) planCurrencyEffects(m *models.Movement, def *catalog.TransactionType) ([]currencyOp, error) {
	primary, err := e.currencies.FindByCode(m.PrimaryCurrency)
	if err != nil {
		return nil, err
	}

	switch def.Kind {
	case catalog.KindCurrencyBuy, catalog.KindCurrencySell:
		if !m.PrimaryAmount.IsInteger() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidAmount,
				"Exchange amounts must be whole numbers")
		}
		secondary, err := e.currencies.FindByCode(m.SecondaryCurrency)
		if err != nil {
			return nil, err
		}
		if def.Kind == catalog.KindCurrencyBuy {
			return []currencyOp{
				{currency: primary, amount: m.PrimaryAmount, credit: true},
				{currency: secondary, amount: m.SecondaryAmount, credit: false},
			}, nil
		}
		return []currencyOp{
			{currency: primary, amount: m.PrimaryAmount, credit: false},
			{currency: secondary, amount: m.SecondaryAmount, credit: true},
		}, nil

	case catalog.KindTreasuryTransfer:
		inbound := m.Subcode == catalog.SubcodeTreasuryInbound
		return []currencyOp{
			{currency: primary, amount: m.PrimaryAmount, credit: inbound},
		}, nil

	case catalog.KindProductSale:
		total, err := e.computeSaleTotal(m)
		if err != nil {
			return nil, err
		}
		if !m.PrimaryAmount.Equal(total) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidAmount,
				"Declared amount disagrees with the computed sale total")
		}
		return []currencyOp{
			{currency: primary, amount: total, credit: true},
		}, nil
	}

	return nil, apperrors.WithMessage(apperrors.ErrInternalServer, "Unhandled transaction kind")
}

// planReversalCurrencyEffects builds the inverse currency mutations,
// negating the amounts already frozen on the movement.
func (e *Engine) planReversalCurrencyEffects(m *models.Movement, def *catalog.TransactionType) ([]currencyOp, error) {
	primary, err := e.currencies.FindByCode(m.PrimaryCurrency)
	if err != nil {
		return nil, err
	}

	switch def.Kind {
	case catalog.KindCurrencyBuy, catalog.KindCurrencySell:
		secondary, err := e.currencies.FindByCode(m.SecondaryCurrency)
		if err != nil {
			return nil, err
		}
		if def.Kind == catalog.KindCurrencyBuy {
			return []currencyOp{
				{currency: primary, amount: m.PrimaryAmount.Neg(), credit: true},
				{currency: secondary, amount: m.SecondaryAmount.Neg(), credit: false},
			}, nil
		}
		return []currencyOp{
			{currency: primary, amount: m.PrimaryAmount.Neg(), credit: false},
			{currency: secondary, amount: m.SecondaryAmount.Neg(), credit: true},
		}, nil

	case catalog.KindTreasuryTransfer:
		inbound := m.Subcode == catalog.SubcodeTreasuryInbound
		return []currencyOp{
			{currency: primary, amount: m.PrimaryAmount.Neg(), credit: inbound},
		}, nil

	case catalog.KindProductSale:
		return []currencyOp{
			{currency: primary, amount: m.PrimaryAmount.Neg(), credit: true},
		}, nil
	}

	return nil, apperrors.WithMessage(apperrors.ErrInternalServer, "Unhandled transaction kind")
}

// computeSaleTotal resolves missing line-item prices (freezing them on
// the movement), sums the line subtotals and applies the wholesale
// discount tier when the subcode marks the sale as wholesale.
func (e *Engine) computeSaleTotal(m *models.Movement) (decimal.Decimal, error) {
	for i := range m.Items {
		if m.Items[i].UnitPrice.IsZero() {
			price, err := e.prices.Price(m.Items[i].ProductCode)
			if err != nil {
				return decimal.Zero, err
			}
			m.Items[i].UnitPrice = price
		}
	}

	total := m.TotalBeforeDiscount()
	if m.Subcode == catalog.WholesaleSubcode {
		if total.GreaterThan(wholesaleThreshold) {
			total = total.Sub(total.Mul(discountHigh))
		} else {
			total = total.Sub(total.Mul(discountLow))
		}
	}
	return total, nil
}

// planTotalizerEffects builds the totalizer adjustments declared by the
// definition, in declared order. For reversals every sign is inverted.
func (e *Engine) planTotalizerEffects(m *models.Movement, def *catalog.TransactionType, invert bool) ([]totalizerOp, error) {
	ops := make([]totalizerOp, 0, len(def.Effects))
	for _, effect := range def.Effects {
		tot, err := e.totalizers.FindByCode(effect.TotalizerCode)
		if err != nil {
			return nil, err
		}

		amount := m.PrimaryAmount
		if effect.Leg == catalog.LegSecondary {
			amount = m.SecondaryAmount
		}
		if effect.Sign == catalog.SignMinus {
			amount = amount.Neg()
		}
		if invert {
			amount = amount.Neg()
		}
		ops = append(ops, totalizerOp{totalizer: tot, amount: amount})
	}
	return ops, nil
}

// validatePlan simulates every planned mutation against projected
// balances and fails with ErrNegativeBalance if any step would go below
// zero. Running the whole plan through projection first is what makes
// Execute and Reverse all-or-nothing without needing rollback.
func (e *Engine) validatePlan(curOps []currencyOp, totOps []totalizerOp) error {
	balances := make(map[int]decimal.Decimal)
	for _, op := range curOps {
		bal, ok := balances[op.currency.Code]
		if !ok {
			bal = op.currency.Balance()
		}
		if op.credit {
			bal = bal.Add(op.amount)
		} else {
			bal = bal.Sub(op.amount)
		}
		if bal.IsNegative() {
			return apperrors.ErrNegativeBalance
		}
		balances[op.currency.Code] = bal
	}

	amounts := make(map[int]decimal.Decimal)
	for _, op := range totOps {
		amt, ok := amounts[op.totalizer.Code]
		if !ok {
			amt = op.totalizer.Amount
		}
		amt = amt.Add(op.amount)
		if amt.IsNegative() {
			return apperrors.ErrNegativeBalance
		}
		amounts[op.totalizer.Code] = amt
	}
	return nil
}

// applyPlan commits a validated plan: currency mutations first, then
// totalizer adjustments, in planned order.
func (e *Engine) applyPlan(curOps []currencyOp, totOps []totalizerOp) {
	for _, op := range curOps {
		if op.credit {
			op.currency.Credit(op.amount) //nolint:errcheck // validated by validatePlan
		} else {
			op.currency.Debit(op.amount) //nolint:errcheck // validated by validatePlan
		}
	}
	for _, op := range totOps {
		op.totalizer.Adjust(op.amount) //nolint:errcheck // validated by validatePlan
	}
}
