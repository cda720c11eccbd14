package models_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"caja/internal/models"
	"caja/internal/testutil"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCurrencyBalance(t *testing.T) {
	t.Run("derived_from_starting_credits_debits", func(t *testing.T) {
		c := models.NewCurrencyWithBalance(1, "Peso", dec("10000"))

		_, err := c.Credit(dec("500"))
		testutil.AssertNoError(t, err)
		_, err = c.Debit(dec("2000"))
		testutil.AssertNoError(t, err)

		testutil.AssertDecimalEqual(t, c.Balance(), "8500")
		if c.CreditCount != 1 || c.DebitCount != 1 {
			t.Errorf("expected counters 1/1, got %d/%d", c.CreditCount, c.DebitCount)
		}
	})

	t.Run("debit_below_zero_rejected", func(t *testing.T) {
		c := models.NewCurrencyWithBalance(1, "Peso", dec("300"))

		_, err := c.Debit(dec("600"))
		testutil.AssertAppError(t, err, "NEGATIVE_BALANCE")

		testutil.AssertDecimalEqual(t, c.Balance(), "300")
		if c.DebitCount != 0 {
			t.Errorf("expected debit count 0 after rejected debit, got %d", c.DebitCount)
		}
	})

	t.Run("negative_credit_backs_out_prior_credit", func(t *testing.T) {
		c := models.NewCurrency(1, "Peso")

		_, err := c.Credit(dec("1000"))
		testutil.AssertNoError(t, err)
		_, err = c.Credit(dec("-1000"))
		testutil.AssertNoError(t, err)

		testutil.AssertDecimalEqual(t, c.Balance(), "0")
		if c.CreditCount != 0 {
			t.Errorf("expected credit count back at 0, got %d", c.CreditCount)
		}
	})

	t.Run("negative_credit_cannot_overdraw", func(t *testing.T) {
		c := models.NewCurrencyWithBalance(1, "Peso", dec("100"))

		_, err := c.Credit(dec("-500"))
		testutil.AssertAppError(t, err, "NEGATIVE_BALANCE")
		testutil.AssertDecimalEqual(t, c.Balance(), "100")
	})

	t.Run("reset_zeroes_everything", func(t *testing.T) {
		c := models.NewCurrencyWithBalance(1, "Peso", dec("10000"))
		_, err := c.Credit(dec("500"))
		testutil.AssertNoError(t, err)

		c.Reset()

		testutil.AssertDecimalEqual(t, c.Balance(), "0")
		if c.CreditCount != 0 || c.DebitCount != 0 {
			t.Errorf("expected counters 0/0 after reset, got %d/%d", c.CreditCount, c.DebitCount)
		}
	})
}

func TestTotalizerAdjust(t *testing.T) {
	t.Run("tracks_increases_and_decreases", func(t *testing.T) {
		tot := models.NewTotalizer(100, "Sales")

		_, err := tot.Adjust(dec("1500"))
		testutil.AssertNoError(t, err)
		_, err = tot.Adjust(dec("-500"))
		testutil.AssertNoError(t, err)

		testutil.AssertDecimalEqual(t, tot.Amount, "1000")
		if tot.IncreaseCount != 1 || tot.DecreaseCount != 1 {
			t.Errorf("expected counters 1/1, got %d/%d", tot.IncreaseCount, tot.DecreaseCount)
		}
	})

	t.Run("below_zero_rejected", func(t *testing.T) {
		tot := models.NewTotalizer(100, "Sales")

		_, err := tot.Adjust(dec("-1"))
		testutil.AssertAppError(t, err, "NEGATIVE_BALANCE")
		testutil.AssertDecimalEqual(t, tot.Amount, "0")
	})
}

func TestMovementReverse(t *testing.T) {
	m := &models.Movement{Status: models.MovementStatusActive}

	testutil.AssertNoError(t, m.Reverse())
	if m.Status != models.MovementStatusReversed {
		t.Errorf("expected status reversed, got %s", m.Status)
	}

	err := m.Reverse()
	testutil.AssertAppError(t, err, "ALREADY_REVERSED")
}

func TestLineItemSubtotal(t *testing.T) {
	li := models.LineItem{Quantity: dec("3"), UnitPrice: dec("12.50")}
	testutil.AssertDecimalEqual(t, li.Subtotal(), "37.5")

	m := &models.Movement{Items: []models.LineItem{
		{Quantity: dec("2"), UnitPrice: dec("100")},
		{Quantity: dec("1"), UnitPrice: dec("5000")},
	}}
	testutil.AssertDecimalEqual(t, m.TotalBeforeDiscount(), "5200")
}
