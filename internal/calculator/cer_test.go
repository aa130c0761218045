package calculator

import (
	"testing"

	"tirs/internal/domain"
	"tirs/internal/util"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newTestAdjustment(t *testing.T, index, monthly string) CERAdjustment {
	t.Helper()
	return NewCERAdjustment(domain.CERProjection{
		CurrentIndex:         mustDecimal(t, index),
		MonthlyInflationRate: mustDecimal(t, monthly),
	})
}

func TestEstimateIndexAt(t *testing.T) {
	today := util.NewDate(2025, 8, 1)

	t.Run("no-op at zero horizon", func(t *testing.T) {
		adjustment := newTestAdjustment(t, "1350.0", "0.04")

		require.True(t, adjustment.EstimateIndexAt(today, today).Equal(mustDecimal(t, "1350.0")))
		require.True(t, adjustment.EstimateIndexAt(today.AddDate(0, 0, -10), today).Equal(mustDecimal(t, "1350.0")))
	})

	t.Run("thirty day months", func(t *testing.T) {
		adjustment := newTestAdjustment(t, "1350.0", "0.04")

		// 300 days is exactly 10 thirty-day months: 1350 × 1.04^10
		projected := adjustment.EstimateIndexAt(today.AddDate(0, 0, 300), today)
		expected, err := mustDecimal(t, "1.04").PowWithPrecision(decimal.NewFromInt(10), 50)
		require.NoError(t, err)
		requireDecimalNear(t, mustDecimal(t, "1350.0").Mul(expected), projected, decimal.New(1, -6))
	})

	t.Run("calendar month variant", func(t *testing.T) {
		adjustment := newTestAdjustment(t, "1000", "0.05")

		// 2025-08-01 to 2026-02-01 is six whole calendar months.
		projected := adjustment.EstimateIndexAtDate(util.NewDate(2026, 2, 1), today)
		expected, err := mustDecimal(t, "1.05").PowWithPrecision(decimal.NewFromInt(6), 50)
		require.NoError(t, err)
		requireDecimalNear(t, mustDecimal(t, "1000").Mul(expected), projected, decimal.New(1, -6))
	})

	t.Run("the two conventions disagree", func(t *testing.T) {
		adjustment := newTestAdjustment(t, "1000", "0.04")
		target := util.NewDate(2026, 2, 15) // 198 days, 6 calendar months

		horizonBased := adjustment.EstimateIndexAt(target, today)
		calendarBased := adjustment.EstimateIndexAtDate(target, today)
		require.False(t, horizonBased.Equal(calendarBased))
	})
}

func TestAdjustedPayoff(t *testing.T) {
	t.Run("known base index", func(t *testing.T) {
		adjustment := newTestAdjustment(t, "1350.0", "0.04")
		base := mustDecimal(t, "900")

		adjusted, err := adjustment.AdjustedPayoff(mustDecimal(t, "100"), 300, &base)
		require.NoError(t, err)

		// projected = 1350 × 1.04^10; adjusted = 100 × projected/900
		growth, powErr := mustDecimal(t, "1.04").PowWithPrecision(decimal.NewFromInt(10), 50)
		require.NoError(t, powErr)
		expected := mustDecimal(t, "100").Mul(mustDecimal(t, "1350.0").Mul(growth).DivRound(base, 50))
		requireDecimalNear(t, expected, adjusted, decimal.New(1, -6))
	})

	t.Run("estimates base by deflating eighteen months", func(t *testing.T) {
		adjustment := newTestAdjustment(t, "1350.0", "0.04")

		adjusted, err := adjustment.AdjustedPayoff(mustDecimal(t, "100"), 0, nil)
		require.NoError(t, err)

		// With a zero horizon the projection is the current index, so the
		// ratio is exactly the eighteen-month inflation run-up.
		expected, powErr := mustDecimal(t, "1.04").PowWithPrecision(decimal.NewFromInt(18), 50)
		require.NoError(t, powErr)
		requireDecimalNear(t, mustDecimal(t, "100").Mul(expected), adjusted, decimal.New(1, -6))
	})

	t.Run("missing index", func(t *testing.T) {
		adjustment := newTestAdjustment(t, "0", "0.04")

		_, err := adjustment.AdjustedPayoff(mustDecimal(t, "100"), 300, nil)
		require.ErrorIs(t, err, ErrMissingCERData)
	})
}

func TestImpliedInflation(t *testing.T) {
	adjustment := newTestAdjustment(t, "1350.0", "0.04")

	t.Run("implied payoff inverts the yield formula", func(t *testing.T) {
		price := mustDecimal(t, "850")
		marketTIR := mustDecimal(t, "0.30")
		days := 365

		result, err := adjustment.ImpliedInflation(price, marketTIR, days, mustDecimal(t, "1000"))
		require.NoError(t, err)

		// price × (1+tir)^(365/365) = 850 × 1.30 = 1105
		requireDecimalNear(t, mustDecimal(t, "1105"), result.ImpliedPayoff, decimal.New(1, -6))
		requireDecimalNear(t, mustDecimal(t, "1.105"), result.InflationAdjustment, decimal.New(1, -6))

		// ratio^(1/(365/30)) − 1, annualized ×12
		require.True(t, result.ImpliedMonthlyInflation.GreaterThan(decimal.Zero))
		requireDecimalNear(
			t,
			result.ImpliedMonthlyInflation.Mul(decimal.NewFromInt(12)),
			result.ImpliedAnnualInflation,
			decimal.New(1, -12),
		)
	})

	t.Run("matured instrument", func(t *testing.T) {
		_, err := adjustment.ImpliedInflation(mustDecimal(t, "850"), mustDecimal(t, "0.30"), 0, mustDecimal(t, "1000"))
		require.ErrorIs(t, err, ErrAlreadyMatured)
	})

	t.Run("invalid price", func(t *testing.T) {
		_, err := adjustment.ImpliedInflation(decimal.Zero, mustDecimal(t, "0.30"), 100, mustDecimal(t, "1000"))
		require.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestGenerateBONCERSchedule(t *testing.T) {
	today := util.NewDate(2025, 8, 1)
	bond := domain.BondStaticInfo{
		Ticker:          "TX26",
		MaturityDate:    util.NewDate(2026, 8, 1),
		FinalPayoff:     decimal.NewFromInt(100),
		Type:            domain.BondType_CERLinked,
		IssueDate:       util.NewDate(2024, 8, 1),
		IssueCERIndex:   mustDecimal(t, "900"),
		AnnualRealRate:  mustDecimal(t, "0.02"),
		CouponFrequency: 2,
	}

	t.Run("semiannual coupons with principal at maturity", func(t *testing.T) {
		adjustment := newTestAdjustment(t, "1350.0", "0.04")

		flows, err := GenerateBONCERSchedule(bond, adjustment, today)
		require.NoError(t, err)
		require.Len(t, flows, 4) // 2025-02, 2025-08, 2026-02, 2026-08

		for i, flow := range flows[:3] {
			require.True(t, flow.Principal.IsZero(), "flow %d should carry no principal", i)
			require.True(t, flow.Coupon.GreaterThan(decimal.Zero))
		}
		final := flows[len(flows)-1]
		require.Equal(t, bond.MaturityDate, final.Date)
		require.True(t, final.Principal.GreaterThan(decimal.Zero))
	})

	t.Run("real schedule deflates by cer ratio", func(t *testing.T) {
		// With no inflation the adjusted and real flows coincide and the
		// solved rate is the plain coupon yield.
		flat := newTestAdjustment(t, "900", "0")

		flows, err := GenerateBONCERSchedule(bond, flat, today)
		require.NoError(t, err)

		real := RealSchedule(flows)
		for i, entry := range real.FutureFlows(today) {
			require.True(t, entry.Amount.GreaterThan(decimal.Zero), "flow %d", i)
		}

		tir, err := SolveBONCERRealTIR(bond, decimal.NewFromInt(98), flat, today)
		require.NoError(t, err)
		require.True(t, tir.GreaterThan(decimal.Zero))
		require.True(t, tir.LessThan(mustDecimal(t, "0.10")))
	})

	t.Run("missing issue index", func(t *testing.T) {
		_, err := GenerateBONCERSchedule(domain.BondStaticInfo{
			MaturityDate:    bond.MaturityDate,
			IssueDate:       bond.IssueDate,
			CouponFrequency: 2,
		}, newTestAdjustment(t, "1350.0", "0.04"), today)
		require.ErrorIs(t, err, ErrMissingCERData)
	})

	t.Run("invalid frequency", func(t *testing.T) {
		invalid := bond
		invalid.CouponFrequency = 0
		_, err := GenerateBONCERSchedule(invalid, newTestAdjustment(t, "1350.0", "0.04"), today)
		require.ErrorIs(t, err, ErrInvalidInput)
	})
}
