package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestTEAFromTIR(t *testing.T) {
	tolerance := decimal.New(1, -9)

	t.Run("one year tir is already annual", func(t *testing.T) {
		for _, raw := range []string{"-0.5", "0", "0.10", "0.35", "1.5"} {
			tir := mustDecimal(t, raw)
			requireDecimalNear(t, tir, TEAFromTIR(tir, 365), tolerance)
		}
	})

	t.Run("half year doubles compounding", func(t *testing.T) {
		// (1.10)^2 − 1 = 0.21 for a 10% half-year rate annualized over
		// 182.5 days is not representable with integer days; use 365/2
		// rounded via 183 days and check against the formula directly.
		tea := TEAFromTIR(mustDecimal(t, "0.10"), 183)
		expected, err := mustDecimal(t, "1.10").PowWithPrecision(
			decimal.NewFromInt(365).DivRound(decimal.NewFromInt(183), 50), 50)
		require.NoError(t, err)
		requireDecimalNear(t, expected.Sub(decimal.NewFromInt(1)), tea, tolerance)
	})

	t.Run("clamps invalid domain to zero", func(t *testing.T) {
		require.True(t, TEAFromTIR(mustDecimal(t, "-1"), 365).IsZero())
		require.True(t, TEAFromTIR(mustDecimal(t, "-1.5"), 365).IsZero())
		require.True(t, TEAFromTIR(mustDecimal(t, "0.10"), 0).IsZero())
		require.True(t, TEAFromTIR(mustDecimal(t, "0.10"), -10).IsZero())
	})
}

func TestTEMConversions(t *testing.T) {
	tolerance := decimal.New(1, -9)

	t.Run("tem from tea known value", func(t *testing.T) {
		// (1.34489)^(1/12) − 1 ≈ 0.025 (2.5% monthly compounds to ~34.49% annual)
		tem := TEMFromTEA(mustDecimal(t, "0.344888824346968"))
		require.InDelta(t, 0.025, tem.InexactFloat64(), 1e-9)
	})

	t.Run("tea and tem round trip", func(t *testing.T) {
		for _, raw := range []string{"-0.3", "0", "0.05", "0.35", "1.2", "3.0"} {
			tea := mustDecimal(t, raw)
			requireDecimalNear(t, tea, TEAFromTEM(TEMFromTEA(tea)), tolerance)
		}
	})

	t.Run("tna via tem equals tna via tea", func(t *testing.T) {
		for _, raw := range []string{"-0.3", "0", "0.05", "0.35", "1.2"} {
			tea := mustDecimal(t, raw)
			requireDecimalNear(t, TNAFromTEA(tea, 12), TNAFromTEM(TEMFromTEA(tea)), tolerance)
		}
	})

	t.Run("tna is tem times twelve exactly", func(t *testing.T) {
		tem := mustDecimal(t, "0.0315")
		require.True(t, TNAFromTEM(tem).Equal(tem.Mul(decimal.NewFromInt(12))))
	})

	t.Run("clamps invalid domain to zero", func(t *testing.T) {
		require.True(t, TEMFromTEA(mustDecimal(t, "-1")).IsZero())
		require.True(t, TEAFromTEM(mustDecimal(t, "-1.01")).IsZero())
		require.True(t, TNAFromTEA(mustDecimal(t, "-2"), 12).IsZero())
		require.True(t, TNAFromTEA(mustDecimal(t, "0.5"), 0).IsZero())
	})
}

func TestTNAFromTEA_Frequencies(t *testing.T) {
	tea := mustDecimal(t, "0.40")

	monthly := TNAFromTEA(tea, 12)
	quarterly := TNAFromTEA(tea, 4)
	annual := TNAFromTEA(tea, 1)

	// More frequent compounding means a lower nominal rate for the same
	// effective rate.
	require.True(t, monthly.LessThan(quarterly))
	require.True(t, quarterly.LessThan(annual))
	requireDecimalNear(t, tea, annual, decimal.New(1, -9))
}
