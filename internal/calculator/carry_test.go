package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestProjectCarry(t *testing.T) {
	worst := WorstCaseAssumption{
		BaseFXRate:          decimal.NewFromInt(1400),
		MonthlyDepreciation: mustDecimal(t, "0.01"),
	}
	scenarios := []decimal.Decimal{
		decimal.NewFromInt(1000),
		decimal.NewFromInt(1200),
		decimal.NewFromInt(1400),
	}

	t.Run("scenario returns", func(t *testing.T) {
		projection, err := ProjectCarry(
			decimal.NewFromInt(1000), // price
			decimal.NewFromInt(1300), // payoff
			decimal.NewFromInt(1200), // fx now
			scenarios,
			90,
			worst,
		)
		require.NoError(t, err)
		require.Len(t, projection.Scenarios, 3)

		// ratio = 1.3; at fx 1200 (unchanged) return = 1.3 − 1 = 30%
		requireDecimalNear(t, mustDecimal(t, "0.30"), projection.Scenarios[1].Return, decimal.New(1, -9))

		// at fx 1000 the peso strengthened: 1.3 × 1200/1000 − 1 = 0.56
		requireDecimalNear(t, mustDecimal(t, "0.56"), projection.Scenarios[0].Return, decimal.New(1, -9))

		// usd invested = 1000/1200
		requireDecimalNear(
			t,
			decimal.NewFromInt(1000).DivRound(decimal.NewFromInt(1200), 50),
			projection.USDInvested,
			decimal.New(1, -9),
		)
	})

	t.Run("breakeven yields exactly zero return", func(t *testing.T) {
		projection, err := ProjectCarry(
			mustDecimal(t, "873.50"),
			mustDecimal(t, "1104.20"),
			mustDecimal(t, "1235"),
			scenarios,
			180,
			worst,
		)
		require.NoError(t, err)

		atBreakeven := carryReturn(projection.ReturnRatio, mustDecimal(t, "1235"), projection.BreakevenFX)
		require.True(t, atBreakeven.Abs().LessThan(decimal.New(1, -6)), "got %s", atBreakeven)
	})

	t.Run("worst case compounds monthly depreciation", func(t *testing.T) {
		projection, err := ProjectCarry(
			decimal.NewFromInt(1000),
			decimal.NewFromInt(1300),
			decimal.NewFromInt(1200),
			scenarios,
			300, // ten 30-day months
			worst,
		)
		require.NoError(t, err)

		growth, powErr := mustDecimal(t, "1.01").PowWithPrecision(decimal.NewFromInt(10), 50)
		require.NoError(t, powErr)
		requireDecimalNear(t, decimal.NewFromInt(1400).Mul(growth), projection.WorstCaseFX, decimal.New(1, -6))

		// Worst-case return must be below the unchanged-fx scenario.
		require.True(t, projection.WorstCaseReturn.LessThan(projection.Scenarios[1].Return))
	})

	t.Run("zero price", func(t *testing.T) {
		_, err := ProjectCarry(decimal.Zero, decimal.NewFromInt(1300), decimal.NewFromInt(1200), scenarios, 90, worst)
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("zero fx rate", func(t *testing.T) {
		_, err := ProjectCarry(decimal.NewFromInt(1000), decimal.NewFromInt(1300), decimal.Zero, scenarios, 90, worst)
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("zero scenario rate", func(t *testing.T) {
		_, err := ProjectCarry(
			decimal.NewFromInt(1000),
			decimal.NewFromInt(1300),
			decimal.NewFromInt(1200),
			[]decimal.Decimal{decimal.Zero},
			90,
			worst,
		)
		require.ErrorIs(t, err, ErrInvalidInput)
	})
}
